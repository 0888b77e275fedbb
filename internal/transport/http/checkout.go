package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curiousguyinhis30s/themepark-website/internal/app"
	"github.com/curiousguyinhis30s/themepark-website/internal/checkout"
)

// CheckoutWizards is the minimal interface needed for the checkout endpoints.
type CheckoutWizards interface {
	Create() (string, checkout.State)
	Get(id string) (checkout.State, error)
	SelectTicket(id, ticketTypeID string) (checkout.State, error)
	Continue(id string) (checkout.State, error)
	Back(id string) (checkout.State, error)
	Reset(id string) (checkout.State, error)
	UpdateDetails(id string, in app.DetailsInput) (checkout.State, error)
	UpdatePayment(id string, in app.PaymentInput) (checkout.State, error)
	Pay(ctx context.Context, id string) (checkout.State, error)
}

type checkoutResponse struct {
	ID           string            `json:"id"`
	Step         string            `json:"step"`
	TicketTypeID string            `json:"ticketTypeId,omitempty"`
	Quantity     int               `json:"quantity"`
	VisitDate    string            `json:"visitDate,omitempty"`
	Payment      checkoutPayment   `json:"payment"`
	PaymentError string            `json:"paymentError,omitempty"`
	Processing   bool              `json:"processing"`
	Totals       checkoutTotals    `json:"totals"`
	CanContinue  bool              `json:"canContinue"`
	CanPay       bool              `json:"canPay"`
	Result       *purchaseResponse `json:"result,omitempty"`
}

// checkoutPayment echoes the formatted form fields. The CVV is never sent
// back, only whether it has been entered.
type checkoutPayment struct {
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCvvSet bool   `json:"cardCvvSet"`
	CardHolder string `json:"cardHolder"`
	Email      string `json:"email"`
}

type checkoutTotals struct {
	Subtotal       int    `json:"subtotal"`
	ServiceFee     int    `json:"serviceFee"`
	Total          int    `json:"total"`
	TotalFormatted string `json:"totalFormatted"`
}

type selectTicketRequest struct {
	TicketTypeID string `json:"ticketTypeId"`
}

type detailsRequest struct {
	Quantity  *int    `json:"quantity"`
	VisitDate *string `json:"visitDate"`
}

type paymentFormRequest struct {
	CardNumber *string `json:"cardNumber"`
	CardExpiry *string `json:"cardExpiry"`
	CardCvv    *string `json:"cardCvv"`
	CardHolder *string `json:"cardHolder"`
	Email      *string `json:"email"`
}

func toCheckoutResponse(id string, st checkout.State) checkoutResponse {
	resp := checkoutResponse{
		ID:           id,
		Step:         string(st.Step),
		TicketTypeID: st.TicketTypeID,
		Quantity:     st.Quantity,
		VisitDate:    st.VisitDate,
		Payment: checkoutPayment{
			CardNumber: st.Payment.CardNumber,
			CardExpiry: st.Payment.CardExpiry,
			CardCvvSet: st.Payment.CardCvv != "",
			CardHolder: st.Payment.CardHolder,
			Email:      st.Payment.Email,
		},
		PaymentError: st.PaymentError,
		Processing:   st.Processing,
		Totals: checkoutTotals{
			Subtotal:       st.Totals.Subtotal,
			ServiceFee:     st.Totals.ServiceFee,
			Total:          st.Totals.Total,
			TotalFormatted: checkout.FormatRM(st.Totals.Total),
		},
		CanContinue: st.CanContinue,
		CanPay:      st.CanPay,
	}
	if st.Result != nil {
		r := toPurchaseResponse(*st.Result)
		resp.Result = &r
	}
	return resp
}

func HandleCreateCheckout(svc CheckoutWizards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, st := svc.Create()
		writeJSON(w, http.StatusCreated, toCheckoutResponse(id, st))
	}
}

func HandleGetCheckout(svc CheckoutWizards) http.HandlerFunc {
	return checkoutAction(svc.Get)
}

func HandleCheckoutContinue(svc CheckoutWizards) http.HandlerFunc {
	return checkoutAction(svc.Continue)
}

func HandleCheckoutBack(svc CheckoutWizards) http.HandlerFunc {
	return checkoutAction(svc.Back)
}

func HandleCheckoutReset(svc CheckoutWizards) http.HandlerFunc {
	return checkoutAction(svc.Reset)
}

func checkoutAction(fn func(id string) (checkout.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		st, err := fn(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCheckoutResponse(id, st))
	}
}

func HandleCheckoutSelectTicket(svc CheckoutWizards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectTicketRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		id := chi.URLParam(r, "id")
		st, err := svc.SelectTicket(id, req.TicketTypeID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCheckoutResponse(id, st))
	}
}

func HandleCheckoutDetails(svc CheckoutWizards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req detailsRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		id := chi.URLParam(r, "id")
		st, err := svc.UpdateDetails(id, app.DetailsInput{Quantity: req.Quantity, VisitDate: req.VisitDate})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCheckoutResponse(id, st))
	}
}

func HandleCheckoutPayment(svc CheckoutWizards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentFormRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		id := chi.URLParam(r, "id")
		st, err := svc.UpdatePayment(id, app.PaymentInput{
			CardNumber: req.CardNumber,
			CardExpiry: req.CardExpiry,
			CardCvv:    req.CardCvv,
			CardHolder: req.CardHolder,
			Email:      req.Email,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCheckoutResponse(id, st))
	}
}

// HandleCheckoutPay charges the wizard's order and blocks until the
// gateway answers or the request is cancelled.
func HandleCheckoutPay(svc CheckoutWizards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		st, err := svc.Pay(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCheckoutResponse(id, st))
	}
}
