package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// TicketPurchaser is the minimal interface needed for the purchase endpoints.
type TicketPurchaser interface {
	PurchaseWithKey(ctx context.Context, req domain.PurchaseRequest, key string) (domain.PurchaseResult, error)
	Get(ctx context.Context, id string) (domain.PurchaseResult, error)
}

type purchaseRequest struct {
	TicketTypeID string         `json:"ticketTypeId"`
	Quantity     int            `json:"quantity"`
	VisitDate    string         `json:"visitDate"`
	GuestEmail   string         `json:"guestEmail"`
	Payment      paymentRequest `json:"payment"`
}

type paymentRequest struct {
	Method     string `json:"method"`
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCvv    string `json:"cardCvv"`
	CardHolder string `json:"cardHolder"`
}

type purchaseResponse struct {
	Order            orderBody   `json:"order"`
	Payment          paymentBody `json:"payment"`
	ConfirmationCode string      `json:"confirmationCode"`
}

type orderBody struct {
	ID           string    `json:"id"`
	TicketTypeID string    `json:"ticketTypeId"`
	TicketName   string    `json:"ticketName"`
	Quantity     int       `json:"quantity"`
	VisitDate    string    `json:"visitDate"`
	Email        string    `json:"email"`
	Subtotal     int       `json:"subtotal"`
	ServiceFee   int       `json:"serviceFee"`
	Total        int       `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

type paymentBody struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Amount        int    `json:"amount"`
}

func toPurchaseResponse(p domain.PurchaseResult) purchaseResponse {
	return purchaseResponse{
		Order: orderBody{
			ID:           p.OrderID,
			TicketTypeID: p.TicketTypeID,
			TicketName:   p.TicketName,
			Quantity:     p.Quantity,
			VisitDate:    p.VisitDate,
			Email:        p.Email,
			Subtotal:     p.Subtotal,
			ServiceFee:   p.ServiceFee,
			Total:        p.Total,
			CreatedAt:    p.CreatedAt,
		},
		Payment: paymentBody{
			TransactionID: p.TransactionID,
			Status:        "succeeded",
			Amount:        p.Total,
		},
		ConfirmationCode: p.ConfirmationCode,
	}
}

// HandlePurchaseTickets returns an HTTP handler that charges and records a
// full purchase in one call. The Idempotency-Key header, when present,
// makes retries return the original purchase.
func HandlePurchaseTickets(svc TicketPurchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purchaseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Payment.Method != "" && req.Payment.Method != "card" {
			writeError(w, http.StatusUnprocessableEntity, codeValidationFailed, "only card payments are supported")
			return
		}

		result, err := svc.PurchaseWithKey(r.Context(), domain.PurchaseRequest{
			TicketTypeID: req.TicketTypeID,
			Quantity:     req.Quantity,
			VisitDate:    req.VisitDate,
			Payment: domain.PaymentForm{
				CardNumber: req.Payment.CardNumber,
				CardExpiry: req.Payment.CardExpiry,
				CardCvv:    req.Payment.CardCvv,
				CardHolder: req.Payment.CardHolder,
				Email:      req.GuestEmail,
			},
		}, r.Header.Get(headerIdempotencyKey))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPurchaseResponse(result))
	}
}

func HandleGetPurchase(svc TicketPurchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPurchaseResponse(result))
	}
}
