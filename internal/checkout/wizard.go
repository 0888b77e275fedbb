// Package checkout implements the multi-step ticket purchase wizard.
package checkout

import (
	"context"
	"strings"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

type Step string

const (
	StepSelect  Step = "select"
	StepDetails Step = "details"
	StepPayment Step = "payment"
	StepSuccess Step = "success"
)

const (
	ServiceFee  = 5
	MinQuantity = 1
	MaxQuantity = 10
)

// TicketLookup resolves ticket type ids to priced products.
type TicketLookup interface {
	TicketType(id string) (domain.TicketType, error)
}

// Totals is the price breakdown shown on the details and payment steps.
type Totals struct {
	Subtotal   int
	ServiceFee int
	Total      int
}

// ComputeTotals prices quantity tickets at price plus the flat fee.
func ComputeTotals(price, quantity, fee int) Totals {
	subtotal := price * quantity
	return Totals{Subtotal: subtotal, ServiceFee: fee, Total: subtotal + fee}
}

// Wizard walks a visitor through select -> details -> payment -> success.
// Going back never discards entered values; only Reset clears them.
// A Wizard is not safe for concurrent use.
type Wizard struct {
	tickets TicketLookup
	fee     int

	step         Step
	ticketTypeID string
	quantity     int
	visitDate    string
	payment      domain.PaymentForm
	paymentError string
	result       *domain.PurchaseResult
	processing   bool
}

type WizardOption func(*Wizard)

// WithServiceFee overrides the flat per-order fee.
func WithServiceFee(fee int) WizardOption {
	return func(w *Wizard) {
		if fee >= 0 {
			w.fee = fee
		}
	}
}

// NewWizard returns a wizard at the select step.
func NewWizard(tickets TicketLookup, opts ...WizardOption) *Wizard {
	w := &Wizard{
		tickets:  tickets,
		fee:      ServiceFee,
		step:     StepSelect,
		quantity: MinQuantity,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) Step() Step { return w.step }
func (w *Wizard) TicketTypeID() string { return w.ticketTypeID }
func (w *Wizard) Quantity() int { return w.quantity }
func (w *Wizard) VisitDate() string { return w.visitDate }
func (w *Wizard) Payment() domain.PaymentForm { return w.payment }
func (w *Wizard) PaymentError() string { return w.paymentError }
func (w *Wizard) Processing() bool { return w.processing }

// Result is set only at the success step.
func (w *Wizard) Result() *domain.PurchaseResult {
	if w.result == nil {
		return nil
	}
	r := *w.result
	return &r
}

// SelectTicket chooses a ticket type. Only allowed on the select step.
func (w *Wizard) SelectTicket(id string) error {
	if w.step != StepSelect {
		return domain.ErrInvalidStep
	}
	if _, err := w.tickets.TicketType(id); err != nil {
		return err
	}
	w.ticketTypeID = id
	return nil
}

// SelectedTicket returns the chosen ticket type, if any.
func (w *Wizard) SelectedTicket() (domain.TicketType, bool) {
	if w.ticketTypeID == "" {
		return domain.TicketType{}, false
	}
	t, err := w.tickets.TicketType(w.ticketTypeID)
	if err != nil {
		return domain.TicketType{}, false
	}
	return t, true
}

// SetQuantity sets the number of tickets, within [MinQuantity, MaxQuantity].
func (w *Wizard) SetQuantity(n int) error {
	if w.step != StepDetails {
		return domain.ErrInvalidStep
	}
	if n < MinQuantity || n > MaxQuantity {
		return domain.ErrInvalidQuantity
	}
	w.quantity = n
	return nil
}

func (w *Wizard) SetVisitDate(date string) error {
	if w.step != StepDetails {
		return domain.ErrInvalidStep
	}
	w.visitDate = strings.TrimSpace(date)
	return nil
}

// UpdatePayment applies fn to the payment form, formatting the card number,
// expiry and CVV the way the form fields do on input.
func (w *Wizard) UpdatePayment(fn func(*domain.PaymentForm)) error {
	if w.step != StepPayment {
		return domain.ErrInvalidStep
	}
	if w.processing {
		return domain.ErrPaymentInProgress
	}
	form := w.payment
	fn(&form)
	form.CardNumber = FormatCardNumber(form.CardNumber)
	form.CardExpiry = FormatExpiry(form.CardExpiry)
	form.CardCvv = FormatCvv(form.CardCvv)
	w.payment = form
	return nil
}

func (w *Wizard) SetCardNumber(v string) error {
	return w.UpdatePayment(func(f *domain.PaymentForm) { f.CardNumber = v })
}

func (w *Wizard) SetCardExpiry(v string) error {
	return w.UpdatePayment(func(f *domain.PaymentForm) { f.CardExpiry = v })
}

func (w *Wizard) SetCardCvv(v string) error {
	return w.UpdatePayment(func(f *domain.PaymentForm) { f.CardCvv = v })
}

func (w *Wizard) SetCardHolder(v string) error {
	return w.UpdatePayment(func(f *domain.PaymentForm) { f.CardHolder = v })
}

func (w *Wizard) SetEmail(v string) error {
	return w.UpdatePayment(func(f *domain.PaymentForm) { f.Email = v })
}

// Totals prices the current selection; the subtotal is zero until a
// ticket is chosen.
func (w *Wizard) Totals() Totals {
	price := 0
	if t, ok := w.SelectedTicket(); ok {
		price = t.Price
	}
	return ComputeTotals(price, w.quantity, w.fee)
}

// CanContinue reports whether the current step's required fields are set.
func (w *Wizard) CanContinue() bool {
	switch w.step {
	case StepSelect:
		return w.ticketTypeID != ""
	case StepDetails:
		return w.visitDate != ""
	default:
		return false
	}
}

// Continue advances select -> details or details -> payment.
func (w *Wizard) Continue() error {
	switch w.step {
	case StepSelect:
		if w.ticketTypeID == "" {
			return domain.ErrNoTicketSelected
		}
		w.step = StepDetails
	case StepDetails:
		if w.visitDate == "" {
			return domain.ErrVisitDateRequired
		}
		w.paymentError = ""
		w.step = StepPayment
	default:
		return domain.ErrInvalidStep
	}
	return nil
}

// Back returns details -> select or payment -> details, keeping all values.
func (w *Wizard) Back() error {
	switch w.step {
	case StepDetails:
		w.step = StepSelect
	case StepPayment:
		if w.processing {
			return domain.ErrPaymentInProgress
		}
		w.step = StepDetails
	default:
		return domain.ErrInvalidStep
	}
	return nil
}

// CanPay reports whether every payment field is filled in.
func (w *Wizard) CanPay() bool {
	p := w.payment
	return w.step == StepPayment && !w.processing &&
		p.Email != "" && p.CardHolder != "" && p.CardNumber != "" && p.CardExpiry != "" && p.CardCvv != ""
}

// BeginPayment marks the wizard as processing and returns the request to
// charge. The caller must finish with CompletePayment.
func (w *Wizard) BeginPayment() (domain.PurchaseRequest, error) {
	if w.step != StepPayment {
		return domain.PurchaseRequest{}, domain.ErrInvalidStep
	}
	if w.processing {
		return domain.PurchaseRequest{}, domain.ErrPaymentInProgress
	}
	if !w.CanPay() {
		return domain.PurchaseRequest{}, domain.ErrPaymentIncomplete
	}
	w.paymentError = ""
	w.processing = true

	payment := w.payment
	payment.CardNumber = StripSpaces(payment.CardNumber)
	return domain.PurchaseRequest{
		TicketTypeID: w.ticketTypeID,
		Quantity:     w.quantity,
		VisitDate:    w.visitDate,
		Payment:      payment,
	}, nil
}

// CompletePayment records the gateway outcome. On error the wizard stays
// on the payment step and exposes the message via PaymentError.
func (w *Wizard) CompletePayment(result domain.PurchaseResult, err error) {
	w.processing = false
	if err != nil {
		w.paymentError = err.Error()
		return
	}
	w.result = &result
	w.step = StepSuccess
}

// Pay charges the current order through gw and completes the payment.
// The returned error is also available from PaymentError.
func (w *Wizard) Pay(ctx context.Context, gw Gateway) error {
	req, err := w.BeginPayment()
	if err != nil {
		return err
	}
	result, err := gw.Purchase(ctx, req)
	w.CompletePayment(result, err)
	return err
}

// Reset leaves the success step and clears every field.
func (w *Wizard) Reset() error {
	if w.step != StepSuccess {
		return domain.ErrInvalidStep
	}
	w.step = StepSelect
	w.ticketTypeID = ""
	w.quantity = MinQuantity
	w.visitDate = ""
	w.payment = domain.PaymentForm{}
	w.paymentError = ""
	w.result = nil
	return nil
}

// State is a read-only view of the wizard for rendering.
type State struct {
	Step         Step
	TicketTypeID string
	Quantity     int
	VisitDate    string
	Payment      domain.PaymentForm
	PaymentError string
	Processing   bool
	Result       *domain.PurchaseResult
	Totals       Totals
	CanContinue  bool
	CanPay       bool
}

func (w *Wizard) State() State {
	return State{
		Step:         w.step,
		TicketTypeID: w.ticketTypeID,
		Quantity:     w.quantity,
		VisitDate:    w.visitDate,
		Payment:      w.payment,
		PaymentError: w.paymentError,
		Processing:   w.processing,
		Result:       w.Result(),
		Totals:       w.Totals(),
		CanContinue:  w.CanContinue(),
		CanPay:       w.CanPay(),
	}
}
