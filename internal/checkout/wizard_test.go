package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/catalog"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

var now = time.Date(2025, 4, 2, 11, 0, 0, 0, time.UTC)

func noSleep(context.Context, time.Duration) error { return nil }

func newGateway() *SimulatedGateway {
	gw := NewSimulatedGateway(catalog.New(), clock.NewFixed(now))
	gw.Sleep = noSleep
	return gw
}

func fillPayment(f *domain.PaymentForm) {
	f.Email = "guest@example.com"
	f.CardHolder = "Ali Guest"
	f.CardNumber = "4111111111111111"
	f.CardExpiry = "1229"
	f.CardCvv = "123"
}

// toPayment drives a fresh wizard to the payment step with 3 day passes.
func toPayment(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard(catalog.New())
	if err := w.SelectTicket("day-pass"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := w.Continue(); err != nil {
		t.Fatalf("continue to details: %v", err)
	}
	if err := w.SetQuantity(3); err != nil {
		t.Fatalf("quantity: %v", err)
	}
	if err := w.SetVisitDate("2025-04-20"); err != nil {
		t.Fatalf("visit date: %v", err)
	}
	if err := w.Continue(); err != nil {
		t.Fatalf("continue to payment: %v", err)
	}
	return w
}

func TestWizard_ContinueRequiresTicket(t *testing.T) {
	t.Parallel()

	w := NewWizard(catalog.New())
	if w.CanContinue() {
		t.Fatalf("expected continue disabled without a ticket")
	}
	if err := w.Continue(); err != domain.ErrNoTicketSelected {
		t.Fatalf("expected ErrNoTicketSelected, got %v", err)
	}
	if err := w.SelectTicket("nope"); err != domain.ErrTicketTypeNotFound {
		t.Fatalf("expected ErrTicketTypeNotFound, got %v", err)
	}
	if err := w.SelectTicket("day-pass"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !w.CanContinue() {
		t.Fatalf("expected continue enabled after selecting a ticket")
	}
}

func TestWizard_DetailsRequireVisitDate(t *testing.T) {
	t.Parallel()

	w := NewWizard(catalog.New())
	_ = w.SelectTicket("express-pass")
	_ = w.Continue()

	if w.CanContinue() {
		t.Fatalf("expected continue disabled without a visit date")
	}
	if err := w.Continue(); err != domain.ErrVisitDateRequired {
		t.Fatalf("expected ErrVisitDateRequired, got %v", err)
	}
	if err := w.SetQuantity(0); err != domain.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := w.SetQuantity(11); err != domain.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestWizard_Totals(t *testing.T) {
	t.Parallel()

	w := NewWizard(catalog.New())
	if got := w.Totals(); got.Subtotal != 0 || got.Total != ServiceFee {
		t.Fatalf("expected zero subtotal before selection, got %+v", got)
	}

	w = toPayment(t)
	got := w.Totals()
	if got.Subtotal != 297 || got.ServiceFee != 5 || got.Total != 302 {
		t.Fatalf("expected 297 + 5 = 302, got %+v", got)
	}

	for q := MinQuantity; q <= MaxQuantity; q++ {
		tt := ComputeTotals(189, q, ServiceFee)
		if tt.Total != 189*q+5 {
			t.Fatalf("quantity %d: expected total %d, got %d", q, 189*q+5, tt.Total)
		}
	}
}

func TestWizard_BackKeepsValues(t *testing.T) {
	t.Parallel()

	w := toPayment(t)
	_ = w.UpdatePayment(func(f *domain.PaymentForm) { f.Email = "a@b.co" })

	if err := w.Back(); err != nil {
		t.Fatalf("back to details: %v", err)
	}
	if err := w.Back(); err != nil {
		t.Fatalf("back to select: %v", err)
	}
	if w.Step() != StepSelect {
		t.Fatalf("expected select step, got %s", w.Step())
	}
	if err := w.Back(); err != domain.ErrInvalidStep {
		t.Fatalf("expected ErrInvalidStep at select, got %v", err)
	}
	if w.TicketTypeID() != "day-pass" || w.Quantity() != 3 || w.VisitDate() != "2025-04-20" || w.Payment().Email != "a@b.co" {
		t.Fatalf("expected values preserved, got %+v", w.State())
	}

	_ = w.Continue()
	_ = w.Continue()
	if w.Step() != StepPayment {
		t.Fatalf("expected to return to payment without re-entry, got %s", w.Step())
	}
}

func TestWizard_PaymentFieldsFormattedAndRequired(t *testing.T) {
	t.Parallel()

	w := toPayment(t)
	if w.CanPay() {
		t.Fatalf("expected pay disabled with empty form")
	}
	if err := w.Pay(context.Background(), newGateway()); err != domain.ErrPaymentIncomplete {
		t.Fatalf("expected ErrPaymentIncomplete, got %v", err)
	}

	_ = w.UpdatePayment(fillPayment)
	p := w.Payment()
	if p.CardNumber != "4111 1111 1111 1111" {
		t.Fatalf("expected grouped card number, got %q", p.CardNumber)
	}
	if p.CardExpiry != "12/29" {
		t.Fatalf("expected MM/YY expiry, got %q", p.CardExpiry)
	}
	if !w.CanPay() {
		t.Fatalf("expected pay enabled with complete form")
	}

	if err := w.SetCardCvv("12a34567"); err != nil {
		t.Fatalf("set cvv: %v", err)
	}
	if got := w.Payment().CardCvv; got != "1234" {
		t.Fatalf("expected cvv digits capped at 4, got %q", got)
	}

	_ = w.UpdatePayment(func(f *domain.PaymentForm) { f.CardCvv = "" })
	if w.CanPay() {
		t.Fatalf("expected pay disabled when cvv cleared")
	}
}

func TestWizard_PayThenReset(t *testing.T) {
	t.Parallel()

	w := toPayment(t)
	_ = w.UpdatePayment(fillPayment)

	if err := w.Pay(context.Background(), newGateway()); err != nil {
		t.Fatalf("expected payment to succeed, got %v", err)
	}
	if w.Step() != StepSuccess {
		t.Fatalf("expected success step, got %s", w.Step())
	}
	res := w.Result()
	if res == nil || res.ConfirmationCode == "" || res.OrderID == "" {
		t.Fatalf("expected synthesized result, got %+v", res)
	}
	if res.Total != 302 || res.Quantity != 3 || res.Email != "guest@example.com" {
		t.Fatalf("expected echoed order fields, got %+v", res)
	}

	if err := w.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st := w.State()
	if st.Step != StepSelect || st.TicketTypeID != "" || st.Quantity != 1 || st.VisitDate != "" ||
		st.Payment != (domain.PaymentForm{}) || st.Result != nil || st.PaymentError != "" {
		t.Fatalf("expected all fields cleared, got %+v", st)
	}
}

func TestWizard_ResetOnlyFromSuccess(t *testing.T) {
	t.Parallel()

	w := toPayment(t)
	if err := w.Reset(); err != domain.ErrInvalidStep {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
}

type failingGateway struct{ err error }

func (g failingGateway) Purchase(context.Context, domain.PurchaseRequest) (domain.PurchaseResult, error) {
	return domain.PurchaseResult{}, g.err
}

func TestWizard_GatewayErrorShownOnPaymentStep(t *testing.T) {
	t.Parallel()

	w := toPayment(t)
	_ = w.UpdatePayment(fillPayment)

	boom := errors.New("card declined")
	if err := w.Pay(context.Background(), failingGateway{err: boom}); err != boom {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if w.Step() != StepPayment || w.PaymentError() != "card declined" || w.Processing() {
		t.Fatalf("expected to stay on payment with error, got %+v", w.State())
	}

	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	_ = w.Continue()
	if w.PaymentError() != "" {
		t.Fatalf("expected error cleared on re-entering payment")
	}
}

func TestWizard_BeginPaymentBlocksEdits(t *testing.T) {
	t.Parallel()

	w := toPayment(t)
	_ = w.UpdatePayment(fillPayment)

	req, err := w.BeginPayment()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if req.Payment.CardNumber != "4111111111111111" {
		t.Fatalf("expected card number without spaces, got %q", req.Payment.CardNumber)
	}
	if _, err := w.BeginPayment(); err != domain.ErrPaymentInProgress {
		t.Fatalf("expected ErrPaymentInProgress, got %v", err)
	}
	if err := w.Back(); err != domain.ErrPaymentInProgress {
		t.Fatalf("expected ErrPaymentInProgress on back, got %v", err)
	}
	if err := w.UpdatePayment(fillPayment); err != domain.ErrPaymentInProgress {
		t.Fatalf("expected ErrPaymentInProgress on edit, got %v", err)
	}
}

func TestSimulatedGateway_DeclinedTestCardStillSucceeds(t *testing.T) {
	t.Parallel()

	res, err := newGateway().Purchase(context.Background(), domain.PurchaseRequest{
		TicketTypeID: "day-pass",
		Quantity:     1,
		VisitDate:    "2025-04-20",
		Payment:      domain.PaymentForm{CardNumber: "4000000000000002", Email: "x@y.z"},
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if res.Total != 104 || !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSimulatedGateway_HonorsContext(t *testing.T) {
	t.Parallel()

	gw := NewSimulatedGateway(catalog.New(), clock.NewFixed(now))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Purchase(ctx, domain.PurchaseRequest{TicketTypeID: "day-pass", Quantity: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWizard_WithServiceFee(t *testing.T) {
	t.Parallel()

	w := NewWizard(catalog.New(), WithServiceFee(0))
	if err := w.SelectTicket("day-pass"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := w.Totals(); got.ServiceFee != 0 || got.Total != 99 {
		t.Fatalf("expected fee-free total 99, got %+v", got)
	}
}

func TestLatencyGateway_WaitsThenDelegates(t *testing.T) {
	t.Parallel()

	var waited time.Duration
	gw := LatencyGateway{
		Next:    newGateway(),
		Latency: 2 * time.Second,
		Sleep: func(_ context.Context, d time.Duration) error {
			waited = d
			return nil
		},
	}
	res, err := gw.Purchase(context.Background(), domain.PurchaseRequest{TicketTypeID: "day-pass", Quantity: 1})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if waited != 2*time.Second || res.Total != 104 {
		t.Fatalf("expected 2s wait and total 104, got %s and %+v", waited, res)
	}

	gw.Sleep = Sleep
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gw.Purchase(ctx, domain.PurchaseRequest{TicketTypeID: "day-pass", Quantity: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWizard_FieldSetters(t *testing.T) {
	t.Parallel()

	w := NewWizard(catalog.New())
	if err := w.SetCardNumber("4111"); !errors.Is(err, domain.ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep before payment step, got %v", err)
	}

	w = toPayment(t)
	for _, set := range []func() error{
		func() error { return w.SetCardNumber("5555444433331111") },
		func() error { return w.SetCardExpiry("0430") },
		func() error { return w.SetCardCvv("321") },
		func() error { return w.SetCardHolder("Tan Wei") },
		func() error { return w.SetEmail("family@demo.com") },
	} {
		if err := set(); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	p := w.Payment()
	if p.CardNumber != "5555 4444 3333 1111" || p.CardExpiry != "04/30" || p.CardCvv != "321" {
		t.Fatalf("unexpected payment form %+v", p)
	}
	if !w.CanPay() {
		t.Fatalf("expected wizard to be payable")
	}
}
