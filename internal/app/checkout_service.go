package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/curiousguyinhis30s/themepark-website/internal/checkout"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const defaultCheckoutSessionTTL = time.Hour

type checkoutSession struct {
	mu      sync.Mutex
	wizard  *checkout.Wizard
	touched time.Time
}

// CheckoutService hosts purchase wizards server-side. Operations on one
// wizard are serialized; the gateway call runs outside the wizard lock so
// reads stay responsive while a payment is processing.
type CheckoutService struct {
	tickets checkout.TicketLookup
	gateway checkout.Gateway
	clock   clock.Clock
	ttl     time.Duration
	fee     int
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*checkoutSession
}

type CheckoutServiceOption func(*CheckoutService)

func WithCheckoutSessionTTL(d time.Duration) CheckoutServiceOption {
	return func(s *CheckoutService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func WithCheckoutServiceFee(fee int) CheckoutServiceOption {
	return func(s *CheckoutService) {
		if fee >= 0 {
			s.fee = fee
		}
	}
}

func WithCheckoutLogger(l *slog.Logger) CheckoutServiceOption {
	return func(s *CheckoutService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewCheckoutService(tickets checkout.TicketLookup, gateway checkout.Gateway, clk clock.Clock, opts ...CheckoutServiceOption) *CheckoutService {
	svc := &CheckoutService{
		tickets:  tickets,
		gateway:  gateway,
		clock:    clk,
		ttl:      defaultCheckoutSessionTTL,
		fee:      checkout.ServiceFee,
		logger:   slog.Default(),
		sessions: make(map[string]*checkoutSession),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create starts a wizard at the select step and returns its id.
func (s *CheckoutService) Create() (string, checkout.State) {
	id := uuid.NewString()
	sess := &checkoutSession{
		wizard:  checkout.NewWizard(s.tickets, checkout.WithServiceFee(s.fee)),
		touched: s.clock.Now(),
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id, sess.wizard.State()
}

func (s *CheckoutService) Get(id string) (checkout.State, error) {
	return s.update(id, func(*checkout.Wizard) error { return nil })
}

func (s *CheckoutService) SelectTicket(id, ticketTypeID string) (checkout.State, error) {
	return s.update(id, func(w *checkout.Wizard) error { return w.SelectTicket(ticketTypeID) })
}

func (s *CheckoutService) Continue(id string) (checkout.State, error) {
	return s.update(id, (*checkout.Wizard).Continue)
}

func (s *CheckoutService) Back(id string) (checkout.State, error) {
	return s.update(id, (*checkout.Wizard).Back)
}

func (s *CheckoutService) Reset(id string) (checkout.State, error) {
	return s.update(id, (*checkout.Wizard).Reset)
}

// DetailsInput carries a partial update of the details step. Nil fields
// are left unchanged.
type DetailsInput struct {
	Quantity  *int
	VisitDate *string
}

func (s *CheckoutService) UpdateDetails(id string, in DetailsInput) (checkout.State, error) {
	return s.update(id, func(w *checkout.Wizard) error {
		if in.Quantity != nil {
			if err := w.SetQuantity(*in.Quantity); err != nil {
				return err
			}
		}
		if in.VisitDate != nil {
			if err := w.SetVisitDate(*in.VisitDate); err != nil {
				return err
			}
		}
		return nil
	})
}

// PaymentInput carries a partial update of the payment form. Nil fields
// are left unchanged.
type PaymentInput struct {
	CardNumber *string
	CardExpiry *string
	CardCvv    *string
	CardHolder *string
	Email      *string
}

func (s *CheckoutService) UpdatePayment(id string, in PaymentInput) (checkout.State, error) {
	return s.update(id, func(w *checkout.Wizard) error {
		return w.UpdatePayment(func(f *domain.PaymentForm) {
			setIfPresent(&f.CardNumber, in.CardNumber)
			setIfPresent(&f.CardExpiry, in.CardExpiry)
			setIfPresent(&f.CardCvv, in.CardCvv)
			setIfPresent(&f.CardHolder, in.CardHolder)
			setIfPresent(&f.Email, in.Email)
		})
	})
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Pay charges the wizard's order. Wizard errors (wrong step, incomplete
// form, payment already running) are returned; a gateway failure is not an
// error here and shows up as the state's PaymentError instead.
func (s *CheckoutService) Pay(ctx context.Context, id string) (checkout.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return checkout.State{}, err
	}

	sess.mu.Lock()
	req, err := sess.wizard.BeginPayment()
	sess.touched = s.clock.Now()
	sess.mu.Unlock()
	if err != nil {
		return checkout.State{}, err
	}

	result, payErr := s.gateway.Purchase(ctx, req)
	if payErr != nil {
		s.logger.Warn("checkout payment failed", "checkout_id", id, "error", payErr)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.wizard.CompletePayment(result, payErr)
	return sess.wizard.State(), nil
}

// Sweep drops wizards untouched since before now minus the TTL. Wizards
// with a payment in flight are kept.
func (s *CheckoutService) Sweep(now time.Time) int {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.touched.Before(cutoff) && !sess.wizard.Processing()
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *CheckoutService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.clock.Now()); n > 0 {
				s.logger.Info("expired checkout wizards", "count", n)
			}
		}
	}
}

func (s *CheckoutService) update(id string, fn func(*checkout.Wizard) error) (checkout.State, error) {
	sess, err := s.get(id)
	if err != nil {
		return checkout.State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touched = s.clock.Now()
	if err := fn(sess.wizard); err != nil {
		return checkout.State{}, err
	}
	return sess.wizard.State(), nil
}

func (s *CheckoutService) get(id string) (*checkoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}
