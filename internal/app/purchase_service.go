package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curiousguyinhis30s/themepark-website/internal/checkout"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
	"github.com/curiousguyinhis30s/themepark-website/internal/events"
	"github.com/curiousguyinhis30s/themepark-website/internal/metrics"
	"github.com/curiousguyinhis30s/themepark-website/internal/validate"
)

const visitDateLayout = "2006-01-02"

type PurchaseRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.PurchaseResult, error)
	CreatePurchase(ctx context.Context, p domain.PurchaseResult, idempotencyKey string) error
	GetPurchase(ctx context.Context, id string) (domain.PurchaseResult, error)
}

// PurchaseService prices, records and announces ticket purchases. It is
// the server-side checkout.Gateway.
type PurchaseService struct {
	repo      PurchaseRepository
	tickets   checkout.TicketLookup
	publisher events.Publisher
	clock     clock.Clock
	fee       int
	logger    *slog.Logger
}

type PurchaseServiceOption func(*PurchaseService)

func WithPurchaseServiceFee(fee int) PurchaseServiceOption {
	return func(s *PurchaseService) {
		if fee >= 0 {
			s.fee = fee
		}
	}
}

func WithPurchaseLogger(l *slog.Logger) PurchaseServiceOption {
	return func(s *PurchaseService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewPurchaseService(repo PurchaseRepository, tickets checkout.TicketLookup, publisher events.Publisher, clk clock.Clock, opts ...PurchaseServiceOption) *PurchaseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	svc := &PurchaseService{
		repo:      repo,
		tickets:   tickets,
		publisher: publisher,
		clock:     clk,
		fee:       checkout.ServiceFee,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ checkout.Gateway = (*PurchaseService)(nil)

// Purchase implements checkout.Gateway.
func (s *PurchaseService) Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.PurchaseResult, error) {
	return s.PurchaseWithKey(ctx, req, "")
}

// PurchaseWithKey records req once per idempotency key. Retrying with the
// same key and request returns the original result; a different request
// under the same key yields domain.ErrIdempotencyConflict.
func (s *PurchaseService) PurchaseWithKey(ctx context.Context, req domain.PurchaseRequest, key string) (domain.PurchaseResult, error) {
	req.Payment.CardNumber = checkout.StripSpaces(req.Payment.CardNumber)
	req.Payment.Email = strings.TrimSpace(req.Payment.Email)
	req.VisitDate = strings.TrimSpace(req.VisitDate)

	if fe := validatePurchase(req); !fe.Empty() {
		return domain.PurchaseResult{}, fe
	}
	ticket, err := s.tickets.TicketType(req.TicketTypeID)
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	totals := checkout.ComputeTotals(ticket.Price, req.Quantity, s.fee)
	candidate := domain.PurchaseResult{
		OrderID:          uuid.NewString(),
		TransactionID:    "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		ConfirmationCode: checkout.NewConfirmationCode(),
		TicketTypeID:     ticket.ID,
		TicketName:       ticket.Name,
		Quantity:         req.Quantity,
		VisitDate:        req.VisitDate,
		Email:            req.Payment.Email,
		Subtotal:         totals.Subtotal,
		ServiceFee:       totals.ServiceFee,
		Total:            totals.Total,
		CreatedAt:        s.clock.Now(),
	}

	var result domain.PurchaseResult
	created := false
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if key != "" {
			existing, err := s.repo.FindByIdempotencyKey(txCtx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				if !samePurchase(*existing, req) {
					return domain.ErrIdempotencyConflict
				}
				result = *existing
				return nil
			}
		}

		if err := s.repo.CreatePurchase(txCtx, candidate, key); err != nil {
			// Re-read on conflict to keep idempotent retries consistent under concurrency.
			if errors.Is(err, domain.ErrIdempotencyConflict) && key != "" {
				existing, findErr := s.repo.FindByIdempotencyKey(txCtx, key)
				if findErr != nil {
					return findErr
				}
				if existing != nil && samePurchase(*existing, req) {
					result = *existing
					return nil
				}
			}
			return err
		}
		result = candidate
		created = true
		return nil
	})
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	if created {
		metrics.PurchasesCompleted.WithLabelValues(result.TicketTypeID).Inc()
		metrics.PurchaseRevenue.Add(float64(result.Total))
		s.logger.Info("purchase completed",
			"order_id", result.OrderID,
			"ticket_type", result.TicketTypeID,
			"quantity", result.Quantity,
			"total", result.Total,
		)
		if err := s.publisher.PublishPurchase(ctx, result); err != nil {
			metrics.PublishErrors.Inc()
			s.logger.Error("publish purchase event", "order_id", result.OrderID, "error", err)
		}
	}
	return result, nil
}

func (s *PurchaseService) Get(ctx context.Context, id string) (domain.PurchaseResult, error) {
	return s.repo.GetPurchase(ctx, id)
}

func samePurchase(p domain.PurchaseResult, req domain.PurchaseRequest) bool {
	return p.TicketTypeID == req.TicketTypeID &&
		p.Quantity == req.Quantity &&
		p.VisitDate == req.VisitDate &&
		strings.EqualFold(p.Email, req.Payment.Email)
}

func validatePurchase(req domain.PurchaseRequest) validate.FieldErrors {
	fe := validate.FieldErrors{}
	if req.TicketTypeID == "" {
		fe.Add("ticketTypeId", "Select a ticket type")
	}
	if req.Quantity < checkout.MinQuantity || req.Quantity > checkout.MaxQuantity {
		fe.Add("quantity", "Quantity must be between "+strconv.Itoa(checkout.MinQuantity)+" and "+strconv.Itoa(checkout.MaxQuantity))
	}
	switch {
	case req.VisitDate == "":
		fe.Add("visitDate", "Visit date is required")
	default:
		if _, err := time.Parse(visitDateLayout, req.VisitDate); err != nil {
			fe.Add("visitDate", "Visit date must be YYYY-MM-DD")
		}
	}

	p := req.Payment
	switch {
	case p.Email == "":
		fe.Add("email", "Email is required")
	case !validate.Email(p.Email):
		fe.Add("email", "Invalid email format")
	}
	if strings.TrimSpace(p.CardHolder) == "" {
		fe.Add("cardHolder", "Cardholder name is required")
	}
	if p.CardNumber == "" {
		fe.Add("cardNumber", "Card number is required")
	}
	if p.CardExpiry == "" {
		fe.Add("cardExpiry", "Expiry date is required")
	}
	if p.CardCvv == "" {
		fe.Add("cardCvv", "CVV is required")
	}
	return fe
}
