package checkout

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const DefaultPaymentLatency = 1500 * time.Millisecond

// Gateway charges a purchase request.
type Gateway interface {
	Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.PurchaseResult, error)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SimulatedGateway stands in for a payment provider. It waits a fixed
// latency and always approves; there is no declined-card branch even for
// the "declined" test card number.
type SimulatedGateway struct {
	Catalog    TicketLookup
	Clock      clock.Clock
	Latency    time.Duration
	Sleep      Sleeper
	ServiceFee int
}

// NewSimulatedGateway returns a gateway with the default latency and fee.
func NewSimulatedGateway(catalog TicketLookup, clk clock.Clock) *SimulatedGateway {
	return &SimulatedGateway{
		Catalog:    catalog,
		Clock:      clk,
		Latency:    DefaultPaymentLatency,
		Sleep:      Sleep,
		ServiceFee: ServiceFee,
	}
}

func (g *SimulatedGateway) Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.PurchaseResult, error) {
	ticket, err := g.Catalog.TicketType(req.TicketTypeID)
	if err != nil {
		return domain.PurchaseResult{}, err
	}
	if g.Sleep != nil && g.Latency > 0 {
		if err := g.Sleep(ctx, g.Latency); err != nil {
			return domain.PurchaseResult{}, err
		}
	}

	totals := ComputeTotals(ticket.Price, req.Quantity, g.ServiceFee)
	return domain.PurchaseResult{
		OrderID:          uuid.NewString(),
		TransactionID:    "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		ConfirmationCode: NewConfirmationCode(),
		TicketTypeID:     ticket.ID,
		TicketName:       ticket.Name,
		Quantity:         req.Quantity,
		VisitDate:        req.VisitDate,
		Email:            req.Payment.Email,
		Subtotal:         totals.Subtotal,
		ServiceFee:       totals.ServiceFee,
		Total:            totals.Total,
		CreatedAt:        g.Clock.Now(),
	}, nil
}

// LatencyGateway waits Latency before handing each charge to Next, the
// way a card processor keeps the buyer waiting.
type LatencyGateway struct {
	Next    Gateway
	Latency time.Duration
	Sleep   Sleeper
}

func (g LatencyGateway) Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.PurchaseResult, error) {
	if g.Sleep != nil && g.Latency > 0 {
		if err := g.Sleep(ctx, g.Latency); err != nil {
			return domain.PurchaseResult{}, err
		}
	}
	return g.Next.Purchase(ctx, req)
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewConfirmationCode returns a short code like "TP-7K3M9Q2X" that avoids
// easily confused characters.
func NewConfirmationCode() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "TP-" + strings.ToUpper(uuid.NewString()[:8])
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return "TP-" + string(b)
}
