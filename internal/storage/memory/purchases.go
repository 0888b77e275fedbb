package memory

import (
	"context"
	"sync"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// PurchaseRepository keeps purchases in process memory. WithTx holds the
// store lock, so a transaction body sees a consistent view.
type PurchaseRepository struct {
	mu        sync.Mutex
	purchases map[string]domain.PurchaseResult
	byKey     map[string]string
}

func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{
		purchases: make(map[string]domain.PurchaseResult),
		byKey:     make(map[string]string),
	}
}

type txMarker struct{}

func (r *PurchaseRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(context.WithValue(ctx, txMarker{}, true))
}

// lock takes the store lock unless ctx is already inside WithTx.
func (r *PurchaseRepository) lock(ctx context.Context) func() {
	if ctx.Value(txMarker{}) != nil {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *PurchaseRepository) CreatePurchase(ctx context.Context, p domain.PurchaseResult, idempotencyKey string) error {
	defer r.lock(ctx)()
	if idempotencyKey != "" {
		if _, exists := r.byKey[idempotencyKey]; exists {
			return domain.ErrIdempotencyConflict
		}
		r.byKey[idempotencyKey] = p.OrderID
	}
	r.purchases[p.OrderID] = p
	return nil
}

func (r *PurchaseRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.PurchaseResult, error) {
	defer r.lock(ctx)()
	id, ok := r.byKey[key]
	if !ok {
		return nil, nil
	}
	p := r.purchases[id]
	return &p, nil
}

func (r *PurchaseRepository) GetPurchase(ctx context.Context, id string) (domain.PurchaseResult, error) {
	defer r.lock(ctx)()
	p, ok := r.purchases[id]
	if !ok {
		return domain.PurchaseResult{}, domain.ErrPurchaseNotFound
	}
	return p, nil
}

// ContactRepository keeps contact messages in process memory.
type ContactRepository struct {
	mu       sync.Mutex
	messages []domain.ContactMessage
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{}
}

func (r *ContactRepository) CreateContactMessage(_ context.Context, m domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

// Messages returns a copy of every stored message, oldest first.
func (r *ContactRepository) Messages() []domain.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ContactMessage(nil), r.messages...)
}
