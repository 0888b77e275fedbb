package app

import (
	"context"
	"errors"
	"sync"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]domain.PurchaseResult
	byKey     map[string]string
	createErr error
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases: make(map[string]domain.PurchaseResult),
		byKey:     make(map[string]string),
	}
}

func (r *fakePurchaseRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakePurchaseRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.PurchaseResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byKey[key]
	if !ok {
		return nil, nil
	}
	p := r.purchases[id]
	return &p, nil
}

func (r *fakePurchaseRepo) CreatePurchase(_ context.Context, p domain.PurchaseResult, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if key != "" {
		if _, exists := r.byKey[key]; exists {
			return domain.ErrIdempotencyConflict
		}
		r.byKey[key] = p.OrderID
	}
	r.purchases[p.OrderID] = p
	return nil
}

func (r *fakePurchaseRepo) GetPurchase(_ context.Context, id string) (domain.PurchaseResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return domain.PurchaseResult{}, domain.ErrPurchaseNotFound
	}
	return p, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []domain.PurchaseResult
	err       error
}

func (p *fakePublisher) PublishPurchase(_ context.Context, r domain.PurchaseResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, r)
	return nil
}

type fakeContactRepo struct {
	messages []domain.ContactMessage
	err      error
}

func (r *fakeContactRepo) CreateContactMessage(_ context.Context, m domain.ContactMessage) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, m)
	return nil
}

var errBoom = errors.New("boom")
