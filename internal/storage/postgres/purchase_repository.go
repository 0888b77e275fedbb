package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

func (r *PurchaseRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const purchaseColumns = `id, transaction_id, confirmation_code, ticket_type_id, ticket_name, quantity,
	visit_date, email, subtotal, service_fee, total, created_at`

// CreatePurchase stores p. A reused idempotency key yields
// domain.ErrIdempotencyConflict and leaves the surrounding transaction
// usable, so the caller can re-read the winning row.
func (r *PurchaseRepository) CreatePurchase(ctx context.Context, p domain.PurchaseResult, idempotencyKey string) error {
	const stmt = `
INSERT INTO purchases (` + purchaseColumns + `, idempotency_key)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (idempotency_key) DO NOTHING`

	tag, err := conn(ctx, r.pool).Exec(ctx, stmt,
		p.OrderID, p.TransactionID, p.ConfirmationCode, p.TicketTypeID, p.TicketName, p.Quantity,
		p.VisitDate, p.Email, p.Subtotal, p.ServiceFee, p.Total, p.CreatedAt, nullIfEmpty(idempotencyKey),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrIdempotencyConflict
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdempotencyConflict
	}
	return nil
}

// FindByIdempotencyKey returns nil when no purchase used key.
func (r *PurchaseRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.PurchaseResult, error) {
	const query = `SELECT ` + purchaseColumns + ` FROM purchases WHERE idempotency_key = $1`

	p, err := scanPurchase(conn(ctx, r.pool).QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepository) GetPurchase(ctx context.Context, id string) (domain.PurchaseResult, error) {
	const query = `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`

	p, err := scanPurchase(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.PurchaseResult{}, domain.ErrPurchaseNotFound
		}
		return domain.PurchaseResult{}, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func scanPurchase(row pgx.Row) (domain.PurchaseResult, error) {
	var p domain.PurchaseResult
	err := row.Scan(
		&p.OrderID, &p.TransactionID, &p.ConfirmationCode, &p.TicketTypeID, &p.TicketName, &p.Quantity,
		&p.VisitDate, &p.Email, &p.Subtotal, &p.ServiceFee, &p.Total, &p.CreatedAt,
	)
	return p, err
}
