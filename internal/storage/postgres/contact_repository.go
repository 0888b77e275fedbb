package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) CreateContactMessage(ctx context.Context, m domain.ContactMessage) error {
	const stmt = `
INSERT INTO contact_messages (id, name, email, subject, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := conn(ctx, r.pool).Exec(ctx, stmt, m.ID, m.Name, m.Email, m.Subject, m.Message, m.CreatedAt); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}
