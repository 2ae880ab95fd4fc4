package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterdesk/shelterdesk/internal/shared"
)

// Repository stores per-user dashboard layouts as JSON documents.
type Repository interface {
	Layout(ctx context.Context, userID string) ([]byte, error)
	SaveLayout(ctx context.Context, userID string, layout []byte) error
	DeleteLayout(ctx context.Context, userID string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed layout store.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Layout(ctx context.Context, userID string) ([]byte, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT layout FROM dashboard_layouts WHERE user_id = $1`, userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	return raw, err
}

func (r *repository) SaveLayout(ctx context.Context, userID string, layout []byte) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO dashboard_layouts (user_id, layout, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET layout = EXCLUDED.layout, updated_at = EXCLUDED.updated_at`,
		userID, layout, time.Now(),
	)
	return err
}

func (r *repository) DeleteLayout(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM dashboard_layouts WHERE user_id = $1`, userID)
	return err
}
