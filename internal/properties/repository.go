package properties

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterdesk/shelterdesk/internal/shared"
)

// Repository persists properties.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Property, int, error)
	Get(ctx context.Context, id int64) (Property, error)
	Create(ctx context.Context, property Property) (Property, error)
	Update(ctx context.Context, id int64, property Property) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const propertyColumns = `id, code, name, scheme_type, address, units, notes, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Property, int, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM properties WHERE 1=1`
	args := []interface{}{}

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		clause := ` AND (name ILIKE $1 OR code ILIKE $1)`
		query += clause
		countQuery += clause
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY name ASC`

	perPage := filters.PerPage
	if perPage > 0 {
		args = append(args, perPage)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		offset := (filters.Page - 1) * perPage
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.SchemeType, &p.Address, &p.Units, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		properties = append(properties, p)
	}
	return properties, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	var p Property
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Code, &p.Name, &p.SchemeType, &p.Address, &p.Units, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Property{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, property Property) (Property, error) {
	query := `INSERT INTO properties (code, name, scheme_type, address, units, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		property.Code, property.Name, property.SchemeType, property.Address,
		property.Units, property.Notes, now, now,
	).Scan(&property.ID)
	if err != nil {
		return Property{}, err
	}
	property.CreatedAt = now
	property.UpdatedAt = now
	return property, nil
}

func (r *repository) Update(ctx context.Context, id int64, property Property) error {
	query := `UPDATE properties SET code = $1, name = $2, scheme_type = $3, address = $4, units = $5, notes = $6, updated_at = $7 WHERE id = $8`
	tag, err := r.db.Exec(ctx, query,
		property.Code, property.Name, property.SchemeType, property.Address,
		property.Units, property.Notes, time.Now(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
