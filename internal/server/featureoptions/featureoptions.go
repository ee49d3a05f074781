package featureoptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/dbx"
)

// FeatureOption is one selectable value within a feature category,
// e.g. category "interior" value "balcony". The (category, value) pair
// is unique.
type FeatureOption struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, opt *FeatureOption) (*FeatureOption, error)
	List(ctx context.Context) ([]*FeatureOption, error)
	ListByCategory(ctx context.Context, category string) ([]*FeatureOption, error)
	Delete(ctx context.Context, id string) error

	WithTx(tx dbx.DBTX) Repository
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) WithTx(tx dbx.DBTX) Repository {
	return &PostgresRepository{db: tx}
}

func (r *PostgresRepository) Create(ctx context.Context, opt *FeatureOption) (*FeatureOption, error) {
	query := `INSERT INTO feature_options (category, value)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, opt.Category, opt.Value).
		Scan(&opt.ID, &opt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return opt, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*FeatureOption, error) {
	return r.queryMany(ctx,
		`SELECT id, category, value, created_at FROM feature_options ORDER BY category, value`)
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, category string) ([]*FeatureOption, error) {
	return r.queryMany(ctx,
		`SELECT id, category, value, created_at FROM feature_options WHERE category = $1 ORDER BY value`,
		category)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*FeatureOption, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*FeatureOption
	for rows.Next() {
		opt := &FeatureOption{}
		if err := rows.Scan(&opt.ID, &opt.Category, &opt.Value, &opt.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feature_options WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
