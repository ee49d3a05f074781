package trackviews

import (
	"context"
	"fmt"

	"github.com/whoestate/backend/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) WithTx(tx dbx.DBTX) Repository {
	return &PostgresRepository{db: tx}
}

// Record upserts on the (user_id, property_id) pair so a repeat view
// refreshes viewed_at instead of inserting a second row.
func (r *PostgresRepository) Record(ctx context.Context, userID, propertyID string) (*TrackView, bool, error) {
	// xmax = 0 distinguishes a fresh insert from a conflict update
	query := `INSERT INTO track_views (user_id, property_id, viewed_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, property_id) DO UPDATE SET viewed_at = now()
		RETURNING id, user_id, property_id, viewed_at, (xmax = 0)`

	tv := &TrackView{}
	var inserted bool
	err := r.db.QueryRowContext(ctx, query, userID, propertyID).
		Scan(&tv.ID, &tv.UserID, &tv.PropertyID, &tv.ViewedAt, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("db error: %w", err)
	}
	return tv, inserted, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*TrackView, error) {
	query := `SELECT id, user_id, property_id, viewed_at
		FROM track_views WHERE user_id = $1 ORDER BY viewed_at DESC`
	return r.queryMany(ctx, query, userID)
}

func (r *PostgresRepository) ListByProperty(ctx context.Context, propertyID string) ([]*TrackView, error) {
	query := `SELECT id, user_id, property_id, viewed_at
		FROM track_views WHERE property_id = $1 ORDER BY viewed_at DESC`
	return r.queryMany(ctx, query, propertyID)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*TrackView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*TrackView
	for rows.Next() {
		tv := &TrackView{}
		if err := rows.Scan(&tv.ID, &tv.UserID, &tv.PropertyID, &tv.ViewedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountForProperty(ctx context.Context, propertyID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM track_views WHERE property_id = $1`, propertyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
