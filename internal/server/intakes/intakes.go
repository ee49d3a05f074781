package intakes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/dbx"
)

// ClientIntake is a walk-in client record taken down by an agent.
type ClientIntake struct {
	ID          string    `json:"id"`
	NameSurname string    `json:"namesurname"`
	Phone       int64     `json:"phone"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, in *ClientIntake) (*ClientIntake, error)
	GetByID(ctx context.Context, id string) (*ClientIntake, error)
	List(ctx context.Context) ([]*ClientIntake, error)
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

func (r *PostgresRepository) Create(ctx context.Context, in *ClientIntake) (*ClientIntake, error) {
	query := `INSERT INTO client_intakes (name_surname, phone, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, in.NameSurname, in.Phone, in.Description).
		Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return in, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*ClientIntake, error) {
	query := `SELECT id, name_surname, phone, description, created_at
		FROM client_intakes WHERE id = $1`

	in := &ClientIntake{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&in.ID, &in.NameSurname, &in.Phone, &in.Description, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return in, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*ClientIntake, error) {
	query := `SELECT id, name_surname, phone, description, created_at
		FROM client_intakes ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*ClientIntake
	for rows.Next() {
		in := &ClientIntake{}
		if err := rows.Scan(&in.ID, &in.NameSurname, &in.Phone, &in.Description, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM client_intakes WHERE id = $1`, id)
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
