package properties

import (
	"context"

	"github.com/whoestate/backend/internal/dbx"
)

type Repository interface {
	Create(ctx context.Context, p *Property) (*Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context) ([]*Property, error)
	Query(ctx context.Context, q *Query) ([]*Property, error)
	LastSix(ctx context.Context) ([]*Property, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, p *Property) (*Property, error)
	Delete(ctx context.Context, id string) error

	WithTx(tx dbx.DBTX) Repository
}
