package messages

import (
	"context"

	"github.com/whoestate/backend/internal/dbx"
)

type Repository interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context) ([]*Message, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	WithTx(tx dbx.DBTX) Repository
}
