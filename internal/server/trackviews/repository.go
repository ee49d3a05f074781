package trackviews

import (
	"context"

	"github.com/whoestate/backend/internal/dbx"
)

type Repository interface {
	// Record returns the row plus whether it was newly inserted, as
	// opposed to an existing pair getting its viewed_at refreshed.
	Record(ctx context.Context, userID, propertyID string) (*TrackView, bool, error)
	ListByUser(ctx context.Context, userID string) ([]*TrackView, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*TrackView, error)
	CountForProperty(ctx context.Context, propertyID string) (int64, error)

	WithTx(tx dbx.DBTX) Repository
}
