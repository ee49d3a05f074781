// Package resettokens manages single-use password-reset tokens: issuing the
// opaque token value and persisting its binding to a user with an expiry.
package resettokens

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/whoestate/backend/internal/dbx"
)

// ResetToken is a bearer capability authorizing one password change for its
// owning user. The token string itself is the lookup key.
type ResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// NewToken returns a fresh opaque token value: a version-4 UUID, 122 bits of
// randomness. Uniqueness against live tokens is enforced by the store's
// primary key; collisions are treated as impossible and not retried.
func NewToken() string {
	return uuid.NewString()
}

// Repository persists reset tokens. Delete reports common.ErrorNotFound when
// the token does not exist, which is what makes concurrent consumption of
// the same token single-winner.
type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*ResetToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error

	// WithTx returns a repository bound to the given transactional handle.
	WithTx(tx dbx.DBTX) Repository
}
