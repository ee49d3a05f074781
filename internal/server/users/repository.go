package users

import (
	"context"

	"github.com/whoestate/backend/internal/dbx"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id string, upd *ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error

	// WithTx returns a repository bound to the given transactional handle.
	WithTx(tx dbx.DBTX) Repository
}

// ProfileUpdate carries optional profile mutations; nil fields are left
// untouched. Password and role are deliberately not updatable here.
type ProfileUpdate struct {
	Email       *string
	Name        *string
	Surname     *string
	PhoneNumber *int64
	Image       *string
}
