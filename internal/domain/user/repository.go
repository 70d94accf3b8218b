package user

import (
	"context"

	"usermgmt/internal/domain/common"
)

// ErrNotFound is returned by repositories; common.IsNotFound matches it.
var ErrNotFound = common.NewNotFound("user", "")

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
