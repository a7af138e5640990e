package usecase

import (
	"context"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// UserUseCase exposes account details and the admin balance override.
type UserUseCase struct {
	users port.UserRepository
}

// NewUserUseCase creates a new usecase with the provided repository.
func NewUserUseCase(users port.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

var _ port.UserService = (*UserUseCase)(nil)

// Get returns the account for id.
func (u *UserUseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	usr, err := u.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, port.ErrNotFound
	}
	return usr, nil
}

// AdjustBalance applies an admin-ordered delta and returns the updated
// account. This is the only balance mutation outside the delivery and
// attribution paths.
func (u *UserUseCase) AdjustBalance(ctx context.Context, actorID, targetID string, delta int64) (*domain.User, error) {
	actor, err := u.users.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, port.ErrNotFound
	}
	if actor.Role != domain.RoleAdmin {
		return nil, port.ErrForbidden
	}

	if err = u.users.AdjustBalance(ctx, targetID, delta); err != nil {
		return nil, err
	}
	return u.Get(ctx, targetID)
}
