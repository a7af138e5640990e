package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// WebhookUseCase manages delivery endpoints. Registration is gated by the
// URL shape contract, the per-owner quota and a live connectivity test, in
// that order, so no network call is ever made for input that fails the
// cheap checks.
type WebhookUseCase struct {
	hooks  port.WebhookRepository
	users  port.UserRepository
	sender port.WebhookSender
}

// NewWebhookUseCase creates a new usecase with the provided dependencies.
func NewWebhookUseCase(hooks port.WebhookRepository, users port.UserRepository, sender port.WebhookSender) *WebhookUseCase {
	return &WebhookUseCase{hooks: hooks, users: users, sender: sender}
}

var _ port.WebhookService = (*WebhookUseCase)(nil)

// Register validates and persists a new endpoint. The record is only
// written after the test payload reached the real target.
func (u *WebhookUseCase) Register(ctx context.Context, ownerID, url, label string) (*domain.Webhook, error) {
	owner, err := u.users.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, port.ErrNotFound
	}
	if owner.Role != domain.RoleShower && owner.Role != domain.RoleAdmin {
		return nil, port.ErrForbidden
	}

	if err = u.sender.Validate(url); err != nil {
		return nil, err
	}

	n, err := u.hooks.CountWebhooksByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if n >= domain.MaxWebhooksPerOwner {
		return nil, port.ErrQuotaExceeded
	}

	owned, err := u.hooks.ListWebhooksByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, w := range owned {
		if w.URL == url {
			return nil, port.ErrDuplicateURL
		}
	}

	if err = u.sender.Test(ctx, url); err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrUnreachable, err)
	}

	hook := &domain.Webhook{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		URL:     url,
		Label:   label,
		Active:  true,
	}
	if err = u.hooks.CreateWebhook(ctx, hook); err != nil {
		return nil, err
	}
	return hook, nil
}

// Remove deletes an endpoint. Ownership is enforced in the store query, so
// an id belonging to another owner reads as not found.
func (u *WebhookUseCase) Remove(ctx context.Context, id, ownerID string) error {
	deleted, err := u.hooks.DeleteOwnedWebhook(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return port.ErrNotFound
	}
	return nil
}

// ListOwned returns the owner's endpoints.
func (u *WebhookUseCase) ListOwned(ctx context.Context, ownerID string) ([]domain.Webhook, error) {
	return u.hooks.ListWebhooksByOwner(ctx, ownerID)
}

// Test checks the URL shape and posts one test payload on demand.
func (u *WebhookUseCase) Test(ctx context.Context, url string) error {
	if err := u.sender.Validate(url); err != nil {
		return err
	}
	if err := u.sender.Test(ctx, url); err != nil {
		return fmt.Errorf("%w: %v", port.ErrUnreachable, err)
	}
	return nil
}
