package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// AdUseCase manages the sponsored-content lifecycle. Ads always enter the
// system pending; only an admin transition makes them distributable.
type AdUseCase struct {
	ads   port.AdRepository
	users port.UserRepository
}

// NewAdUseCase creates a new usecase with the provided repositories.
func NewAdUseCase(ads port.AdRepository, users port.UserRepository) *AdUseCase {
	return &AdUseCase{ads: ads, users: users}
}

var _ port.AdService = (*AdUseCase)(nil)

// Create stores a new ad in pending state.
func (u *AdUseCase) Create(ctx context.Context, ownerID string, in port.CreateAdInput) (*domain.Ad, error) {
	owner, err := u.users.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, port.ErrNotFound
	}
	if owner.Role != domain.RoleAdvertiser && owner.Role != domain.RoleAdmin {
		return nil, port.ErrForbidden
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if in.Title == "" || in.Body == "" || !isHTTPURL(in.TargetURL) {
		return nil, port.ErrInvalidInput
	}
	if in.MediaURL != "" && !isHTTPURL(in.MediaURL) {
		return nil, port.ErrInvalidInput
	}

	ad := &domain.Ad{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     in.Title,
		Body:      in.Body,
		TargetURL: in.TargetURL,
		MediaURL:  in.MediaURL,
		Status:    domain.AdPending,
	}
	if err = u.ads.CreateAd(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Transition moves an ad through its lifecycle. Admin only; disallowed
// moves, including anything out of stopped, are rejected.
func (u *AdUseCase) Transition(ctx context.Context, id, status, actorID string) (*domain.Ad, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	ad, err := u.ads.GetAd(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, port.ErrNotFound
	}
	if !ad.CanTransition(status) {
		return nil, port.ErrInvalidTransition
	}

	changed, err := u.ads.UpdateAdStatus(ctx, id, ad.Status, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		// a concurrent transition won
		return nil, port.ErrInvalidTransition
	}
	ad.Status = status
	return ad, nil
}

// ListOwned returns an advertiser's own ads.
func (u *AdUseCase) ListOwned(ctx context.Context, ownerID string) ([]domain.Ad, error) {
	return u.ads.ListAdsByOwner(ctx, ownerID)
}

// ListAll returns every ad. Admin only.
func (u *AdUseCase) ListAll(ctx context.Context, actorID string) ([]domain.Ad, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return u.ads.ListAds(ctx)
}

func (u *AdUseCase) requireAdmin(ctx context.Context, actorID string) error {
	actor, err := u.users.GetUser(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return port.ErrNotFound
	}
	if actor.Role != domain.RoleAdmin {
		return port.ErrForbidden
	}
	return nil
}

func isHTTPURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
