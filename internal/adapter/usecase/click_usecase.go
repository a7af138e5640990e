package usecase

import (
	"context"
	"strconv"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/metrics"
)

// ClickUseCase resolves click redirects and grants the one-time
// first-click earning. The single-winner guarantee under concurrent
// duplicate requests lives in the repository's atomic check-and-grant;
// this layer only validates and shapes the result.
type ClickUseCase struct {
	ads     port.AdRepository
	hooks   port.WebhookRepository
	clicks  port.ClickRepository
	earning int64
}

// NewClickUseCase creates a new usecase. earning is the fixed first-click
// amount in 1e-8 units.
func NewClickUseCase(ads port.AdRepository, hooks port.WebhookRepository, clicks port.ClickRepository, earning int64) *ClickUseCase {
	return &ClickUseCase{ads: ads, hooks: hooks, clicks: clicks, earning: earning}
}

var _ port.ClickService = (*ClickUseCase)(nil)

// Attribute resolves (adID, webhookID) to the ad's destination and grants
// the earning exactly once per (ad, webhook, address) key. Missing ids
// produce ErrNotFound with no side effects.
func (u *ClickUseCase) Attribute(ctx context.Context, adID, webhookID, address string) (*port.ClickResult, error) {
	if adID == "" || webhookID == "" || address == "" {
		return nil, port.ErrInvalidInput
	}

	ad, err := u.ads.GetAd(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, port.ErrNotFound
	}
	hook, err := u.hooks.GetWebhook(ctx, webhookID)
	if err != nil {
		return nil, err
	}
	if hook == nil {
		return nil, port.ErrNotFound
	}

	first, err := u.clicks.Attribute(ctx, adID, webhookID, address, u.earning)
	if err != nil {
		return nil, err
	}
	metrics.ClicksTotal.WithLabelValues(strconv.FormatBool(first)).Inc()

	res := &port.ClickResult{RedirectURL: ad.TargetURL, FirstClick: first}
	if first {
		res.Earning = u.earning
	}
	return res, nil
}
