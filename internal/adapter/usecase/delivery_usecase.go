package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/config/configs"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/metrics"
)

// DeliveryUseCase executes distribution cycles: pick one public ad,
// optionally screen it, fan it out sequentially to every active endpoint
// and account for each attempt. One endpoint's failure never aborts the
// cycle, and the cycle always ends in a summary.
type DeliveryUseCase struct {
	ads        port.AdRepository
	hooks      port.WebhookRepository
	deliveries port.DeliveryRepository
	users      port.UserRepository
	sender     port.WebhookSender
	filter     port.ContentFilter
	cfg        configs.Delivery
	logger     *slog.Logger
}

// NewDeliveryUseCase creates a new delivery engine.
func NewDeliveryUseCase(
	ads port.AdRepository,
	hooks port.WebhookRepository,
	deliveries port.DeliveryRepository,
	users port.UserRepository,
	sender port.WebhookSender,
	filter port.ContentFilter,
	cfg configs.Delivery,
	logger *slog.Logger,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		ads:        ads,
		hooks:      hooks,
		deliveries: deliveries,
		users:      users,
		sender:     sender,
		filter:     filter,
		cfg:        cfg,
		logger:     logger,
	}
}

var _ port.DeliveryService = (*DeliveryUseCase)(nil)

// RunCycle executes one distribution cycle end-to-end.
func (u *DeliveryUseCase) RunCycle(ctx context.Context, opts port.CycleOptions) (sum *port.CycleSummary) {
	sum = &port.CycleSummary{StartedAt: time.Now().UTC()}
	defer func() {
		sum.FinishedAt = time.Now().UTC()
		metrics.CyclesTotal.WithLabelValues(sum.Outcome).Inc()
	}()

	ads, err := u.ads.ListAdsByStatus(ctx, domain.AdPublic)
	if err != nil {
		sum.Outcome = port.OutcomeStoreError
		sum.Error = err.Error()
		return sum
	}
	if len(ads) == 0 {
		sum.Outcome = port.OutcomeNoContent
		return sum
	}

	hooks, err := u.hooks.ListActiveWebhooks(ctx)
	if err != nil {
		sum.Outcome = port.OutcomeStoreError
		sum.Error = err.Error()
		return sum
	}
	if len(hooks) == 0 {
		sum.Outcome = port.OutcomeNoEndpoints
		return sum
	}

	// selection policy: oldest public ad first, the store guarantees the
	// ordering
	ad := ads[0]
	sum.AdID = ad.ID
	sum.AdTitle = ad.Title

	var verdict domain.FilterVerdict
	if opts.FilterEnabled {
		verdict = u.filter.Review(ctx, &ad)
		sum.FilterChecked = true
		sum.FilterApproved = verdict.Approved
		sum.FilterReasoning = verdict.Reasoning
		if !verdict.Approved {
			reason := verdict.Reasoning
			rec := &domain.Delivery{ID: uuid.NewString(), AdID: ad.ID,
				Status: domain.DeliveryFilterRejected, ErrorMessage: &reason}
			if err = u.deliveries.RecordFilterRejection(ctx, rec); err != nil {
				u.logger.Error("failed to record filter rejection",
					slog.String("ad_id", ad.ID), slog.Any("error", err))
			}
			metrics.DeliveriesTotal.WithLabelValues(domain.DeliveryFilterRejected).Inc()
			sum.Outcome = port.OutcomeFilterRejected
			return sum
		}
	}

	footer := ""
	if sum.FilterChecked && verdict.Reasoning != "" && !verdict.Failed {
		footer = "screened: " + truncate(verdict.Reasoning, 120)
	}

	for i := range hooks {
		if i > 0 {
			// spacing between sends keeps us under the target's rate limits
			select {
			case <-ctx.Done():
				sum.Error = ctx.Err().Error()
				sum.Outcome = port.OutcomeCompleted
				return sum
			case <-time.After(u.cfg.SendDelay):
			}
		}
		u.deliverOne(ctx, &ad, &hooks[i], footer, sum)
	}

	sum.Outcome = port.OutcomeCompleted
	u.logger.Info("distribution cycle finished",
		slog.String("ad_id", ad.ID),
		slog.Int("attempted", sum.Attempted),
		slog.Int("succeeded", sum.Succeeded),
		slog.Int("failed", sum.Failed),
		slog.Int64("earnings", sum.Earnings))
	return sum
}

// deliverOne attempts delivery to a single endpoint and records the
// outcome. Store-write failures are logged as discrepancies but never
// propagate out of the attempt.
func (u *DeliveryUseCase) deliverOne(ctx context.Context, ad *domain.Ad, hook *domain.Webhook, footer string, sum *port.CycleSummary) {
	sum.Attempted++
	msg := domain.DeliveryMessage{
		Title:       ad.Title,
		Body:        ad.Body,
		RedirectURL: u.redirectURL(ad.ID, hook.ID),
		MediaURL:    ad.MediaURL,
		Footer:      footer,
	}

	if err := u.sender.Send(ctx, hook.URL, msg); err != nil {
		sum.Failed++
		metrics.DeliveriesTotal.WithLabelValues(domain.DeliveryError).Inc()
		errMsg := truncate(err.Error(), 500)
		rec := &domain.Delivery{ID: uuid.NewString(), AdID: ad.ID,
			WebhookID: &hook.ID, Status: domain.DeliveryError, ErrorMessage: &errMsg}
		if recErr := u.deliveries.RecordFailure(ctx, rec); recErr != nil {
			u.logger.Error("failed to record delivery error",
				slog.String("webhook_id", hook.ID), slog.Any("error", recErr))
		}
		return
	}

	rec := &domain.Delivery{ID: uuid.NewString(), AdID: ad.ID,
		WebhookID: &hook.ID, Status: domain.DeliverySuccess, Earning: u.cfg.Earning}
	if err := u.deliveries.RecordSuccess(ctx, rec); err != nil {
		// the message reached the target but accounting failed: surface
		// the discrepancy instead of silently applying a subset
		sum.Failed++
		u.logger.Error("delivery succeeded but accounting failed",
			slog.String("ad_id", ad.ID),
			slog.String("webhook_id", hook.ID),
			slog.Any("error", err))
		return
	}
	sum.Succeeded++
	sum.Earnings += u.cfg.Earning
	metrics.DeliveriesTotal.WithLabelValues(domain.DeliverySuccess).Inc()
}

// ListLog returns recent delivery records for the admin log view.
func (u *DeliveryUseCase) ListLog(ctx context.Context, actorID string, limit int) ([]domain.Delivery, error) {
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
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.deliveries.ListDeliveries(ctx, limit)
}

func (u *DeliveryUseCase) redirectURL(adID, webhookID string) string {
	return fmt.Sprintf("%s/redirect?ad_id=%s&webhook_id=%s",
		u.cfg.RedirectBase, url.QueryEscape(adID), url.QueryEscape(webhookID))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
