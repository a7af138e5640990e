package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/config/configs"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

const testEarning = int64(250000)

type deliveryFixture struct {
	svc        *DeliveryUseCase
	ads        *fakeAdRepo
	hooks      *fakeWebhookRepo
	deliveries *fakeDeliveryRepo
	sender     *fakeSender
	filter     *fakeFilter
}

func newDeliveryFixture() *deliveryFixture {
	users := newFakeUserRepo(
		&domain.User{ID: "admin", Role: domain.RoleAdmin},
		&domain.User{ID: "shower", Role: domain.RoleShower},
	)
	ads := &fakeAdRepo{}
	hooks := &fakeWebhookRepo{}
	deliveries := newFakeDeliveryRepo(hooks, ads)
	sender := newFakeSender()
	filter := &fakeFilter{verdict: domain.FilterVerdict{Approved: true, Reasoning: "looks fine"}}
	cfg := configs.Delivery{
		RedirectBase: "http://ads.test",
		SendDelay:    0,
		Earning:      testEarning,
		ClickEarning: 1000000,
	}
	svc := NewDeliveryUseCase(ads, hooks, deliveries, users, sender, filter, cfg, slog.Default())
	return &deliveryFixture{svc: svc, ads: ads, hooks: hooks, deliveries: deliveries, sender: sender, filter: filter}
}

func (f *deliveryFixture) addPublicAd(id string) {
	_ = f.ads.CreateAd(context.Background(), &domain.Ad{
		ID: id, OwnerID: "advertiser", Title: "Ad " + id, Body: "body",
		TargetURL: "https://example.com", Status: domain.AdPublic,
	})
}

func (f *deliveryFixture) addHooks(n int) []string {
	urls := make([]string, n)
	for i := 0; i < n; i++ {
		url := fmt.Sprintf("https://discord.test/hook/%d", i)
		urls[i] = url
		_ = f.hooks.CreateWebhook(context.Background(), &domain.Webhook{
			ID: fmt.Sprintf("hook-%d", i), OwnerID: "shower", URL: url, Active: true,
		})
	}
	return urls
}

func TestCycleNoContent(t *testing.T) {
	f := newDeliveryFixture()
	f.addHooks(2)

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{})
	require.Equal(t, port.OutcomeNoContent, sum.Outcome)
	require.Zero(t, sum.Attempted)
}

func TestCycleNoEndpoints(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{})
	require.Equal(t, port.OutcomeNoEndpoints, sum.Outcome)
	require.Zero(t, sum.Attempted)
}

func TestCycleFanOutArithmetic(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")
	urls := f.addHooks(5)
	// two endpoints fail, three succeed
	f.sender.failSend[urls[1]] = &port.HTTPError{Status: 500, Body: "boom"}
	f.sender.failSend[urls[3]] = &port.HTTPError{Status: 404, Body: "gone"}

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{})
	require.Equal(t, port.OutcomeCompleted, sum.Outcome)
	require.Equal(t, 5, sum.Attempted)
	require.Equal(t, 3, sum.Succeeded)
	require.Equal(t, 2, sum.Failed)
	require.Equal(t, 3*testEarning, sum.Earnings)
	require.Equal(t, int64(3), f.ads.impressions("ad1"),
		"impressions must increase by the success count, not per cycle")
	require.Equal(t, 3*testEarning, f.deliveries.credited["shower"])
}

func TestCycleEndpointFailureDoesNotAbort(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")
	urls := f.addHooks(3)
	f.sender.failSend[urls[0]] = &port.HTTPError{Status: 500, Body: "boom"}

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{})
	require.Equal(t, 3, sum.Attempted, "a failing endpoint must not stop the fan-out")
	require.Equal(t, 2, sum.Succeeded)

	hook, err := f.hooks.GetWebhook(context.Background(), "hook-0")
	require.NoError(t, err)
	require.Equal(t, int64(1), hook.ErrorCount)
	require.Zero(t, hook.SentCount)
}

func TestCycleFilterRejectedStopsFanOut(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")
	f.addHooks(3)
	f.filter.verdict = domain.FilterVerdict{Approved: false, Reasoning: "misleading claims"}

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{FilterEnabled: true})
	require.Equal(t, port.OutcomeFilterRejected, sum.Outcome)
	require.Zero(t, sum.Attempted)
	require.Empty(t, f.sender.sendCalls)

	// one audit record with no endpoint reference
	require.Len(t, f.deliveries.records, 1)
	rec := f.deliveries.records[0]
	require.Equal(t, domain.DeliveryFilterRejected, rec.Status)
	require.Nil(t, rec.WebhookID)
	require.Equal(t, "misleading claims", *rec.ErrorMessage)
}

func TestCycleFilterFailOpen(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")
	f.addHooks(2)
	f.filter.verdict = domain.FilterVerdict{
		Approved: true, Failed: true, Reasoning: "filter unavailable: timeout",
	}

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{FilterEnabled: true})
	require.Equal(t, port.OutcomeCompleted, sum.Outcome, "filter failure must not block distribution")
	require.Equal(t, 2, sum.Succeeded)
	require.True(t, sum.FilterChecked)
	require.Contains(t, sum.FilterReasoning, "filter unavailable")
	// fail-open reasoning never leaks into the delivered message
	require.Empty(t, f.sender.lastMessage.Footer)
}

func TestCycleFilterSkippedWhenDisabled(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")
	f.addHooks(1)

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{FilterEnabled: false})
	require.Equal(t, port.OutcomeCompleted, sum.Outcome)
	require.Zero(t, f.filter.calls)
	require.False(t, sum.FilterChecked)
}

func TestCycleSelectsFirstEligibleAd(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad-old")
	f.addPublicAd("ad-new")
	f.addHooks(1)

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{})
	require.Equal(t, "ad-old", sum.AdID)
}

func TestCycleRedirectURLEncodesAttribution(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")
	f.addHooks(1)

	f.svc.RunCycle(context.Background(), port.CycleOptions{})
	require.Equal(t,
		"http://ads.test/redirect?ad_id=ad1&webhook_id=hook-0",
		f.sender.lastMessage.RedirectURL)
}

func TestCycleAccountingFailureCountsAsFailed(t *testing.T) {
	f := newDeliveryFixture()
	f.addPublicAd("ad1")
	f.addHooks(1)
	f.deliveries.failWrites = fmt.Errorf("db down")

	sum := f.svc.RunCycle(context.Background(), port.CycleOptions{})
	require.Equal(t, port.OutcomeCompleted, sum.Outcome)
	require.Equal(t, 1, sum.Failed)
	require.Zero(t, sum.Succeeded)
	require.Zero(t, sum.Earnings)
}
