package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

func newAdFixture() (*AdUseCase, *fakeAdRepo) {
	users := newFakeUserRepo(
		&domain.User{ID: "admin", Role: domain.RoleAdmin},
		&domain.User{ID: "advertiser", Role: domain.RoleAdvertiser},
		&domain.User{ID: "shower", Role: domain.RoleShower},
	)
	ads := &fakeAdRepo{}
	return NewAdUseCase(ads, users), ads
}

func TestCreateAdStartsPending(t *testing.T) {
	svc, _ := newAdFixture()

	ad, err := svc.Create(context.Background(), "advertiser", port.CreateAdInput{
		Title: "Launch", Body: "Try it now", TargetURL: "https://example.com",
	})
	require.NoError(t, err)
	require.Equal(t, domain.AdPending, ad.Status)
}

func TestCreateAdValidation(t *testing.T) {
	svc, _ := newAdFixture()

	_, err := svc.Create(context.Background(), "advertiser", port.CreateAdInput{
		Title: "", Body: "b", TargetURL: "https://example.com",
	})
	require.ErrorIs(t, err, port.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "advertiser", port.CreateAdInput{
		Title: "t", Body: "b", TargetURL: "not a url",
	})
	require.ErrorIs(t, err, port.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "shower", port.CreateAdInput{
		Title: "t", Body: "b", TargetURL: "https://example.com",
	})
	require.ErrorIs(t, err, port.ErrForbidden)
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{domain.AdPending, domain.AdPublic, true},
		{domain.AdPending, domain.AdStopped, true},
		{domain.AdPublic, domain.AdStopped, true},
		{domain.AdPublic, domain.AdPending, false},
		{domain.AdStopped, domain.AdPublic, false},
		{domain.AdStopped, domain.AdPending, false},
		{domain.AdPending, domain.AdPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			svc, ads := newAdFixture()
			require.NoError(t, ads.CreateAd(context.Background(), &domain.Ad{
				ID: "ad1", OwnerID: "advertiser", Status: tc.from,
			}))

			_, err := svc.Transition(context.Background(), "ad1", tc.to, "admin")
			if tc.ok {
				require.NoError(t, err)
				got, _ := ads.GetAd(context.Background(), "ad1")
				require.Equal(t, tc.to, got.Status)
			} else {
				require.ErrorIs(t, err, port.ErrInvalidTransition)
			}
		})
	}
}

func TestTransitionAdminOnly(t *testing.T) {
	svc, ads := newAdFixture()
	require.NoError(t, ads.CreateAd(context.Background(), &domain.Ad{
		ID: "ad1", OwnerID: "advertiser", Status: domain.AdPending,
	}))

	_, err := svc.Transition(context.Background(), "ad1", domain.AdPublic, "advertiser")
	require.ErrorIs(t, err, port.ErrForbidden)
}

func TestStoppedAdNeverEligible(t *testing.T) {
	svc, ads := newAdFixture()
	require.NoError(t, ads.CreateAd(context.Background(), &domain.Ad{
		ID: "ad1", OwnerID: "advertiser", Status: domain.AdPublic,
	}))

	eligible, err := ads.ListAdsByStatus(context.Background(), domain.AdPublic)
	require.NoError(t, err)
	require.Len(t, eligible, 1)

	_, err = svc.Transition(context.Background(), "ad1", domain.AdStopped, "admin")
	require.NoError(t, err)

	eligible, err = ads.ListAdsByStatus(context.Background(), domain.AdPublic)
	require.NoError(t, err)
	require.Empty(t, eligible, "a stopped ad must never appear in the eligible list")
}
