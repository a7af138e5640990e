package usecase

import (
	"context"
	"sync"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// In-memory fakes over the port interfaces. They mirror the store's
// semantics closely enough for the usecase tests: atomic click
// check-and-grant, guarded status updates, counter bundles.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) AdjustBalance(_ context.Context, id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return port.ErrNotFound
	}
	u.Balance += delta
	return nil
}

type fakeAdRepo struct {
	mu  sync.Mutex
	ads []*domain.Ad
}

func (r *fakeAdRepo) CreateAd(_ context.Context, ad *domain.Ad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *ad
	r.ads = append(r.ads, &copied)
	return nil
}

func (r *fakeAdRepo) GetAd(_ context.Context, id string) (*domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.ads {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAdRepo) UpdateAdStatus(_ context.Context, id, expected, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.ads {
		if a.ID == id && a.Status == expected {
			a.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAdRepo) ListAdsByStatus(_ context.Context, status string) ([]domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Ad
	for _, a := range r.ads {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAdRepo) ListAdsByOwner(_ context.Context, ownerID string) ([]domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Ad
	for _, a := range r.ads {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAdRepo) ListAds(_ context.Context) ([]domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ad, 0, len(r.ads))
	for _, a := range r.ads {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAdRepo) impressions(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.ads {
		if a.ID == id {
			return a.Impressions
		}
	}
	return 0
}

type fakeWebhookRepo struct {
	mu    sync.Mutex
	hooks []*domain.Webhook
}

func (r *fakeWebhookRepo) CreateWebhook(_ context.Context, w *domain.Webhook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.hooks {
		if h.OwnerID == w.OwnerID && h.URL == w.URL {
			return port.ErrDuplicateURL
		}
	}
	copied := *w
	r.hooks = append(r.hooks, &copied)
	return nil
}

func (r *fakeWebhookRepo) GetWebhook(_ context.Context, id string) (*domain.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.hooks {
		if h.ID == id {
			copied := *h
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeWebhookRepo) CountWebhooksByOwner(_ context.Context, ownerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, h := range r.hooks {
		if h.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeWebhookRepo) DeleteOwnedWebhook(_ context.Context, id, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.hooks {
		if h.ID == id && h.OwnerID == ownerID {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWebhookRepo) ListActiveWebhooks(_ context.Context) ([]domain.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Webhook
	for _, h := range r.hooks {
		if h.Active {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeWebhookRepo) ListWebhooksByOwner(_ context.Context, ownerID string) ([]domain.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Webhook
	for _, h := range r.hooks {
		if h.OwnerID == ownerID {
			out = append(out, *h)
		}
	}
	return out, nil
}

type fakeDeliveryRepo struct {
	mu      sync.Mutex
	records []domain.Delivery
	// failWrites makes every writer return this error
	failWrites error
	// owner balances credited through RecordSuccess
	credited map[string]int64
	hooks    *fakeWebhookRepo
	ads      *fakeAdRepo
}

func newFakeDeliveryRepo(hooks *fakeWebhookRepo, ads *fakeAdRepo) *fakeDeliveryRepo {
	return &fakeDeliveryRepo{credited: make(map[string]int64), hooks: hooks, ads: ads}
}

func (r *fakeDeliveryRepo) RecordSuccess(_ context.Context, rec *domain.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	r.records = append(r.records, *rec)
	if r.hooks != nil {
		r.hooks.mu.Lock()
		for _, h := range r.hooks.hooks {
			if h.ID == *rec.WebhookID {
				h.SentCount++
				h.LastError = nil
				r.credited[h.OwnerID] += rec.Earning
			}
		}
		r.hooks.mu.Unlock()
	}
	if r.ads != nil {
		r.ads.mu.Lock()
		for _, a := range r.ads.ads {
			if a.ID == rec.AdID {
				a.Impressions++
			}
		}
		r.ads.mu.Unlock()
	}
	return nil
}

func (r *fakeDeliveryRepo) RecordFailure(_ context.Context, rec *domain.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	r.records = append(r.records, *rec)
	if r.hooks != nil {
		r.hooks.mu.Lock()
		for _, h := range r.hooks.hooks {
			if h.ID == *rec.WebhookID {
				h.ErrorCount++
				h.LastError = rec.ErrorMessage
			}
		}
		r.hooks.mu.Unlock()
	}
	return nil
}

func (r *fakeDeliveryRepo) RecordFilterRejection(_ context.Context, rec *domain.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites != nil {
		return r.failWrites
	}
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakeDeliveryRepo) ListDeliveries(_ context.Context, limit int) ([]domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]domain.Delivery, limit)
	copy(out, r.records[len(r.records)-limit:])
	return out, nil
}

type fakeClickRepo struct {
	mu    sync.Mutex
	seen  map[string]int64
	users *fakeUserRepo
	hooks *fakeWebhookRepo
}

func newFakeClickRepo(users *fakeUserRepo, hooks *fakeWebhookRepo) *fakeClickRepo {
	return &fakeClickRepo{seen: make(map[string]int64), users: users, hooks: hooks}
}

// Attribute mirrors the store's single-statement upsert: the whole
// check-and-grant happens under one lock.
func (r *fakeClickRepo) Attribute(_ context.Context, adID, webhookID, address string, earning int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := adID + "|" + webhookID + "|" + address
	if _, ok := r.seen[key]; ok {
		r.seen[key]++
		return false, nil
	}
	r.seen[key] = 1
	if r.users != nil && r.hooks != nil {
		r.hooks.mu.Lock()
		var owner string
		for _, h := range r.hooks.hooks {
			if h.ID == webhookID {
				owner = h.OwnerID
			}
		}
		r.hooks.mu.Unlock()
		if owner != "" {
			r.users.mu.Lock()
			if u, ok := r.users.users[owner]; ok {
				u.Balance += earning
			}
			r.users.mu.Unlock()
		}
	}
	return true, nil
}

// fakeSender records calls and fails per scripted URL.
type fakeSender struct {
	mu          sync.Mutex
	invalid     map[string]bool
	testCalls   []string
	sendCalls   []string
	failTest    map[string]error
	failSend    map[string]error
	lastMessage domain.DeliveryMessage
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		invalid:  make(map[string]bool),
		failTest: make(map[string]error),
		failSend: make(map[string]error),
	}
}

func (s *fakeSender) Validate(url string) error {
	if s.invalid[url] {
		return port.ErrInvalidWebhookURL
	}
	return nil
}

func (s *fakeSender) Test(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testCalls = append(s.testCalls, url)
	return s.failTest[url]
}

func (s *fakeSender) Send(_ context.Context, url string, msg domain.DeliveryMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendCalls = append(s.sendCalls, url)
	s.lastMessage = msg
	return s.failSend[url]
}

// fakeFilter returns a scripted verdict.
type fakeFilter struct {
	verdict domain.FilterVerdict
	calls   int
}

func (f *fakeFilter) Review(_ context.Context, _ *domain.Ad) domain.FilterVerdict {
	f.calls++
	return f.verdict
}
