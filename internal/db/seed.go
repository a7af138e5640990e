package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data: one account per role, ads across the three
// lifecycle states, webhooks for the shower and some historical deliveries
// and clicks. All inserts are idempotent.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := []struct {
		id, username, role string
	}{
		{"demo-admin", "admin", "admin"},
		{"demo-advertiser", "acme-ads", "advertiser"},
		{"demo-shower", "serverowner", "shower"},
	}
	for _, u := range users {
		_, err := db.Exec(ctx, `INSERT INTO users (id, username, role, balance, created_at)
VALUES ($1,$2,$3,0,now()) ON CONFLICT DO NOTHING`, u.id, u.username, u.role)
		if err != nil {
			return err
		}
	}

	ads := []struct {
		id, title, status string
	}{
		{"demo-ad-public", "Try Acme Cloud free for 30 days", "public"},
		{"demo-ad-pending", "Acme Pro launch discount", "pending"},
		{"demo-ad-stopped", "Expired spring promotion", "stopped"},
	}
	for i, a := range ads {
		body := fmt.Sprintf("Demo sponsored message %d. Click through to learn more.", i+1)
		target := fmt.Sprintf("https://example.com/landing/%d", i+1)
		_, err := db.Exec(ctx, `INSERT INTO ads (id, owner_id, title, body, target_url, media_url, status, impressions, created_at)
VALUES ($1,'demo-advertiser',$2,$3,$4,NULL,$5,0,now()) ON CONFLICT DO NOTHING`,
			a.id, a.title, body, target, a.status)
		if err != nil {
			return err
		}
	}

	// demo webhooks are inactive so a seeded instance never posts to a
	// placeholder URL
	for i := 1; i <= 2; i++ {
		id := fmt.Sprintf("demo-webhook-%d", i)
		url := fmt.Sprintf("https://discord.com/api/webhooks/12345678901234567%d/%s", i, demoToken(r))
		_, err := db.Exec(ctx, `INSERT INTO webhooks (id, owner_id, url, label, active, created_at)
VALUES ($1,'demo-shower',$2,$3,false,now()) ON CONFLICT DO NOTHING`,
			id, url, fmt.Sprintf("demo server #%d", i))
		if err != nil {
			return err
		}
	}

	// historical delivery records for the admin log view
	for i := 0; i < 20; i++ {
		status := "success"
		earning := int64(250000)
		var errMsg *string
		if i%5 == 0 {
			status = "error"
			earning = 0
			msg := "404 Not Found"
			errMsg = &msg
		}
		hook := fmt.Sprintf("demo-webhook-%d", i%2+1)
		_, err := db.Exec(ctx, `INSERT INTO deliveries (id, ad_id, webhook_id, status, earning, error_message, created_at)
VALUES ($1,'demo-ad-public',$2,$3,$4,$5,now() - make_interval(mins => $6)) ON CONFLICT DO NOTHING`,
			fmt.Sprintf("demo-delivery-%d", i), hook, status, earning, errMsg, i*7)
		if err != nil {
			return err
		}
	}

	for i := 0; i < 5; i++ {
		addr := fmt.Sprintf("203.0.113.%d", i+1)
		_, err := db.Exec(ctx, `INSERT INTO clicks (ad_id, webhook_id, address, hits, earning, first_seen_at, last_seen_at)
VALUES ('demo-ad-public','demo-webhook-1',$1,$2,1000000,now(),now()) ON CONFLICT DO NOTHING`,
			addr, r.Intn(3)+1)
		if err != nil {
			return err
		}
	}
	return nil
}

const tokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

func demoToken(r *rand.Rand) string {
	b := make([]byte, 68)
	for i := range b {
		b[i] = tokenChars[r.Intn(len(tokenChars))]
	}
	return string(b)
}
