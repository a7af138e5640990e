// Package discord implements the outbound webhook client for Discord
// delivery targets: URL-shape validation, the synchronous connectivity
// test used at registration time and the delivery POST itself.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// webhookURLPattern is the strict shape contract for a Discord webhook:
// https, a known Discord host, then /api/webhooks/<17-19 digit snowflake>/
// <68 character url-safe token>.
var webhookURLPattern = regexp.MustCompile(
	`^https://(?:discord\.com|discordapp\.com|ptb\.discord\.com|canary\.discord\.com)/api/webhooks/\d{17,19}/[A-Za-z0-9_-]{68}$`)

// Sender posts payloads to Discord webhooks with a bounded timeout.
type Sender struct {
	client *http.Client
}

// NewSender returns a sender whose outbound calls are bounded by timeout.
func NewSender(timeout time.Duration) *Sender {
	return &Sender{client: &http.Client{Timeout: timeout}}
}

var _ port.WebhookSender = (*Sender)(nil)

// webhookPayload is the Discord webhook wire format, reduced to the fields
// this service renders.
type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Image       *embedImage  `json:"image,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
}

type embedImage struct {
	URL string `json:"url"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// Validate checks the destination URL against the shape contract. It never
// touches the network.
func (s *Sender) Validate(url string) error {
	if !webhookURLPattern.MatchString(url) {
		return port.ErrInvalidWebhookURL
	}
	return nil
}

// Test posts one real test payload so registration only succeeds for
// endpoints that are actually reachable.
func (s *Sender) Test(ctx context.Context, url string) error {
	return s.post(ctx, url, webhookPayload{
		Content: "✅ adlinker connectivity test: this webhook is ready to receive sponsored content.",
	})
}

// Send posts one delivery message. The redirect URL is placed both on the
// embed and in the description so it stays clickable in every client.
func (s *Sender) Send(ctx context.Context, url string, msg domain.DeliveryMessage) error {
	e := embed{
		Title:       msg.Title,
		Description: fmt.Sprintf("%s\n\n[Learn more](%s)", msg.Body, msg.RedirectURL),
		URL:         msg.RedirectURL,
	}
	if msg.MediaURL != "" {
		e.Image = &embedImage{URL: msg.MediaURL}
	}
	if msg.Footer != "" {
		e.Footer = &embedFooter{Text: msg.Footer}
	}
	return s.post(ctx, url, webhookPayload{Embeds: []embed{e}})
}

func (s *Sender) post(ctx context.Context, url string, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Discord error bodies are short JSON blobs; keep a bounded excerpt
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &port.HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}
	return nil
}
