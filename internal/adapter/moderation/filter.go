// Package moderation implements the external content-quality filter on
// top of an OpenAI-style chat completion API. The filter is advisory:
// distribution availability wins over strict screening, so every failure
// mode degrades to an approved verdict (fail-open).
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/config/configs"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

const systemPrompt = "You review sponsored messages before they are posted to community servers. " +
	"Reply with CONTINUE if the content is acceptable, or STOP if it is misleading, " +
	"offensive or unsafe, followed by a one-sentence reason."

const userPromptTemplate = "Title: %s\nBody: %s\nDestination: %s"

// Client calls the completion API and turns its answer into a verdict.
type Client struct {
	cfg    configs.Filter
	httpc  *http.Client
	logger *slog.Logger
}

// NewClient constructs a filter client bounded by cfg.Timeout.
func NewClient(cfg configs.Filter, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

var _ port.ContentFilter = (*Client)(nil)

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Review screens one ad. It never returns an error: transport failures,
// bad responses and ambiguous answers all produce an approved verdict
// with Failed set, so the caller can tell a fail-open pass from an
// explicit decision.
func (c *Client) Review(ctx context.Context, ad *domain.Ad) domain.FilterVerdict {
	text, err := c.complete(ctx, fmt.Sprintf(userPromptTemplate, ad.Title, ad.Body, ad.TargetURL))
	if err != nil {
		c.logger.Warn("content filter unavailable, failing open",
			slog.String("ad_id", ad.ID), slog.Any("error", err))
		return domain.FilterVerdict{Approved: true, Failed: true,
			Reasoning: "filter unavailable: " + err.Error()}
	}
	return parseVerdict(text)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   64,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &port.HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed completionResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parseVerdict keys off the leading CONTINUE/STOP token. Anything else is
// ambiguous and approves fail-open.
func parseVerdict(text string) domain.FilterVerdict {
	trimmed := strings.TrimSpace(text)
	upper := strings.ToUpper(trimmed)
	switch {
	case strings.HasPrefix(upper, "CONTINUE"):
		return domain.FilterVerdict{Approved: true, Reasoning: reasonAfter(trimmed, "CONTINUE")}
	case strings.HasPrefix(upper, "STOP"):
		return domain.FilterVerdict{Approved: false, Reasoning: reasonAfter(trimmed, "STOP")}
	default:
		return domain.FilterVerdict{Approved: true, Failed: true,
			Reasoning: "ambiguous filter response: " + excerpt(trimmed, 200)}
	}
}

func reasonAfter(text, keyword string) string {
	rest := strings.TrimLeft(text[len(keyword):], " :,.-\n")
	return excerpt(rest, 500)
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
