// Package versetext fetches canonical verse text from a quran.com-style
// HTTP API.
package versetext

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
)

// Client is a thin HTTP client for the verse text API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a verse text client. timeout bounds each request; zero
// falls back to 10 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// VerseText fetches the Uthmani text of one ayah. Failures are wrapped in
// entity.ErrReferenceTextUnavailable so callers can degrade gracefully.
func (c *Client) VerseText(ctx context.Context, ref entity.VerseRef) (string, error) {
	if !ref.Valid() {
		return "", fmt.Errorf("%w: %s", entity.ErrInvalidVerseRef, ref)
	}

	url := fmt.Sprintf("%s/verses/by_key/%d:%d?fields=text_uthmani", c.baseURL, ref.Surah, ref.Ayah)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", entity.ErrReferenceTextUnavailable, err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrReferenceTextUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", entity.ErrReferenceTextUnavailable, resp.StatusCode, string(body))
	}

	var result struct {
		Verse struct {
			TextUthmani string `json:"text_uthmani"`
		} `json:"verse"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", entity.ErrReferenceTextUnavailable, err)
	}

	text := strings.TrimSpace(result.Verse.TextUthmani)
	if text == "" {
		return "", fmt.Errorf("%w: empty text for %s", entity.ErrReferenceTextUnavailable, ref)
	}
	return text, nil
}
