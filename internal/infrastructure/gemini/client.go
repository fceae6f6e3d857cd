package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/avant-atelier/backend/internal/domain"
)

// fallbackModels are tried in order after the configured model. The API
// retires model IDs over time; falling through keeps the assistant alive
// across those retirements.
var fallbackModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-8b",
	"gemini-2.5-pro",
	"gemini-2.0-pro",
}

// Client handles communication with the Gemini generateContent API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Gemini API client
func NewClient(apiKey, model, baseURL string) *Client {
	// One generation per second sustained is plenty for a storefront
	// assistant; small burst absorbs concurrent chat panels.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		model:       strings.TrimSpace(model),
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// generateRequest is the generateContent request payload
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the generateContent response we read
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to the first candidate model that accepts it
// and returns the generated text. Models rejecting the request with
// 400/404 are skipped; transient failures are retried with backoff.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrNotConfigured
	}

	var lastErr error
	for _, model := range c.candidateModels() {
		text, retryable, err := c.generateWithModel(ctx, model, prompt)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			lastErr = err
			if c.debug {
				log.Printf("[GEMINI] Model %s failed (retryable=%v): %v", model, retryable, err)
			}
		}
		// Empty text with no error also falls through to the next model.
	}

	if lastErr == nil {
		lastErr = domain.ErrGenerateFailure
	}
	return "", lastErr
}

// generateWithModel runs up to 3 attempts against one model. The second
// return value reports whether the final failure was transient.
func (c *Client) generateWithModel(ctx context.Context, model, prompt string) (string, bool, error) {
	payload := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", false, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
		if err != nil {
			return "", false, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrGenerateFailure, err)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		var parsed generateResponse
		_ = json.Unmarshal(respBody, &parsed)

		if resp.StatusCode != http.StatusOK {
			status := ""
			if parsed.Error != nil {
				status = parsed.Error.Status
			}
			if c.debug {
				log.Printf("[GEMINI] HTTP %d %s (model=%s, attempt=%d)", resp.StatusCode, status, model, attempt)
			}

			// Unknown or rejected model: not worth retrying, let the
			// caller move on to the next candidate.
			if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest ||
				status == "NOT_FOUND" || status == "INVALID_ARGUMENT" {
				return "", false, fmt.Errorf("%w: model %s: status %d", domain.ErrGenerateFailure, model, resp.StatusCode)
			}

			lastErr = fmt.Errorf("%w: status %d", domain.ErrGenerateFailure, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var sb strings.Builder
		if len(parsed.Candidates) > 0 {
			for _, p := range parsed.Candidates[0].Content.Parts {
				sb.WriteString(p.Text)
			}
		}
		return strings.TrimSpace(sb.String()), false, nil
	}

	return "", true, lastErr
}

// candidateModels returns the configured model followed by the fallback
// list, de-duplicated and in order.
func (c *Client) candidateModels() []string {
	models := make([]string, 0, len(fallbackModels)+1)
	seen := make(map[string]bool)

	for _, m := range append([]string{c.model}, fallbackModels...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		models = append(models, m)
	}

	return models
}
