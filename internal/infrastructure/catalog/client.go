package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/avant-atelier/backend/internal/domain"
)

// Client fetches catalog JSON files from the storefront origin
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient creates a new catalog source client
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// FetchSource fetches one catalog file and returns its records tagged with
// the source's category tag. Errors are per-source: the caller treats a
// failed source as empty and keeps loading the rest.
func (c *Client) FetchSource(ctx context.Context, source domain.SourceSpec) ([]domain.ProductRecord, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, source.File)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "AvantAtelier/1.0")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceFetch, source.File, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrSourceFetch, source.File, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceFetch, source.File, err)
	}

	// Source files are loosely typed: the payload must be an array, but
	// its elements are filtered one by one so a stray number or null does
	// not take down the whole source.
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceDecode, source.File)
	}

	records := make([]domain.ProductRecord, 0, len(raw))
	for _, item := range raw {
		var fields map[string]interface{}
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		records = append(records, MapRecord(fields, source.Tag))
	}

	if c.debug {
		log.Printf("[CATALOG] Loaded %d records from %s (tag=%s)", len(records), source.File, source.Tag)
	}

	return records, nil
}
