package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/avant-atelier/backend/internal/domain"
)

// SessionState is the presenter state of one search popup
type SessionState string

const (
	// StateIdle means no query, or a query with nothing to show
	StateIdle SessionState = "idle"
	// StatePreview shows the first previewLimit results
	StatePreview SessionState = "preview"
	// StateExpanded shows the full ranked result set
	StateExpanded SessionState = "expanded"
)

// User-facing messages for the two distinct empty outcomes. Callers must
// be able to tell "no catalog" from "no matches".
const msgDataUnavailable = "Product data is unavailable. Serve the site from a local server and try again."

// SearchView is one idempotent render of a session's current state
type SearchView struct {
	State   SessionState         `json:"state"`
	Query   string               `json:"query"`
	Results []domain.ScoredMatch `json:"results"`
	Total   int                  `json:"total"`
	HasMore bool                 `json:"hasMore"`
	Message string               `json:"message,omitempty"`
}

// SearchSession owns the state of a single popup open/close cycle: the
// expansion flag, the last result set, and the monotonic query token that
// guards against stale async results. Scoring itself stays pure; the
// session only sequences it.
type SearchSession struct {
	catalog      *CatalogService
	scorer       *PopupScorer
	previewLimit int

	token uint64 // atomic; stamps each query, newest wins

	mu      sync.Mutex
	state   SessionState
	query   string
	results []domain.ScoredMatch
}

// NewSearchSession creates an idle session over the given catalog
func NewSearchSession(catalog *CatalogService, previewLimit int) *SearchSession {
	if previewLimit <= 0 {
		previewLimit = 5
	}
	return &SearchSession{
		catalog:      catalog,
		scorer:       NewPopupScorer(),
		previewLimit: previewLimit,
		state:        StateIdle,
	}
}

// Query handles one keystroke's worth of input. Every new query resets the
// presenter to preview, even if a previous query had been expanded. If a
// newer query is issued while this one is waiting on the catalog load,
// ErrStaleQuery is returned and nothing must be rendered.
func (s *SearchSession) Query(ctx context.Context, raw string) (*SearchView, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || NormalizeText(trimmed) == "" {
		return s.reset(), nil
	}

	token := atomic.AddUint64(&s.token, 1)

	// Suspension point: the first query pays for the catalog fetch. A
	// later keystroke may overtake this one here.
	catalog := s.catalog.Load(ctx)

	if len(catalog) == 0 {
		return s.commitIdle(token, trimmed, msgDataUnavailable)
	}

	results := s.scorer.Score(trimmed, catalog)
	if len(results) == 0 {
		return s.commitIdle(token, trimmed, fmt.Sprintf("No matching products for %q.", trimmed))
	}

	// Staleness is decided at commit time, under the lock: a query that
	// merely passed an earlier check could still interleave behind a
	// newer one here and must not overwrite its results.
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadUint64(&s.token) != token {
		return nil, domain.ErrStaleQuery
	}
	s.state = StatePreview
	s.query = trimmed
	s.results = results
	return s.renderLocked(), nil
}

// commitIdle writes an idle outcome for the given query, unless a newer
// query has been stamped in the meantime.
func (s *SearchSession) commitIdle(token uint64, query, message string) (*SearchView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if atomic.LoadUint64(&s.token) != token {
		return nil, domain.ErrStaleQuery
	}
	s.state = StateIdle
	s.query = query
	s.results = nil
	return &SearchView{State: StateIdle, Query: query, Message: message}, nil
}

// ToggleExpand flips preview <-> expanded. It is a no-op while idle or
// when the result set fits within the preview cap (the control is not
// rendered in that case).
func (s *SearchSession) ToggleExpand() *SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle || len(s.results) <= s.previewLimit {
		return s.renderLocked()
	}

	if s.state == StatePreview {
		s.state = StateExpanded
	} else {
		s.state = StatePreview
	}
	return s.renderLocked()
}

// View re-renders the current state without changing it
func (s *SearchSession) View() *SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

// Reset returns the session to idle, as when the popup closes with its
// field cleared.
func (s *SearchSession) Reset() *SearchView {
	return s.reset()
}

func (s *SearchSession) reset() *SearchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.query = ""
	s.results = nil
	return s.renderLocked()
}

// renderLocked builds the view for the current state; callers hold s.mu
func (s *SearchSession) renderLocked() *SearchView {
	view := &SearchView{
		State:   s.state,
		Query:   s.query,
		Total:   len(s.results),
		HasMore: len(s.results) > s.previewLimit,
	}

	switch s.state {
	case StateExpanded:
		view.Results = s.results
	case StatePreview:
		if len(s.results) > s.previewLimit {
			view.Results = s.results[:s.previewLimit]
		} else {
			view.Results = s.results
		}
	}

	return view
}
