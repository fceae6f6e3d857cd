package domain

import (
	"context"
	"time"
)

// SourceFetcher fetches one catalog source and returns its raw records.
// Implementations must keep failures per-source: an error here never
// aborts a whole catalog load.
type SourceFetcher interface {
	FetchSource(ctx context.Context, source SourceSpec) ([]ProductRecord, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// GenerativeClient defines the interface for the generative-text API used
// by the chat assistant.
type GenerativeClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
