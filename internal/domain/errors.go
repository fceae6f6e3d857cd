package domain

import "errors"

var (
	// ErrSourceFetch is returned when a catalog source cannot be fetched
	// (network failure or non-2xx status). Never fatal: the source is
	// treated as empty for the rest of the session.
	ErrSourceFetch = errors.New("catalog source fetch failed")

	// ErrSourceDecode is returned when a catalog source payload is not a
	// JSON array. Treated the same as a fetch failure.
	ErrSourceDecode = errors.New("catalog source payload is not a JSON array")

	// ErrStaleQuery is returned when a newer query was issued before this
	// one resolved; its results must be discarded unrendered.
	ErrStaleQuery = errors.New("query superseded by a newer one")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrGenerateFailure is returned when the generative API request fails
	// for every candidate model.
	ErrGenerateFailure = errors.New("generative API request failed")

	// ErrNotConfigured is returned when the generative API key is missing.
	ErrNotConfigured = errors.New("generative API key not configured")
)
