package usecase

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/avant-atelier/backend/internal/domain"
)

// CatalogService loads the product catalog from its configured sources and
// memoizes the merged result for the lifetime of the service. There is no
// refresh or retry: a source that fails to load stays empty until restart,
// and the merged slice is treated as an immutable snapshot by all readers.
type CatalogService struct {
	fetcher domain.SourceFetcher
	sources []domain.SourceSpec

	once    sync.Once
	records []domain.ProductRecord
}

// NewCatalogService creates a catalog service over the given sources
func NewCatalogService(fetcher domain.SourceFetcher, sources []domain.SourceSpec) *CatalogService {
	return &CatalogService{
		fetcher: fetcher,
		sources: sources,
	}
}

// Load returns the merged catalog, fetching it on first use. An empty
// result means every source failed or was empty; callers must treat that
// as "data unavailable" rather than "no matches".
//
// The fetch itself is detached from the caller's cancellation: the first
// caller is an arbitrary keystroke whose request may be aborted at any
// time, and an aborted fetch would memoize an empty catalog for the rest
// of the process. The fetcher's own timeout bounds the detached load.
func (s *CatalogService) Load(ctx context.Context) []domain.ProductRecord {
	s.once.Do(func() {
		s.records = s.loadAll(context.WithoutCancel(ctx))
		log.Printf("[CATALOG] Catalog loaded: %d records from %d sources", len(s.records), len(s.sources))
	})
	return s.records
}

// loadAll fetches every source concurrently. Failures are isolated: a bad
// source logs a warning and contributes nothing. Result order is
// deterministic regardless of fetch completion order: configured source
// order first, file order within each source.
func (s *CatalogService) loadAll(ctx context.Context) []domain.ProductRecord {
	perSource := make([][]domain.ProductRecord, len(s.sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, source := range s.sources {
		g.Go(func() error {
			records, err := s.fetcher.FetchSource(ctx, source)
			if err != nil {
				log.Printf("[CATALOG] WARNING: could not load %s: %v", source.File, err)
				return nil
			}
			perSource[i] = records
			return nil
		})
	}
	// Workers only ever return nil; failures degrade to empty sources.
	_ = g.Wait()

	var combined []domain.ProductRecord
	for _, records := range perSource {
		combined = append(combined, records...)
	}

	return mergeByID(combined)
}

// mergeByID folds records that share an identifier into one. Later sources
// overwrite earlier ones field by field, but only with non-empty values:
// a later record never blanks out data an earlier one provided. Records
// without an ID cannot be grouped and pass through unmerged. First-seen
// order is preserved.
func mergeByID(records []domain.ProductRecord) []domain.ProductRecord {
	merged := make([]domain.ProductRecord, 0, len(records))
	index := make(map[string]int)

	for _, record := range records {
		if record.ID == "" {
			merged = append(merged, record)
			continue
		}
		if at, seen := index[record.ID]; seen {
			merged[at] = overlayRecord(merged[at], record)
			continue
		}
		index[record.ID] = len(merged)
		merged = append(merged, record)
	}

	return merged
}

// overlayRecord applies next's non-empty fields on top of base
func overlayRecord(base, next domain.ProductRecord) domain.ProductRecord {
	if next.Name != "" {
		base.Name = next.Name
	}
	if next.Description != "" {
		base.Description = next.Description
	}
	if next.Category != "" {
		base.Category = next.Category
	}
	if next.Price != nil {
		base.Price = next.Price
	}
	if next.SalePrice != nil {
		base.SalePrice = next.SalePrice
	}
	if next.Image != "" {
		base.Image = next.Image
	}
	if next.HoverImage != "" {
		base.HoverImage = next.HoverImage
	}
	if next.Status != "" {
		base.Status = next.Status
	}
	if len(next.Colors) > 0 {
		base.Colors = next.Colors
	}
	if len(next.Sizes) > 0 {
		base.Sizes = next.Sizes
	}
	if len(next.Details) > 0 {
		base.Details = next.Details
	}
	if next.Source != "" {
		base.Source = next.Source
	}
	return base
}
