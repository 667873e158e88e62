package docsearch

import (
	"context"
	"fmt"
	"time"
)

// IndexService inspects the index.
type IndexService struct {
	svc indexUseCase
	obs *observer
}

// Stats returns document count and storage size.
func (s *IndexService) Stats(ctx context.Context) (_ IndexStats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("index_stats", start, err) }()

	st, err := s.svc.Stats(ctx)
	if err != nil {
		return IndexStats{}, fmt.Errorf("index stats: %w", err)
	}
	return IndexStats{
		Index:          st.Index,
		DocumentCount:  st.DocumentCount,
		StoreSizeBytes: st.StoreSizeBytes,
	}, nil
}

// Analyze runs text through the index analyzer.
// Drivers without an analyze API return ErrNotImplemented.
func (s *IndexService) Analyze(ctx context.Context, text string) (_ Analysis, err error) {
	start := time.Now()
	defer func() { s.obs.observe("analyze", start, err) }()

	a, err := s.svc.Analyze(ctx, text)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze: %w", err)
	}
	return Analysis{Original: a.Original, Tokens: a.Tokens}, nil
}

// Refresh makes every acknowledged write visible to search. Use it after
// writing with RefreshNone. It is a no-op on the Redis driver.
func (s *IndexService) Refresh(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("refresh", start, err) }()

	if err = s.svc.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return nil
}
