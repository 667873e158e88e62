package db

import (
	"context"
	"errors"
	"time"

	"github.com/kailas-cloud/docsearch/internal/metrics"
)

// Compile-time check: InstrumentedStore implements Store.
var _ Store = (*InstrumentedStore)(nil)

// InstrumentedStore wraps a Store with a per-call timeout and engine metrics.
type InstrumentedStore struct {
	inner   Store
	timeout time.Duration
}

// NewInstrumentedStore wraps inner. A zero timeout leaves call deadlines to the caller's context.
func NewInstrumentedStore(inner Store, timeout time.Duration) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, timeout: timeout}
}

func (s *InstrumentedStore) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	driver := s.inner.Driver()

	metrics.EngineRequestDuration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
	metrics.EngineRequestsTotal.WithLabelValues(driver, op, statusLabel(err)).Inc()

	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrUnavailable) {
		return Unavailable(op, err)
	}
	return err
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrKeyNotFound), errors.Is(err, ErrIndexNotFound):
		return "not_found"
	case errors.Is(err, ErrRejected):
		return "rejected"
	default:
		return "error"
	}
}

// Driver returns the wrapped driver name.
func (s *InstrumentedStore) Driver() string { return s.inner.Driver() }

// Close closes the wrapped store.
func (s *InstrumentedStore) Close() { s.inner.Close() }

// WaitForReady delegates without a per-call timeout; timeout bounds the whole wait.
func (s *InstrumentedStore) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return s.inner.WaitForReady(ctx, timeout) //nolint:wrapcheck // transparent decorator
}

// Ping checks connectivity.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.call(ctx, OpPing, s.inner.Ping)
}

// Info reports engine version and cluster status.
func (s *InstrumentedStore) Info(ctx context.Context) (EngineInfo, error) {
	var info EngineInfo
	err := s.call(ctx, OpInfo, func(ctx context.Context) error {
		var err error
		info, err = s.inner.Info(ctx)
		return err
	})
	return info, err
}

// CreateIndex creates an index.
func (s *InstrumentedStore) CreateIndex(ctx context.Context, def *IndexDefinition) error {
	return s.call(ctx, OpCreateIndex, func(ctx context.Context) error {
		return s.inner.CreateIndex(ctx, def)
	})
}

// IndexExists probes index existence.
func (s *InstrumentedStore) IndexExists(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := s.call(ctx, OpIndexExists, func(ctx context.Context) error {
		var err error
		ok, err = s.inner.IndexExists(ctx, name)
		return err
	})
	return ok, err
}

// Refresh makes recent writes searchable.
func (s *InstrumentedStore) Refresh(ctx context.Context, name string) error {
	return s.call(ctx, OpRefresh, func(ctx context.Context) error {
		return s.inner.Refresh(ctx, name)
	})
}

// IndexStats returns index statistics.
func (s *InstrumentedStore) IndexStats(ctx context.Context, name string) (IndexStats, error) {
	var st IndexStats
	err := s.call(ctx, OpIndexStats, func(ctx context.Context) error {
		var err error
		st, err = s.inner.IndexStats(ctx, name)
		return err
	})
	return st, err
}

// Analyze tokenizes text with the index analyzer.
func (s *InstrumentedStore) Analyze(ctx context.Context, index, analyzer, text string) ([]string, error) {
	var tokens []string
	err := s.call(ctx, OpAnalyze, func(ctx context.Context) error {
		var err error
		tokens, err = s.inner.Analyze(ctx, index, analyzer, text)
		return err
	})
	return tokens, err
}

// PutDocument upserts a single document.
func (s *InstrumentedStore) PutDocument(
	ctx context.Context, index string, item DocumentItem, refresh Refresh,
) (bool, error) {
	var created bool
	err := s.call(ctx, OpIndex, func(ctx context.Context) error {
		var err error
		created, err = s.inner.PutDocument(ctx, index, item, refresh)
		return err
	})
	return created, err
}

// PutDocuments upserts many documents in one round trip.
func (s *InstrumentedStore) PutDocuments(
	ctx context.Context, index string, items []DocumentItem, refresh Refresh,
) ([]PutResult, error) {
	var results []PutResult
	err := s.call(ctx, OpBulk, func(ctx context.Context) error {
		var err error
		results, err = s.inner.PutDocuments(ctx, index, items, refresh)
		return err
	})
	return results, err
}

// DeleteDocument removes a document by id.
func (s *InstrumentedStore) DeleteDocument(ctx context.Context, index, id string, refresh Refresh) error {
	return s.call(ctx, OpDelete, func(ctx context.Context) error {
		return s.inner.DeleteDocument(ctx, index, id, refresh)
	})
}

// CountDocuments returns the number of indexed documents.
func (s *InstrumentedStore) CountDocuments(ctx context.Context, index string) (int, error) {
	var n int
	err := s.call(ctx, OpCount, func(ctx context.Context) error {
		var err error
		n, err = s.inner.CountDocuments(ctx, index)
		return err
	})
	return n, err
}

// SearchBM25 runs a full-text search.
func (s *InstrumentedStore) SearchBM25(ctx context.Context, q *TextQuery) (*SearchResult, error) {
	var res *SearchResult
	err := s.call(ctx, OpSearch, func(ctx context.Context) error {
		var err error
		res, err = s.inner.SearchBM25(ctx, q)
		return err
	})
	return res, err
}
