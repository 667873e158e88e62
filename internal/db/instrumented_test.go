package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/docsearch/internal/metrics"
)

// fakeStore overrides the methods under test; the embedded nil Store panics on anything else.
type fakeStore struct {
	Store
	pingFn   func(ctx context.Context) error
	searchFn func(ctx context.Context, q *TextQuery) (*SearchResult, error)
	deleteFn func(ctx context.Context, index, id string) error
}

func (f *fakeStore) Driver() string { return "fake" }

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingFn(ctx) }

func (f *fakeStore) SearchBM25(ctx context.Context, q *TextQuery) (*SearchResult, error) {
	return f.searchFn(ctx, q)
}

func (f *fakeStore) DeleteDocument(ctx context.Context, index, id string, _ Refresh) error {
	return f.deleteFn(ctx, index, id)
}

func TestInstrumented_AppliesTimeout(t *testing.T) {
	fs := &fakeStore{pingFn: func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected deadline on context")
		}
		<-ctx.Done()
		return ctx.Err()
	}}
	s := NewInstrumentedStore(fs, 10*time.Millisecond)

	err := s.Ping(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded in chain, got %v", err)
	}
}

func TestInstrumented_NoTimeout(t *testing.T) {
	fs := &fakeStore{pingFn: func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); ok {
			t.Error("unexpected deadline")
		}
		return nil
	}}
	if err := NewInstrumentedStore(fs, 0).Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInstrumented_PassesResultsAndRecordsMetrics(t *testing.T) {
	want := &SearchResult{Total: 1, Entries: []SearchEntry{{Key: "doc1", Score: 1.5}}}
	fs := &fakeStore{searchFn: func(_ context.Context, q *TextQuery) (*SearchResult, error) {
		if q.Query != "python" {
			t.Errorf("query = %q", q.Query)
		}
		return want, nil
	}}
	s := NewInstrumentedStore(fs, time.Second)

	before := testutil.ToFloat64(metrics.EngineRequestsTotal.WithLabelValues("fake", OpSearch, "ok"))
	got, err := s.SearchBM25(context.Background(), &TextQuery{Query: "python"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("result not passed through")
	}
	after := testutil.ToFloat64(metrics.EngineRequestsTotal.WithLabelValues("fake", OpSearch, "ok"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %f", after-before)
	}
}

func TestInstrumented_NotFoundLabel(t *testing.T) {
	fs := &fakeStore{deleteFn: func(_ context.Context, _, _ string) error {
		return ErrKeyNotFound
	}}
	s := NewInstrumentedStore(fs, time.Second)

	before := testutil.ToFloat64(metrics.EngineRequestsTotal.WithLabelValues("fake", OpDelete, "not_found"))
	err := s.DeleteDocument(context.Background(), "documents", "missing", RefreshFalse)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	after := testutil.ToFloat64(metrics.EngineRequestsTotal.WithLabelValues("fake", OpDelete, "not_found"))
	if after-before != 1 {
		t.Errorf("expected not_found counter to increase by 1, got %f", after-before)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrKeyNotFound, "not_found"},
		{&Error{Op: OpDelete, Err: ErrIndexNotFound}, "not_found"},
		{Rejected(OpIndex, errors.New("mapper_parsing_exception")), "rejected"},
		{Unavailable(OpSearch, errors.New("connection refused")), "error"},
	}
	for _, tc := range tests {
		if got := statusLabel(tc.err); got != tc.want {
			t.Errorf("statusLabel(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
