package search

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/metrics"
)

// --- Mocks ---

type mockRepo struct {
	page   result.Page
	err    error
	called bool
}

func (m *mockRepo) Search(_ context.Context, _ *request.Request) (result.Page, error) {
	m.called = true
	return m.page, m.err
}

func testRequest(t *testing.T, size int, category string) request.Request {
	t.Helper()
	req, err := request.New("fox", &size, category, true, 0)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

// --- Tests ---

func TestSearch_SortsByScoreStable(t *testing.T) {
	repo := &mockRepo{page: result.Page{
		Total:  4,
		TookMs: 2,
		Results: []result.Result{
			result.New("a", 1.0, "", "", ""),
			result.New("b", 3.0, "", "", ""),
			result.New("c", 1.0, "", "", ""),
			result.New("d", 2.0, "", "", ""),
		},
	}}
	svc := New(repo)
	req := testRequest(t, 10, "")

	page, err := svc.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"b", "d", "a", "c"}
	if len(page.Results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(page.Results))
	}
	for i, id := range want {
		if page.Results[i].ID() != id {
			t.Errorf("position %d: expected %s, got %s", i, id, page.Results[i].ID())
		}
	}
	if page.Total != 4 || page.TookMs != 2 {
		t.Errorf("total/took not preserved: %+v", page)
	}
}

func TestSearch_TruncatesToSize(t *testing.T) {
	repo := &mockRepo{page: result.Page{
		Total: 3,
		Results: []result.Result{
			result.New("a", 3, "", "", ""),
			result.New("b", 2, "", "", ""),
			result.New("c", 1, "", "", ""),
		},
	}}
	svc := New(repo)
	req := testRequest(t, 2, "")

	page, err := svc.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page.Results))
	}
	if page.Total != 3 {
		t.Errorf("expected engine total 3, got %d", page.Total)
	}
}

func TestSearch_EmptyResultsNotNil(t *testing.T) {
	svc := New(&mockRepo{})
	req := testRequest(t, 10, "")

	page, err := svc.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Results == nil {
		t.Error("expected empty non-nil slice")
	}
}

func TestSearch_RepoError(t *testing.T) {
	svc := New(&mockRepo{err: domain.ErrUpstreamUnavailable})
	req := testRequest(t, 10, "")

	_, err := svc.Search(context.Background(), &req)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestSearch_RecordsHitsMetric(t *testing.T) {
	before := testutil.CollectAndCount(metrics.SearchHitsTotal)
	svc := New(&mockRepo{page: result.Page{Results: []result.Result{result.New("a", 1, "", "", "")}}})
	req := testRequest(t, 10, "news")

	if _, err := svc.Search(context.Background(), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after := testutil.CollectAndCount(metrics.SearchHitsTotal); after < 1 || after < before {
		t.Errorf("expected search_hits series, got %d", after)
	}
}
