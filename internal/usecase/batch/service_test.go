package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
)

// --- Mocks ---

type mockBulk struct {
	fn          func(docs []domdoc.Document) ([]dombatch.Result, error)
	lastDocs    []domdoc.Document
	lastRefresh domain.RefreshPolicy
	calls       int
}

func (m *mockBulk) UpsertMany(
	_ context.Context, docs []domdoc.Document, refresh domain.RefreshPolicy,
) ([]dombatch.Result, error) {
	m.calls++
	m.lastDocs = docs
	m.lastRefresh = refresh
	if m.fn != nil {
		return m.fn(docs)
	}
	out := make([]dombatch.Result, len(docs))
	for i := range docs {
		out[i] = dombatch.NewOK(docs[i].ID(), domdoc.Created)
	}
	return out, nil
}

func validItem(id string) Item {
	return Item{ID: id, Title: "title " + id, Content: "content " + id}
}

// --- Tests ---

func TestUpsert_AllValid(t *testing.T) {
	bulk := &mockBulk{}
	svc := New(bulk)

	results, err := svc.Upsert(context.Background(), []Item{validItem("a"), validItem("b")}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, failed := dombatch.Summary(results)
	if ok != 2 || failed != 0 {
		t.Errorf("expected 2/0, got %d/%d", ok, failed)
	}
	if bulk.lastRefresh != domain.RefreshWaitFor {
		t.Errorf("expected default wait_for, got %s", bulk.lastRefresh)
	}
}

func TestUpsert_InvalidItemsFailIndividually(t *testing.T) {
	bulk := &mockBulk{}
	svc := New(bulk)

	items := []Item{
		validItem("a"),
		{ID: "b", Title: "", Content: "no title"},
		validItem("c"),
	}
	results, err := svc.Upsert(context.Background(), items, domain.RefreshNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Status() != dombatch.StatusOK || results[2].Status() != dombatch.StatusOK {
		t.Errorf("expected valid items ok: %v, %v", results[0].Status(), results[2].Status())
	}
	if results[1].Status() != dombatch.StatusError || !errors.Is(results[1].Err(), domain.ErrInvalidRequest) {
		t.Errorf("expected validation error for b, got %v", results[1].Err())
	}
	if results[2].ID() != "c" {
		t.Errorf("results out of order: %s", results[2].ID())
	}
	if len(bulk.lastDocs) != 2 {
		t.Errorf("expected 2 docs sent to engine, got %d", len(bulk.lastDocs))
	}
	if bulk.lastRefresh != domain.RefreshNone {
		t.Errorf("expected refresh false, got %s", bulk.lastRefresh)
	}
}

func TestUpsert_AllInvalidSkipsEngine(t *testing.T) {
	bulk := &mockBulk{}
	svc := New(bulk)

	results, err := svc.Upsert(context.Background(), []Item{{ID: "x"}}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bulk.calls != 0 {
		t.Errorf("expected no engine call, got %d", bulk.calls)
	}
	if _, failed := dombatch.Summary(results); failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
}

func TestUpsert_Empty(t *testing.T) {
	svc := New(&mockBulk{})
	_, err := svc.Upsert(context.Background(), nil, "")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUpsert_TooLarge(t *testing.T) {
	svc := New(&mockBulk{}).WithMaxBatchSize(2)
	items := []Item{validItem("a"), validItem("b"), validItem("c")}

	_, err := svc.Upsert(context.Background(), items, "")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUpsert_EngineFailure(t *testing.T) {
	bulk := &mockBulk{fn: func([]domdoc.Document) ([]dombatch.Result, error) {
		return nil, domain.ErrUpstreamUnavailable
	}}
	svc := New(bulk)

	_, err := svc.Upsert(context.Background(), []Item{validItem("a")}, "")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestUpsert_PerItemEngineErrors(t *testing.T) {
	bulk := &mockBulk{fn: func(docs []domdoc.Document) ([]dombatch.Result, error) {
		return []dombatch.Result{
			dombatch.NewOK(docs[0].ID(), domdoc.Updated),
			dombatch.NewError(docs[1].ID(), domain.ErrUpstreamRejected),
		}, nil
	}}
	svc := New(bulk)

	results, err := svc.Upsert(context.Background(), []Item{validItem("a"), validItem("b")}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Write() != domdoc.Updated {
		t.Errorf("expected updated, got %s", results[0].Write())
	}
	if !errors.Is(results[1].Err(), domain.ErrUpstreamRejected) {
		t.Errorf("expected rejected, got %v", results[1].Err())
	}
}
