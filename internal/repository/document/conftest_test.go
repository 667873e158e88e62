package document

import (
	"context"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/db"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn     func(ctx context.Context, index string, item db.DocumentItem, refresh db.Refresh) (bool, error)
	putManyFn func(ctx context.Context, index string, items []db.DocumentItem, refresh db.Refresh) ([]db.PutResult, error)
	deleteFn  func(ctx context.Context, index, id string, refresh db.Refresh) error
	countFn   func(ctx context.Context, index string) (int, error)
}

func (m *mockStore) PutDocument(
	ctx context.Context, index string, item db.DocumentItem, refresh db.Refresh,
) (bool, error) {
	if m.putFn != nil {
		return m.putFn(ctx, index, item, refresh)
	}
	return true, nil
}

func (m *mockStore) PutDocuments(
	ctx context.Context, index string, items []db.DocumentItem, refresh db.Refresh,
) ([]db.PutResult, error) {
	if m.putManyFn != nil {
		return m.putManyFn(ctx, index, items, refresh)
	}
	out := make([]db.PutResult, len(items))
	for i, it := range items {
		out[i] = db.PutResult{ID: it.ID, Created: true}
	}
	return out, nil
}

func (m *mockStore) DeleteDocument(ctx context.Context, index, id string, refresh db.Refresh) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, id, refresh)
	}
	return nil
}

func (m *mockStore) CountDocuments(ctx context.Context, index string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, index)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "documents"), ms
}

func testDocument(t *testing.T, id string) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New(id, "테스트 문서", "본문 내용", "news")
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}
