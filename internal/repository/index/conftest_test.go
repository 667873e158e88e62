package index

import (
	"context"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	refreshFn     func(ctx context.Context, name string) error
	indexStatsFn  func(ctx context.Context, name string) (db.IndexStats, error)
	analyzeFn     func(ctx context.Context, index, analyzer, text string) ([]string, error)
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) Refresh(ctx context.Context, name string) error {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexStats(ctx context.Context, name string) (db.IndexStats, error) {
	if m.indexStatsFn != nil {
		return m.indexStatsFn(ctx, name)
	}
	return db.IndexStats{}, nil
}

func (m *mockStore) Analyze(ctx context.Context, index, analyzer, text string) ([]string, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, index, analyzer, text)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, domain.DefaultIndexSchema()), ms
}
