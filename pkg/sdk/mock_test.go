package docsearch

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	batchuc "github.com/kailas-cloud/docsearch/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
)

// --- documentUseCase mock ---

type mockDocumentUC struct {
	addFn    func(ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy) (domdoc.WriteResult, error)
	deleteFn func(ctx context.Context, id string, refresh domain.RefreshPolicy) error
	countFn  func(ctx context.Context) (int, error)
}

func (m *mockDocumentUC) Add(
	ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy,
) (domdoc.WriteResult, error) {
	return m.addFn(ctx, doc, refresh)
}

func (m *mockDocumentUC) Delete(ctx context.Context, id string, refresh domain.RefreshPolicy) error {
	return m.deleteFn(ctx, id, refresh)
}

func (m *mockDocumentUC) Count(ctx context.Context) (int, error) {
	return m.countFn(ctx)
}

// --- batchUseCase mock ---

type mockBatchUC struct {
	upsertFn func(ctx context.Context, items []batchuc.Item, refresh domain.RefreshPolicy) ([]dombatch.Result, error)
}

func (m *mockBatchUC) Upsert(
	ctx context.Context, items []batchuc.Item, refresh domain.RefreshPolicy,
) ([]dombatch.Result, error) {
	return m.upsertFn(ctx, items, refresh)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (result.Page, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	return m.searchFn(ctx, req)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	statsFn   func(ctx context.Context) (domain.IndexStats, error)
	analyzeFn func(ctx context.Context, text string) (domain.Analysis, error)
	refreshFn func(ctx context.Context) error
}

func (m *mockIndexUC) Stats(ctx context.Context) (domain.IndexStats, error) {
	return m.statsFn(ctx)
}

func (m *mockIndexUC) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	return m.analyzeFn(ctx, text)
}

func (m *mockIndexUC) Refresh(ctx context.Context) error {
	return m.refreshFn(ctx)
}

// --- engine mock ---

type mockEngine struct {
	pingErr error
	closed  bool
}

func (m *mockEngine) Ping(context.Context) error { return m.pingErr }

func (m *mockEngine) Close() { m.closed = true }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
