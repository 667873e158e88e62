package chi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	batchuc "github.com/kailas-cloud/docsearch/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docsearch/internal/usecase/index"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
)

type fakeDocs struct {
	upsertFn     func(ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy) (domdoc.WriteResult, error)
	upsertManyFn func(ctx context.Context, docs []domdoc.Document, refresh domain.RefreshPolicy) ([]dombatch.Result, error)
	deleteFn     func(ctx context.Context, id string, refresh domain.RefreshPolicy) error
	countFn      func(ctx context.Context) (int, error)
}

func (f *fakeDocs) Upsert(
	ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy,
) (domdoc.WriteResult, error) {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, doc, refresh)
	}
	return domdoc.Created, nil
}

func (f *fakeDocs) UpsertMany(
	ctx context.Context, docs []domdoc.Document, refresh domain.RefreshPolicy,
) ([]dombatch.Result, error) {
	if f.upsertManyFn != nil {
		return f.upsertManyFn(ctx, docs, refresh)
	}
	out := make([]dombatch.Result, len(docs))
	for i := range docs {
		out[i] = dombatch.NewOK(docs[i].ID(), domdoc.Created)
	}
	return out, nil
}

func (f *fakeDocs) Delete(ctx context.Context, id string, refresh domain.RefreshPolicy) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id, refresh)
	}
	return nil
}

func (f *fakeDocs) Count(ctx context.Context) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx)
	}
	return 0, nil
}

type fakeSearch struct {
	searchFn func(ctx context.Context, req *request.Request) (result.Page, error)
}

func (f *fakeSearch) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, req)
	}
	return result.Page{}, nil
}

type fakeIndex struct {
	statsFn   func(ctx context.Context) (domain.IndexStats, error)
	analyzeFn func(ctx context.Context, text string) (domain.Analysis, error)
}

func (f *fakeIndex) Stats(ctx context.Context) (domain.IndexStats, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx)
	}
	return domain.IndexStats{}, nil
}

func (f *fakeIndex) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	if f.analyzeFn != nil {
		return f.analyzeFn(ctx, text)
	}
	return domain.Analysis{Original: text}, nil
}

func (f *fakeIndex) Refresh(context.Context) error {
	return nil
}

type fakeEngine struct {
	infoFn func(ctx context.Context) (db.EngineInfo, error)
}

func (f *fakeEngine) Info(ctx context.Context) (db.EngineInfo, error) {
	if f.infoFn != nil {
		return f.infoFn(ctx)
	}
	return db.EngineInfo{Version: "8.17.0", ClusterStatus: "green"}, nil
}

type fakes struct {
	docs   *fakeDocs
	search *fakeSearch
	index  *fakeIndex
	engine *fakeEngine
}

func newFakes() *fakes {
	return &fakes{docs: &fakeDocs{}, search: &fakeSearch{}, index: &fakeIndex{}, engine: &fakeEngine{}}
}

func (f *fakes) router(cfg RouterConfig) http.Handler {
	srv := NewServer(
		documentuc.New(f.docs),
		searchuc.New(f.search),
		batchuc.New(f.docs).WithMaxBatchSize(3),
		indexuc.New(f.index),
		healthuc.New(f.engine, "elasticsearch"),
		zap.NewNop(),
	).WithSearchLimits(10, 50)
	return NewRouter(srv, cfg, zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
