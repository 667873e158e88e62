package docsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
	batchuc "github.com/kailas-cloud/docsearch/internal/usecase/batch"
)

// DocumentService writes documents into the index.
type DocumentService struct {
	docSvc   documentUseCase
	batchSvc batchUseCase
	refresh  domain.RefreshPolicy
	obs      *observer
}

// WithRefresh returns a copy of the service whose writes use p instead of the
// client default.
func (s *DocumentService) WithRefresh(p RefreshPolicy) *DocumentService {
	cp := *s
	cp.refresh = p
	return &cp
}

// Add creates or replaces a document.
func (s *DocumentService) Add(ctx context.Context, doc Document) (_ WriteResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("add", start, err) }()

	d, err := domdoc.New(doc.ID, doc.Title, doc.Content, doc.Category)
	if err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	res, err := s.docSvc.Add(ctx, &d, s.refresh)
	if err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	return WriteResult(res), nil
}

// Delete removes a document by ID. A missing document yields ErrDocumentNotFound.
func (s *DocumentService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("delete", start, err) }()

	if err = s.docSvc.Delete(ctx, id, s.refresh); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Count returns the number of documents in the index.
func (s *DocumentService) Count(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("count", start, err) }()

	n, err := s.docSvc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Batch writes documents in one engine round trip. Invalid documents fail
// individually; an error is returned only when the whole batch was refused.
func (s *DocumentService) Batch(ctx context.Context, docs []Document) (_ []BatchResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("batch", start, err) }()

	items := make([]batchuc.Item, len(docs))
	for i, d := range docs {
		items[i] = batchuc.Item{ID: d.ID, Title: d.Title, Content: d.Content, Category: d.Category}
	}
	results, err := s.batchSvc.Upsert(ctx, items, s.refresh)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return fromBatchResults(results), nil
}

func fromBatchResults(results []dombatch.Result) []BatchResult {
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{
			ID:     r.ID(),
			OK:     r.Status() == dombatch.StatusOK,
			Result: WriteResult(r.Write()),
			Err:    r.Err(),
		}
	}
	return out
}
