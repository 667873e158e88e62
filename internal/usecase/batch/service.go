package batch

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
)

// MaxBatchSize is the default maximum number of items per batch request.
const MaxBatchSize = 500

// Item is an unvalidated document from a batch request.
type Item struct {
	ID       string
	Title    string
	Content  string
	Category string
}

// Service handles batch document writes with per-item error reporting.
type Service struct {
	docs         BulkUpserter
	maxBatchSize int
	refresh      domain.RefreshPolicy
}

// New creates a batch service.
func New(docs BulkUpserter) *Service {
	return &Service{docs: docs, maxBatchSize: MaxBatchSize, refresh: domain.RefreshWaitFor}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// WithRefresh sets the default refresh policy for writes.
func (s *Service) WithRefresh(p domain.RefreshPolicy) *Service {
	if p != "" {
		s.refresh = p
	}
	return s
}

// Upsert validates every item, writes the valid ones in one bulk call and returns
// one result per input item in input order. Invalid items fail individually;
// an error is returned only when the batch as a whole cannot be processed.
func (s *Service) Upsert(
	ctx context.Context, items []Item, refresh domain.RefreshPolicy,
) ([]dombatch.Result, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("batch is empty: %w", domain.ErrInvalidRequest)
	}
	if len(items) > s.maxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds %d: %w", len(items), s.maxBatchSize, domain.ErrInvalidRequest)
	}
	if refresh == "" {
		refresh = s.refresh
	}

	results := make([]dombatch.Result, len(items))
	valid := make([]domdoc.Document, 0, len(items))
	validIdx := make([]int, 0, len(items))

	for i, it := range items {
		doc, err := domdoc.New(it.ID, it.Title, it.Content, it.Category)
		if err != nil {
			results[i] = dombatch.NewError(it.ID, err)
			continue
		}
		valid = append(valid, doc)
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results, nil
	}

	written, err := s.docs.UpsertMany(ctx, valid, refresh)
	if err != nil {
		return nil, fmt.Errorf("batch upsert: %w", err)
	}
	if len(written) != len(valid) {
		return nil, fmt.Errorf("batch upsert: got %d results for %d documents: %w",
			len(written), len(valid), domain.ErrMalformedResponse)
	}

	for j, i := range validIdx {
		results[i] = written[j]
	}
	return results, nil
}
