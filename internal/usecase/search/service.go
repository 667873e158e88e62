package search

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/metrics"
)

// Service handles BM25 document search.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search runs the query and returns at most req.Size() hits in non-increasing
// score order. Hits with equal scores keep the engine's order.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	page, err := s.repo.Search(ctx, req)
	if err != nil {
		return result.Page{}, fmt.Errorf("search: %w", err)
	}

	slices.SortStableFunc(page.Results, func(a, b result.Result) int {
		switch {
		case a.Score() > b.Score():
			return -1
		case a.Score() < b.Score():
			return 1
		default:
			return 0
		}
	})
	if len(page.Results) > req.Size() {
		page.Results = page.Results[:req.Size()]
	}
	if page.Results == nil {
		page.Results = []result.Result{}
	}

	filtered := strconv.FormatBool(!req.Filters().IsEmpty())
	metrics.SearchHitsTotal.WithLabelValues(filtered).Observe(float64(len(page.Results)))

	return page, nil
}
