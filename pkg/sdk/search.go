package docsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
)

// Search runs a BM25 query over title and content.
func (c *Client) Search(ctx context.Context, q Query) (_ Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	var size *int
	if q.Size != 0 {
		size = &q.Size
	}
	fuzzy := true
	if q.Fuzzy != nil {
		fuzzy = *q.Fuzzy
	}

	req, err := request.New(q.Text, size, q.Category, fuzzy, c.maxSearchSize)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	page, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return fromPage(page), nil
}

func fromPage(p result.Page) Page {
	hits := make([]Hit, len(p.Results))
	for i := range p.Results {
		r := &p.Results[i]
		hits[i] = Hit{
			ID:       r.ID(),
			Title:    r.Title(),
			Content:  r.Content(),
			Category: r.Category(),
			Score:    r.Score(),
		}
	}
	return Page{Total: p.Total, TookMs: p.TookMs, Hits: hits}
}
