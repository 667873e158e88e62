package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/repository"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

var returnFields = []string{domain.FieldTitle, domain.FieldContent, domain.FieldCategory}

// Repo implements usecase/search.Repository.
type Repo struct {
	store  store
	schema domain.IndexSchema
}

// New creates a search repository. The schema supplies the index name, field boosts and fuzziness.
func New(s store, schema domain.IndexSchema) *Repo {
	return &Repo{store: s, schema: schema}
}

// Search runs a BM25 query: title and content matched with their boosts,
// category applied as an exact non-scoring filter.
func (r *Repo) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	q := &db.TextQuery{
		IndexName: r.schema.Name,
		Query:     req.Query(),
		Fields: []db.WeightedField{
			{Name: domain.FieldTitle, Boost: r.schema.TitleBoost},
			{Name: domain.FieldContent, Boost: r.schema.ContentBoost},
		},
		Filters:      req.Filters(),
		TopK:         req.Size(),
		ReturnFields: returnFields,
	}
	if req.Fuzzy() && r.schema.Fuzziness != "0" {
		q.Fuzziness = r.schema.Fuzziness
	}

	sr, err := r.store.SearchBM25(ctx, q)
	if err != nil {
		return result.Page{}, fmt.Errorf("search %s: %w", r.schema.Name, repository.Translate(err))
	}
	if sr == nil {
		return result.Page{}, fmt.Errorf("search %s: nil result: %w", r.schema.Name, domain.ErrMalformedResponse)
	}

	page, err := toPage(sr)
	if err != nil {
		return result.Page{}, fmt.Errorf("search %s: %w", r.schema.Name, err)
	}
	return page, nil
}

// toPage maps engine hits to results. Title and content are required on every hit.
func toPage(sr *db.SearchResult) (result.Page, error) {
	results := make([]result.Result, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		title, okTitle := e.Fields[domain.FieldTitle]
		content, okContent := e.Fields[domain.FieldContent]
		if !okTitle || !okContent {
			return result.Page{}, fmt.Errorf("hit %q missing title or content: %w", e.Key, domain.ErrMalformedResponse)
		}
		results = append(results, result.New(e.Key, e.Score, title, content, e.Fields[domain.FieldCategory]))
	}
	return result.Page{Total: sr.Total, TookMs: sr.TookMs, Results: results}, nil
}
