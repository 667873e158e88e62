package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/repository"
)

// store is the consumer interface for index management (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Refresh(ctx context.Context, name string) error
	IndexStats(ctx context.Context, name string) (db.IndexStats, error)
	Analyze(ctx context.Context, index, analyzer, text string) ([]string, error)
}

// Repo implements usecase/index.Repository and owns the static index schema.
type Repo struct {
	store  store
	schema domain.IndexSchema
}

// New creates an index repository.
func New(s store, schema domain.IndexSchema) *Repo {
	return &Repo{store: s, schema: schema}
}

// Definition renders the schema as an engine index definition.
func Definition(schema domain.IndexSchema) (*db.IndexDefinition, error) {
	def, err := db.NewIndex(schema.Name).
		Analyzer(schema.Analyzer).
		BM25(schema.BM25K1, schema.BM25B).
		Text(domain.FieldTitle, schema.TitleBoost).
		Text(domain.FieldContent, schema.ContentBoost).
		Keyword(domain.FieldCategory).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", schema.Name, err)
	}
	return def, nil
}

// Ensure creates the index when it is missing. Returns true if this call created it.
// A concurrent creator winning the race is not an error.
func (r *Repo) Ensure(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.schema.Name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.schema.Name, repository.Translate(err))
	}
	if exists {
		return false, nil
	}

	def, err := Definition(r.schema)
	if err != nil {
		return false, err
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", r.schema.Name, repository.Translate(err))
	}
	return true, nil
}

// Stats returns document count and store size of the index.
func (r *Repo) Stats(ctx context.Context) (domain.IndexStats, error) {
	st, err := r.store.IndexStats(ctx, r.schema.Name)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("stats %s: %w", r.schema.Name, repository.Translate(err))
	}
	return domain.IndexStats{
		Index:          r.schema.Name,
		DocumentCount:  st.DocumentCount,
		StoreSizeBytes: st.StoreSizeBytes,
	}, nil
}

// Refresh makes every acknowledged write visible to search.
func (r *Repo) Refresh(ctx context.Context) error {
	if err := r.store.Refresh(ctx, r.schema.Name); err != nil {
		return fmt.Errorf("refresh %s: %w", r.schema.Name, repository.Translate(err))
	}
	return nil
}

// Analyze tokenizes text with the index analyzer.
func (r *Repo) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	tokens, err := r.store.Analyze(ctx, r.schema.Name, r.schema.Analyzer, text)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("analyze: %w", repository.Translate(err))
	}
	if tokens == nil {
		tokens = []string{}
	}
	return domain.Analysis{Original: text, Tokens: tokens}, nil
}
