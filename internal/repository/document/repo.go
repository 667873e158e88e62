package document

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/repository"
)

// store is the consumer interface for documents (ISP).
type store interface {
	PutDocument(ctx context.Context, index string, item db.DocumentItem, refresh db.Refresh) (bool, error)
	PutDocuments(ctx context.Context, index string, items []db.DocumentItem, refresh db.Refresh) ([]db.PutResult, error)
	DeleteDocument(ctx context.Context, index, id string, refresh db.Refresh) error
	CountDocuments(ctx context.Context, index string) (int, error)
}

// Repo implements usecase/document.Repository and usecase/batch.BulkUpserter.
type Repo struct {
	store store
	index string
}

// New creates a document repository bound to one index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Upsert creates or replaces a document.
func (r *Repo) Upsert(
	ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy,
) (domdoc.WriteResult, error) {
	created, err := r.store.PutDocument(ctx, r.index, toItem(doc), repository.Refresh(refresh))
	if err != nil {
		return "", fmt.Errorf("upsert %s: %w", doc.ID(), repository.Translate(err))
	}
	if created {
		return domdoc.Created, nil
	}
	return domdoc.Updated, nil
}

// UpsertMany writes docs in one engine round-trip and reports per-document outcomes
// in input order. A non-nil error means the request as a whole failed.
func (r *Repo) UpsertMany(
	ctx context.Context, docs []domdoc.Document, refresh domain.RefreshPolicy,
) ([]dombatch.Result, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	items := make([]db.DocumentItem, len(docs))
	for i := range docs {
		items[i] = toItem(&docs[i])
	}

	puts, err := r.store.PutDocuments(ctx, r.index, items, repository.Refresh(refresh))
	if err != nil {
		return nil, fmt.Errorf("bulk upsert: %w", repository.Translate(err))
	}
	if len(puts) != len(docs) {
		return nil, fmt.Errorf("bulk upsert: got %d results for %d documents: %w",
			len(puts), len(docs), domain.ErrMalformedResponse)
	}

	results := make([]dombatch.Result, len(puts))
	for i, p := range puts {
		switch {
		case p.Err != nil:
			results[i] = dombatch.NewError(docs[i].ID(), repository.Translate(p.Err))
		case p.Created:
			results[i] = dombatch.NewOK(docs[i].ID(), domdoc.Created)
		default:
			results[i] = dombatch.NewOK(docs[i].ID(), domdoc.Updated)
		}
	}
	return results, nil
}

// Delete removes a document by id.
func (r *Repo) Delete(ctx context.Context, id string, refresh domain.RefreshPolicy) error {
	if err := r.store.DeleteDocument(ctx, r.index, id, repository.Refresh(refresh)); err != nil {
		return fmt.Errorf("delete %s: %w", id, repository.Translate(err))
	}
	return nil
}

// Count returns the number of documents in the index.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.CountDocuments(ctx, r.index)
	if err != nil {
		return 0, fmt.Errorf("count: %w", repository.Translate(err))
	}
	return n, nil
}

func toItem(doc *domdoc.Document) db.DocumentItem {
	return db.DocumentItem{ID: doc.ID(), Fields: doc.Fields()}
}
