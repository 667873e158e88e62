package document

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Upsert(ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy) (domdoc.WriteResult, error)
	Delete(ctx context.Context, id string, refresh domain.RefreshPolicy) error
	Count(ctx context.Context) (int, error)
}
