package batch

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
)

// BulkUpserter writes many documents in one engine round-trip.
type BulkUpserter interface {
	UpsertMany(ctx context.Context, docs []domdoc.Document, refresh domain.RefreshPolicy) ([]dombatch.Result, error)
}
