package index

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Repository defines the index inspection contract.
type Repository interface {
	Stats(ctx context.Context) (domain.IndexStats, error)
	Analyze(ctx context.Context, text string) (domain.Analysis, error)
	Refresh(ctx context.Context) error
}
