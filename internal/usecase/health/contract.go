package health

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// EngineInspector reports engine version and cluster status.
type EngineInspector interface {
	Info(ctx context.Context) (db.EngineInfo, error)
}
