package db

import (
	"context"
	"time"
)

// Store is the search engine facade combining all sub-interfaces.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	InfoReader
	IndexManager
	DocumentStore
	Searcher
	Driver() string
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EngineInfo describes the running engine.
type EngineInfo struct {
	Version       string
	ClusterName   string
	ClusterStatus string // green, yellow, red; empty when the engine has no cluster notion
}

// InfoReader reports engine version and cluster status.
type InfoReader interface {
	Info(ctx context.Context) (EngineInfo, error)
}

// IndexStats holds per-index statistics.
type IndexStats struct {
	DocumentCount  int64
	StoreSizeBytes int64
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Refresh(ctx context.Context, name string) error
	IndexStats(ctx context.Context, name string) (IndexStats, error)
	Analyze(ctx context.Context, index, analyzer, text string) ([]string, error)
}

// Refresh controls write visibility; values match the Elasticsearch refresh parameter.
type Refresh string

// Refresh values.
const (
	RefreshFalse   Refresh = "false"
	RefreshTrue    Refresh = "true"
	RefreshWaitFor Refresh = "wait_for"
)

// DocumentItem holds a single id+fields pair for upserts.
type DocumentItem struct {
	ID     string
	Fields map[string]string
}

// PutResult is the per-item outcome of a bulk upsert.
type PutResult struct {
	ID      string
	Created bool
	Err     error
}

// DocumentStore provides upsert/delete/count by primary key.
type DocumentStore interface {
	PutDocument(ctx context.Context, index string, item DocumentItem, refresh Refresh) (created bool, err error)
	PutDocuments(ctx context.Context, index string, items []DocumentItem, refresh Refresh) ([]PutResult, error)
	DeleteDocument(ctx context.Context, index, id string, refresh Refresh) error
	CountDocuments(ctx context.Context, index string) (int, error)
}

// Searcher provides BM25 full-text search.
type Searcher interface {
	SearchBM25(ctx context.Context, q *TextQuery) (*SearchResult, error)
}
