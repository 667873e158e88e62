package docsearch

import "github.com/kailas-cloud/docsearch/internal/domain"

// RefreshPolicy controls when a write becomes visible to search.
type RefreshPolicy = domain.RefreshPolicy

// Refresh policies.
const (
	RefreshNone      = domain.RefreshNone
	RefreshImmediate = domain.RefreshImmediate
	RefreshWaitFor   = domain.RefreshWaitFor
)

// Schema is the static index configuration applied when the index is created.
type Schema struct {
	Name         string
	Analyzer     string
	TitleBoost   float64
	ContentBoost float64
	BM25K1       float64
	BM25B        float64
	Fuzziness    string // AUTO, 0, 1, 2
}

// Document is a searchable document.
type Document struct {
	ID       string
	Title    string
	Content  string
	Category string // optional
}

// WriteResult reports whether a write created or replaced a document.
type WriteResult string

// Write results.
const (
	Created WriteResult = "created"
	Updated WriteResult = "updated"
)

// Query is a BM25 search request.
type Query struct {
	Text     string
	Size     int    // 0 means the default of 10
	Category string // exact filter, empty for none
	Fuzzy    *bool  // nil means on
}

// Hit is a single ranked document.
type Hit struct {
	ID       string
	Title    string
	Content  string
	Category string
	Score    float64
}

// Page is an ordered list of hits with the engine's total hit count.
type Page struct {
	Total  int
	TookMs int
	Hits   []Hit
}

// BatchResult is the outcome of one document in a Batch call.
type BatchResult struct {
	ID     string
	OK     bool
	Result WriteResult // set when OK
	Err    error
}

// IndexStats summarizes the index.
type IndexStats struct {
	Index          string
	DocumentCount  int64
	StoreSizeBytes int64
}

// Analysis is the token stream the index analyzer produces for a text.
type Analysis struct {
	Original string
	Tokens   []string
}

// HealthStatus is the gateway's view of the engine.
type HealthStatus struct {
	Status        string // "ok" or "degraded"
	Connection    string // "connected" or "disconnected"
	Driver        string
	ClusterStatus string
	Version       string
	Error         string
}
