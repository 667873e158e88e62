package db

import "github.com/kailas-cloud/docsearch/internal/domain/search/filter"

// WeightedField is a TEXT field searched with a relevance boost.
type WeightedField struct {
	Name  string
	Boost float64
}

// TextQuery is the input for BM25 text search.
type TextQuery struct {
	IndexName    string
	Query        string
	Fields       []WeightedField
	Fuzziness    string // "" disables fuzzy matching; AUTO, 1 or 2 bound the edit distance
	Filters      filter.Expression
	TopK         int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	TookMs  int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
