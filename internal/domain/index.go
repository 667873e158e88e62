package domain

// IndexStats summarizes the document index.
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
