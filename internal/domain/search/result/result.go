package result

// Result is a single search hit.
type Result struct {
	id       string
	score    float64
	title    string
	content  string
	category string
}

// New creates a search result.
func New(id string, score float64, title, content, category string) Result {
	return Result{id: id, score: score, title: title, content: content, category: category}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Score returns the engine-assigned relevance score.
func (r *Result) Score() float64 { return r.score }

// Title returns the document title.
func (r *Result) Title() string { return r.title }

// Content returns the document content.
func (r *Result) Content() string { return r.content }

// Category returns the document category, empty when unset.
func (r *Result) Category() string { return r.category }

// Page is an ordered slice of hits plus the engine's total hit count.
type Page struct {
	Total   int
	TookMs  int
	Results []Result
}
