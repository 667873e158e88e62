package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultSize    = 10
	MaxSize        = 100
)

// Request is a validated search query.
type Request struct {
	query   string
	size    int
	filters filter.Expression
	fuzzy   bool
}

// New validates and normalizes search parameters.
// size nil means DefaultSize; an explicit non-positive size or one above maxSize is rejected.
// A maxSize <= 0 falls back to MaxSize.
func New(query string, size *int, category string, fuzzy bool, maxSize int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("query is required: %w", domain.ErrInvalidRequest)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d bytes): %w", MaxQueryLength, domain.ErrInvalidRequest)
	}
	if maxSize <= 0 {
		maxSize = MaxSize
	}

	n := DefaultSize
	if size != nil {
		n = *size
	}
	if n <= 0 {
		return Request{}, fmt.Errorf("size must be positive, got %d: %w", n, domain.ErrInvalidRequest)
	}
	if n > maxSize {
		return Request{}, fmt.Errorf("size must not exceed %d, got %d: %w", maxSize, n, domain.ErrInvalidRequest)
	}

	var conds []filter.Condition
	if category != "" {
		c, err := filter.NewMatch(domain.FieldCategory, category)
		if err != nil {
			return Request{}, err
		}
		conds = append(conds, c)
	}
	filters, err := filter.NewExpression(conds...)
	if err != nil {
		return Request{}, err
	}

	return Request{query: query, size: n, filters: filters, fuzzy: fuzzy}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// Size returns the maximum number of hits to return.
func (r *Request) Size() int { return r.size }

// Filters returns the exact-match pre-filter.
func (r *Request) Filters() filter.Expression { return r.filters }

// Fuzzy reports whether bounded fuzzy matching is requested.
func (r *Request) Fuzzy() bool { return r.fuzzy }

// Category returns the category filter, empty when unfiltered.
func (r *Request) Category() string {
	v, _ := r.filters.Value(domain.FieldCategory)
	return v
}
