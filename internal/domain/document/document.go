package document

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

var idRegex = regexp.MustCompile(`^[^\s/]+$`)

// Size limits, in bytes.
const (
	MaxIDSize       = 512
	MaxTitleSize    = 1024
	MaxCategorySize = 256
	MaxContentSize  = 1 << 20 // 1MiB
)

// Document is the document aggregate (immutable value object).
type Document struct {
	id       string
	title    string
	content  string
	category string
}

// New validates and creates a Document.
// ID, title and content must be non-blank; category is optional.
func New(id, title, content, category string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, fmt.Errorf("document id is required: %w", domain.ErrInvalidRequest)
	}
	if len(id) > MaxIDSize {
		return Document{}, fmt.Errorf("document id too long (max %d): %w", MaxIDSize, domain.ErrInvalidRequest)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document id must not contain whitespace or '/': %w", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(title) == "" {
		return Document{}, fmt.Errorf("title is required: %w", domain.ErrInvalidRequest)
	}
	if len(title) > MaxTitleSize {
		return Document{}, fmt.Errorf("title too large (max %d bytes): %w", MaxTitleSize, domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(content) == "" {
		return Document{}, fmt.Errorf("content is required: %w", domain.ErrInvalidRequest)
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes): %w", MaxContentSize, domain.ErrInvalidRequest)
	}
	if len(category) > MaxCategorySize {
		return Document{}, fmt.Errorf("category too long (max %d bytes): %w", MaxCategorySize, domain.ErrInvalidRequest)
	}
	if strings.ContainsFunc(category, unicode.IsControl) {
		return Document{}, fmt.Errorf("category must not contain control characters: %w", domain.ErrInvalidRequest)
	}

	return Document{id: id, title: title, content: content, category: category}, nil
}

// Reconstruct creates a Document without validation (engine hydration).
func Reconstruct(id, title, content, category string) Document {
	return Document{id: id, title: title, content: content, category: category}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document body.
func (d *Document) Content() string { return d.content }

// Category returns the classification tag, empty when unset.
func (d *Document) Category() string { return d.category }

// HasCategory reports whether a category is set.
func (d *Document) HasCategory() bool { return d.category != "" }

// Fields returns the stored field map. Category is omitted when unset.
func (d *Document) Fields() map[string]string {
	m := map[string]string{
		domain.FieldTitle:   d.title,
		domain.FieldContent: d.content,
	}
	if d.category != "" {
		m[domain.FieldCategory] = d.category
	}
	return m
}

// WriteResult is the outcome of an upsert.
type WriteResult string

// Upsert outcomes.
const (
	Created WriteResult = "created"
	Updated WriteResult = "updated"
	Deleted WriteResult = "deleted"
)
