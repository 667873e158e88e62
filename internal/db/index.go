package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldText is an analyzed full-text field scored by BM25.
	IndexFieldText IndexFieldType = iota
	// IndexFieldKeyword is an exact-match field (ES keyword, Redis TAG). Not analyzed.
	IndexFieldKeyword
)

// IndexField describes a single field in an index schema.
type IndexField struct {
	Name string
	Type IndexFieldType

	// TEXT options
	Weight   float64 // relevance weight; engines that only support query-time boosts ignore it here
	Analyzer string  // overrides the index default analyzer

	// KEYWORD options
	CaseSensitive bool
}

// Similarity holds BM25 tuning parameters.
type Similarity struct {
	K1 float64
	B  float64
}

// IndexDefinition is a complete index definition used at index-creation time.
type IndexDefinition struct {
	Name       string
	Analyzer   string
	Similarity *Similarity
	Fields     []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}
	if s := idx.Similarity; s != nil {
		if s.K1 < 0 {
			return errors.New("bm25 k1 must be non-negative")
		}
		if s.B < 0 || s.B > 1 {
			return errors.New("bm25 b must be between 0 and 1")
		}
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		if f.Type == IndexFieldText && f.Weight < 0 {
			return errors.New("text field weight must be non-negative: " + f.Name)
		}
	}

	return nil
}

// TextFields returns the TEXT fields in declaration order.
func (idx *IndexDefinition) TextFields() []IndexField {
	var out []IndexField
	for _, f := range idx.Fields {
		if f.Type == IndexFieldText {
			out = append(out, f)
		}
	}
	return out
}

// IsValidIdentifier returns true if s matches [a-z0-9_-]+ (Elasticsearch index names are lowercase).
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == '-'
		if !isLower && !isDigit && !isSpecial {
			return false
		}
	}
	return s[0] != '_' && s[0] != '-'
}
