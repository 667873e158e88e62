package db

import (
	"strconv"
	"strings"
)

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Analyzer sets the default analyzer for TEXT fields.
func (b *IndexBuilder) Analyzer(name string) *IndexBuilder {
	b.def.Analyzer = name
	return b
}

// BM25 sets the similarity tuning parameters.
func (b *IndexBuilder) BM25(k1, bParam float64) *IndexBuilder {
	b.def.Similarity = &Similarity{K1: k1, B: bParam}
	return b
}

// Text adds a TEXT field with the given relevance weight.
func (b *IndexBuilder) Text(name string, weight float64) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:   name,
		Type:   IndexFieldText,
		Weight: weight,
	})
	return b
}

// Keyword adds an exact-match field.
func (b *IndexBuilder) Keyword(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:          name,
		Type:          IndexFieldKeyword,
		CaseSensitive: true,
	})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a compact debug representation of the schema.
func (idx *IndexDefinition) String() string {
	parts := []string{"INDEX", idx.Name}
	if idx.Analyzer != "" {
		parts = append(parts, "ANALYZER", idx.Analyzer)
	}
	if s := idx.Similarity; s != nil {
		parts = append(parts, "BM25",
			strconv.FormatFloat(s.K1, 'g', -1, 64),
			strconv.FormatFloat(s.B, 'g', -1, 64))
	}
	parts = append(parts, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		parts = append(parts, f.Name)
		switch f.Type {
		case IndexFieldText:
			parts = append(parts, "TEXT", "WEIGHT", strconv.FormatFloat(f.Weight, 'g', -1, 64))
		case IndexFieldKeyword:
			parts = append(parts, "KEYWORD")
		}
	}
	return strings.Join(parts, " ")
}
