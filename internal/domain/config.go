package domain

import (
	"fmt"
	"strings"
)

// RefreshPolicy controls when a write becomes visible to search.
type RefreshPolicy string

// Refresh policies understood by the engines.
const (
	// RefreshNone leaves visibility to the engine's refresh interval.
	RefreshNone RefreshPolicy = "false"
	// RefreshImmediate forces a refresh of the affected shards.
	RefreshImmediate RefreshPolicy = "true"
	// RefreshWaitFor blocks until the next refresh makes the write visible.
	RefreshWaitFor RefreshPolicy = "wait_for"
)

// ParseRefreshPolicy parses a refresh policy. An empty string yields def.
func ParseRefreshPolicy(s string, def RefreshPolicy) (RefreshPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "false":
		return RefreshNone, nil
	case "true":
		return RefreshImmediate, nil
	case "wait_for":
		return RefreshWaitFor, nil
	default:
		return "", fmt.Errorf("refresh must be true, false or wait_for, got %q: %w", s, ErrInvalidRequest)
	}
}

// IndexSchema is the static index configuration applied at index-creation time
// and reused when building queries.
type IndexSchema struct {
	Name         string
	Analyzer     string
	TitleBoost   float64
	ContentBoost float64
	BM25K1       float64
	BM25B        float64
	Fuzziness    string
}

// DefaultIndexSchema returns the schema used when nothing is configured.
func DefaultIndexSchema() IndexSchema {
	return IndexSchema{
		Name:         "documents",
		Analyzer:     "standard",
		TitleBoost:   2,
		ContentBoost: 1,
		BM25K1:       1.5,
		BM25B:        0.75,
		Fuzziness:    "AUTO",
	}
}

// ValidateBoosts checks that title matches outweigh content matches.
func (s IndexSchema) ValidateBoosts() error {
	if s.TitleBoost <= 0 || s.ContentBoost <= 0 {
		return fmt.Errorf("boosts must be positive, got title %g content %g: %w",
			s.TitleBoost, s.ContentBoost, ErrInvalidRequest)
	}
	if s.TitleBoost <= s.ContentBoost {
		return fmt.Errorf("title boost %g must exceed content boost %g: %w",
			s.TitleBoost, s.ContentBoost, ErrInvalidRequest)
	}
	return nil
}

// Field names of the fixed document schema.
const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldCategory = "category"
)
