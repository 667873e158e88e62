package elasticsearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/docsearch/internal/db"
)

type fieldMapping struct {
	Type     string `json:"type"`
	Analyzer string `json:"analyzer,omitempty"`
}

// buildIndexBody renders settings and mappings for indices.create.
// Field weights are not stored in the mapping: boosts are applied at query time.
func buildIndexBody(def *db.IndexDefinition) map[string]any {
	props := make(map[string]fieldMapping, len(def.Fields))
	for _, f := range def.Fields {
		switch f.Type {
		case db.IndexFieldText:
			analyzer := f.Analyzer
			if analyzer == "" {
				analyzer = def.Analyzer
			}
			props[f.Name] = fieldMapping{Type: "text", Analyzer: analyzer}
		case db.IndexFieldKeyword:
			props[f.Name] = fieldMapping{Type: "keyword"}
		}
	}

	body := map[string]any{
		"mappings": map[string]any{"properties": props},
	}
	if s := def.Similarity; s != nil {
		body["settings"] = map[string]any{
			"index": map[string]any{
				"similarity": map[string]any{
					"default": map[string]any{"type": "BM25", "k1": s.K1, "b": s.B},
				},
			},
		}
	}
	return body
}

// CreateIndex creates the index with BM25 similarity and the declared mappings.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid index definition: %w", err)
	}
	body, err := jsonBody(buildIndexBody(def))
	if err != nil {
		return err
	}
	res, err := s.client.Indices.Create(def.Name,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(body),
	)
	return s.decode(db.OpCreateIndex, res, err, nil)
}

// IndexExists reports whether the index exists.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	res, err := s.client.Indices.Exists([]string{name}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, db.Unavailable(db.OpIndexExists, err)
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusOK:
		return true, nil
	case res.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, classify(db.OpIndexExists, res)
	}
}

// Refresh makes all writes to the index visible to search.
func (s *Store) Refresh(ctx context.Context, name string) error {
	res, err := s.client.Indices.Refresh(
		s.client.Indices.Refresh.WithContext(ctx),
		s.client.Indices.Refresh.WithIndex(name),
	)
	return s.decode(db.OpRefresh, res, err, nil)
}

type statsResponse struct {
	Indices map[string]struct {
		Total struct {
			Docs *struct {
				Count int64 `json:"count"`
			} `json:"docs"`
			Store *struct {
				SizeInBytes int64 `json:"size_in_bytes"`
			} `json:"store"`
		} `json:"total"`
	} `json:"indices"`
}

// IndexStats returns document count and on-disk store size.
func (s *Store) IndexStats(ctx context.Context, name string) (db.IndexStats, error) {
	var out statsResponse
	res, err := s.client.Indices.Stats(
		s.client.Indices.Stats.WithContext(ctx),
		s.client.Indices.Stats.WithIndex(name),
		s.client.Indices.Stats.WithMetric("docs", "store"),
	)
	if err := s.decode(db.OpIndexStats, res, err, &out); err != nil {
		return db.IndexStats{}, err
	}

	idx, ok := out.Indices[name]
	if !ok || idx.Total.Docs == nil || idx.Total.Store == nil {
		return db.IndexStats{}, db.Malformed(db.OpIndexStats, errors.New("missing index totals"))
	}
	return db.IndexStats{
		DocumentCount:  idx.Total.Docs.Count,
		StoreSizeBytes: idx.Total.Store.SizeInBytes,
	}, nil
}

type analyzeResponse struct {
	Tokens []struct {
		Token string `json:"token"`
	} `json:"tokens"`
}

// Analyze runs text through the analyzer and returns the emitted tokens.
// An empty analyzer uses the index default.
func (s *Store) Analyze(ctx context.Context, index, analyzer, text string) ([]string, error) {
	req := map[string]any{"text": text}
	if analyzer != "" {
		req["analyzer"] = analyzer
	}
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	var out analyzeResponse
	res, err := s.client.Indices.Analyze(
		s.client.Indices.Analyze.WithContext(ctx),
		s.client.Indices.Analyze.WithIndex(index),
		s.client.Indices.Analyze.WithBody(body),
	)
	if err := s.decode(db.OpAnalyze, res, err, &out); err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(out.Tokens))
	for _, t := range out.Tokens {
		tokens = append(tokens, t.Token)
	}
	return tokens, nil
}
