package elasticsearch

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// buildSearchBody renders a bool query: multi_match in must (scored),
// exact term filters in filter (not scored).
func buildSearchBody(q *db.TextQuery) map[string]any {
	fields := make([]string, 0, len(q.Fields))
	for _, f := range q.Fields {
		if f.Boost > 0 && f.Boost != 1 {
			fields = append(fields, f.Name+"^"+strconv.FormatFloat(f.Boost, 'f', -1, 64))
		} else {
			fields = append(fields, f.Name)
		}
	}

	match := map[string]any{
		"query":  q.Query,
		"fields": fields,
		"type":   "best_fields",
	}
	if q.Fuzziness != "" {
		match["fuzziness"] = q.Fuzziness
	}

	boolQuery := map[string]any{
		"must": []any{map[string]any{"multi_match": match}},
	}
	if !q.Filters.IsEmpty() {
		terms := make([]any, 0, len(q.Filters.Must()))
		for _, c := range q.Filters.Must() {
			terms = append(terms, map[string]any{
				"term": map[string]any{c.Key(): c.Match()},
			})
		}
		boolQuery["filter"] = terms
	}

	body := map[string]any{
		"query":            map[string]any{"bool": boolQuery},
		"size":             q.TopK,
		"track_total_hits": true,
	}
	if len(q.ReturnFields) > 0 {
		body["_source"] = q.ReturnFields
	}
	return body
}

type searchResponse struct {
	Took int `json:"took"`
	Hits *struct {
		Total *struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Score  *float64       `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchBM25 runs a full-text query scored by the index similarity (BM25).
func (s *Store) SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.Query == "" {
		return nil, errors.New("query is required")
	}
	if len(q.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	body, err := jsonBody(buildSearchBody(q))
	if err != nil {
		return nil, err
	}

	var out searchResponse
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(q.IndexName),
		s.client.Search.WithBody(body),
	)
	if err := s.decode(db.OpSearch, res, err, &out); err != nil {
		return nil, err
	}
	return parseSearchResponse(&out)
}

func parseSearchResponse(out *searchResponse) (*db.SearchResult, error) {
	if out.Hits == nil || out.Hits.Total == nil {
		return nil, db.Malformed(db.OpSearch, errors.New("missing hits.total"))
	}

	entries := make([]db.SearchEntry, 0, len(out.Hits.Hits))
	for i, h := range out.Hits.Hits {
		if h.ID == "" || h.Score == nil {
			return nil, db.Malformed(db.OpSearch, fmt.Errorf("hit %d has no _id or _score", i))
		}
		fields := make(map[string]string, len(h.Source))
		for k, v := range h.Source {
			if str, ok := v.(string); ok {
				fields[k] = str
			}
		}
		entries = append(entries, db.SearchEntry{Key: h.ID, Score: *h.Score, Fields: fields})
	}

	return &db.SearchResult{
		Total:   out.Hits.Total.Value,
		TookMs:  out.Took,
		Entries: entries,
	}, nil
}
