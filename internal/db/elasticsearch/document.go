package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/docsearch/internal/db"
)

type writeResponse struct {
	ID     string `json:"_id"`
	Result string `json:"result"`
}

// PutDocument upserts a document by id. Returns true when the id was new.
func (s *Store) PutDocument(
	ctx context.Context, index string, item db.DocumentItem, refresh db.Refresh,
) (bool, error) {
	body, err := jsonBody(item.Fields)
	if err != nil {
		return false, err
	}

	var out writeResponse
	res, err := s.client.Index(index, body,
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(item.ID),
		s.client.Index.WithRefresh(string(refresh)),
	)
	if err := s.decode(db.OpIndex, res, err, &out); err != nil {
		return false, err
	}

	switch out.Result {
	case "created":
		return true, nil
	case "updated", "noop":
		return false, nil
	default:
		return false, db.Malformed(db.OpIndex, fmt.Errorf("unexpected result %q", out.Result))
	}
}

type bulkAction struct {
	Index bulkMeta `json:"index"`
}

type bulkMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

type bulkResponse struct {
	Items []map[string]bulkItem `json:"items"`
}

type bulkItem struct {
	ID     string          `json:"_id"`
	Status int             `json:"status"`
	Result string          `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// PutDocuments upserts items in one _bulk request. Per-item failures are reported
// in the result slice; the returned error covers only request-level failures.
func (s *Store) PutDocuments(
	ctx context.Context, index string, items []db.DocumentItem, refresh db.Refresh,
) ([]db.PutResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, item := range items {
		if err := enc.Encode(bulkAction{Index: bulkMeta{Index: index, ID: item.ID}}); err != nil {
			return nil, fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(item.Fields); err != nil {
			return nil, fmt.Errorf("encode bulk source: %w", err)
		}
	}

	var out bulkResponse
	res, err := s.client.Bulk(&buf,
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithIndex(index),
		s.client.Bulk.WithRefresh(string(refresh)),
	)
	if err := s.decode(db.OpBulk, res, err, &out); err != nil {
		return nil, err
	}
	if len(out.Items) != len(items) {
		return nil, db.Malformed(db.OpBulk,
			fmt.Errorf("got %d items for %d documents", len(out.Items), len(items)))
	}

	results := make([]db.PutResult, len(items))
	for i, entry := range out.Items {
		item, ok := entry["index"]
		if !ok {
			return nil, db.Malformed(db.OpBulk, fmt.Errorf("item %d has no index action", i))
		}
		results[i] = bulkItemResult(items[i].ID, item)
	}
	return results, nil
}

func bulkItemResult(id string, item bulkItem) db.PutResult {
	r := db.PutResult{ID: id}
	switch {
	case item.Status >= http.StatusInternalServerError, item.Status == http.StatusTooManyRequests:
		r.Err = db.Unavailable(db.OpBulk, fmt.Errorf("status %d: %s", item.Status, causeOf(item.Error)))
	case item.Status >= http.StatusBadRequest:
		r.Err = db.Rejected(db.OpBulk, fmt.Errorf("status %d: %s", item.Status, causeOf(item.Error)))
	default:
		r.Created = item.Result == "created"
	}
	return r
}

func causeOf(raw json.RawMessage) errorCause {
	if len(raw) == 0 {
		return errorCause{}
	}
	var c errorCause
	if err := json.Unmarshal(raw, &c); err != nil {
		return errorCause{Reason: string(raw)}
	}
	return c
}

// DeleteDocument removes a document by id. Returns db.ErrKeyNotFound for unknown ids.
func (s *Store) DeleteDocument(ctx context.Context, index, id string, refresh db.Refresh) error {
	res, err := s.client.Delete(index, id,
		s.client.Delete.WithContext(ctx),
		s.client.Delete.WithRefresh(string(refresh)),
	)
	return s.decode(db.OpDelete, res, err, nil)
}

type countResponse struct {
	Count *int `json:"count"`
}

// CountDocuments returns the number of documents in the index.
func (s *Store) CountDocuments(ctx context.Context, index string) (int, error) {
	var out countResponse
	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(index),
	)
	if err := s.decode(db.OpCount, res, err, &out); err != nil {
		return 0, err
	}
	if out.Count == nil {
		return 0, db.Malformed(db.OpCount, errors.New("missing count"))
	}
	return *out.Count, nil
}
