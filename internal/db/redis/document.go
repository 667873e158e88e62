package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// cmdsPerPut is the MULTI, DEL, HSET, EXEC group issued for one document.
const cmdsPerPut = 4

// PutDocument replaces the document hash atomically. Returns true when the key was new.
// Hash writes are indexed synchronously, so refresh has no effect.
func (s *Store) PutDocument(
	ctx context.Context, index string, item db.DocumentItem, _ db.Refresh,
) (bool, error) {
	results := s.client.DoMulti(ctx, s.putCommands(index, item)...)
	created, err := parsePut(results)
	if err != nil {
		return false, err
	}
	return created, nil
}

// PutDocuments pipelines one MULTI/EXEC group per item in a single round-trip.
func (s *Store) PutDocuments(
	ctx context.Context, index string, items []db.DocumentItem, _ db.Refresh,
) ([]db.PutResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, 0, len(items)*cmdsPerPut)
	for _, item := range items {
		cmds = append(cmds, s.putCommands(index, item)...)
	}

	results := s.client.DoMulti(ctx, cmds...)
	if len(results) != len(cmds) {
		return nil, db.Malformed(db.OpHSet, fmt.Errorf("got %d replies for %d commands", len(results), len(cmds)))
	}

	out := make([]db.PutResult, len(items))
	for i, item := range items {
		group := results[i*cmdsPerPut : (i+1)*cmdsPerPut]
		created, err := parsePut(group)
		if err != nil && errors.Is(err, db.ErrUnavailable) {
			return nil, err
		}
		out[i] = db.PutResult{ID: item.ID, Created: created, Err: err}
	}
	return out, nil
}

func (s *Store) putCommands(index string, item db.DocumentItem) []rueidis.Completed {
	key := s.docKey(index, item.ID)

	names := make([]string, 0, len(item.Fields))
	for k := range item.Fields {
		names = append(names, k)
	}
	slices.Sort(names)

	hset := s.b().Hset().Key(key).FieldValue()
	for _, k := range names {
		hset = hset.FieldValue(k, item.Fields[k])
	}

	return []rueidis.Completed{
		s.b().Multi().Build(),
		s.b().Del().Key(key).Build(),
		hset.Build(),
		s.b().Exec().Build(),
	}
}

// parsePut reads a MULTI, DEL, HSET, EXEC reply group. DEL removing 0 keys means created.
func parsePut(results []rueidis.RedisResult) (bool, error) {
	for _, r := range results[:cmdsPerPut-1] {
		if err := r.Error(); err != nil {
			return false, wrapErr(db.OpHSet, err)
		}
	}

	replies, err := results[cmdsPerPut-1].ToArray()
	if err != nil {
		return false, wrapErr(db.OpHSet, err)
	}
	if len(replies) != 2 {
		return false, db.Malformed(db.OpHSet, fmt.Errorf("EXEC returned %d replies", len(replies)))
	}
	if err := replies[1].Error(); err != nil {
		return false, wrapErr(db.OpHSet, err)
	}
	deleted, err := replies[0].AsInt64()
	if err != nil {
		return false, db.Malformed(db.OpDel, err)
	}
	return deleted == 0, nil
}

// DeleteDocument removes a document by id. Returns db.ErrKeyNotFound for unknown ids.
func (s *Store) DeleteDocument(ctx context.Context, index, id string, _ db.Refresh) error {
	cmd := s.b().Del().Key(s.docKey(index, id)).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return wrapErr(db.OpDel, err)
	}
	if n == 0 {
		return &db.Error{Op: db.OpDel, Err: db.ErrKeyNotFound}
	}
	return nil
}

// CountDocuments returns the number of indexed documents via FT.SEARCH with LIMIT 0 0.
func (s *Store) CountDocuments(ctx context.Context, index string) (int, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(s.ftName(index), "*", "LIMIT", "0", "0").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, wrapErr(db.OpFTSearch, err)
	}
	if len(raw) == 0 {
		return 0, db.Malformed(db.OpFTSearch, errors.New("empty reply"))
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, db.Malformed(db.OpFTSearch, fmt.Errorf("parse count: %w", err))
	}
	return int(total), nil
}
