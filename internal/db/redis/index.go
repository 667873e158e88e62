package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// CreateIndex creates an FT index over the hashes of the logical index.
// Analyzer and BM25 k1/b are Elasticsearch settings with no FT.CREATE counterpart;
// Redis scores with BM25STD and its default tokenizer.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid index definition: %w", err)
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(s.buildCreateArgs(def)...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return wrapErr(db.OpFTCreate, err)
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(s.ftName(name)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		err = wrapErr(db.OpFTInfo, err)
		if errors.Is(err, db.ErrIndexNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Refresh is a no-op: hash writes are indexed synchronously.
func (s *Store) Refresh(_ context.Context, _ string) error {
	return nil
}

// IndexStats reads num_docs and the memory-size counters from FT.INFO.
func (s *Store) IndexStats(ctx context.Context, name string) (db.IndexStats, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(s.ftName(name)).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return db.IndexStats{}, wrapErr(db.OpFTInfo, err)
	}
	return parseIndexStats(raw)
}

// Analyze is not available: FT.* exposes no tokenizer endpoint.
func (s *Store) Analyze(_ context.Context, _, _, _ string) ([]string, error) {
	return nil, &db.Error{Op: db.OpAnalyze, Err: db.ErrNotSupported}
}

var sizeFields = []string{"inverted_sz_mb", "doc_table_size_mb", "key_table_size_mb", "offset_vectors_sz_mb"}

func parseIndexStats(raw []rueidis.RedisMessage) (db.IndexStats, error) {
	info := make(map[string]rueidis.RedisMessage, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		k, err := raw[i].ToString()
		if err != nil {
			continue
		}
		info[k] = raw[i+1]
	}

	docsMsg, ok := info["num_docs"]
	if !ok {
		return db.IndexStats{}, db.Malformed(db.OpFTInfo, errors.New("missing num_docs"))
	}
	docs, err := messageFloat(docsMsg)
	if err != nil {
		return db.IndexStats{}, db.Malformed(db.OpFTInfo, fmt.Errorf("num_docs: %w", err))
	}

	var mb float64
	for _, f := range sizeFields {
		if msg, ok := info[f]; ok {
			if v, err := messageFloat(msg); err == nil {
				mb += v
			}
		}
	}

	return db.IndexStats{
		DocumentCount:  int64(docs),
		StoreSizeBytes: int64(mb * 1024 * 1024),
	}, nil
}

// messageFloat reads a number that FT.INFO may encode as integer, double or string.
func messageFloat(m rueidis.RedisMessage) (float64, error) {
	if n, err := m.AsInt64(); err == nil {
		return float64(n), nil
	}
	if f, err := m.AsFloat64(); err == nil {
		return f, nil
	}
	str, err := m.ToString()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(str, 64)
}

func (s *Store) buildCreateArgs(def *db.IndexDefinition) []string {
	args := []string{
		s.ftName(def.Name),
		"ON", "HASH",
		"PREFIX", "1", s.docPrefix(def.Name),
		"SCHEMA",
	}
	for i := range def.Fields {
		args = append(args, buildFieldArgs(&def.Fields[i])...)
	}
	return args
}

// tagSeparator replaces the default "," so a keyword value is indexed as one tag.
// Document validation rejects control characters, so it never occurs in a value.
const tagSeparator = "\x1f"

func buildFieldArgs(f *db.IndexField) []string {
	switch f.Type {
	case db.IndexFieldKeyword:
		args := []string{f.Name, "TAG", "SEPARATOR", tagSeparator}
		if f.CaseSensitive {
			args = append(args, "CASESENSITIVE")
		}
		return args
	default:
		args := []string{f.Name, "TEXT"}
		if f.Weight > 0 {
			args = append(args, "WEIGHT", strconv.FormatFloat(f.Weight, 'f', -1, 64))
		}
		return args
	}
}
