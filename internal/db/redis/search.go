package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain/search/filter"
)

// SearchBM25 runs a BM25STD text search via FT.SEARCH. Field weights come from
// the index schema; Redis does not report query time, so TookMs stays zero.
func (s *Store) SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, errors.New("index name is required")
	}
	if q.TopK <= 0 {
		return nil, errors.New("topK must be positive")
	}
	if len(q.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	textPart := buildTextQuery(q.Fields, q.Query, q.Fuzziness)
	if textPart == "" {
		return nil, errors.New("query is required")
	}

	queryStr := textPart
	if filterStr := buildFilter(q.Filters); filterStr != "" {
		queryStr = textPart + " " + filterStr
	}

	args := []string{s.ftName(q.IndexName), queryStr, "WITHSCORES", "SCORER", "BM25STD"}
	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}
	args = append(args,
		"LIMIT", "0", strconv.Itoa(q.TopK),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, wrapErr(db.OpFTSearch, err)
	}

	res, err := parseBM25Result(raw)
	if err != nil {
		return nil, err
	}
	prefix := s.docPrefix(q.IndexName)
	for i := range res.Entries {
		res.Entries[i].Key = strings.TrimPrefix(res.Entries[i].Key, prefix)
	}
	return res, nil
}

// buildTextQuery renders "(@title|content:(a|b))": any term in any text field.
func buildTextQuery(fields []db.WeightedField, query, fuzziness string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}

	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		escaped := escapeQuery(t)
		if escaped != t {
			// fuzzy syntax does not accept escaped punctuation
			parts = append(parts, escaped)
			continue
		}
		pad := strings.Repeat("%", fuzzDistance(fuzziness, t))
		parts = append(parts, pad+t+pad)
	}

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	return fmt.Sprintf("(@%s:(%s))", strings.Join(names, "|"), strings.Join(parts, "|"))
}

// fuzzDistance maps Elasticsearch fuzziness onto Redis' %term% (1) and %%term%% (2).
// AUTO follows the Elasticsearch rule: 0 edits up to 2 runes, 1 up to 5, 2 beyond.
func fuzzDistance(fuzziness, term string) int {
	switch fuzziness {
	case "1":
		return 1
	case "2":
		return 2
	case "AUTO":
		switch n := utf8.RuneCountInString(term); {
		case n <= 2:
			return 0
		case n <= 5:
			return 1
		default:
			return 2
		}
	default:
		return 0
	}
}

// parseBM25Result reads a RESP2 WITHSCORES reply:
// [total, key1, score1, [f, v, ...], key2, score2, [...], ...].
func parseBM25Result(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return nil, db.Malformed(db.OpFTSearch, errors.New("empty reply"))
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, db.Malformed(db.OpFTSearch, fmt.Errorf("parse total: %w", err))
	}
	if (len(raw)-1)%3 != 0 {
		return nil, db.Malformed(db.OpFTSearch, fmt.Errorf("unexpected reply length %d", len(raw)))
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/3)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, db.Malformed(db.OpFTSearch, fmt.Errorf("parse key: %w", err))
		}

		score, err := messageFloat(raw[i+1])
		if err != nil {
			return nil, db.Malformed(db.OpFTSearch, fmt.Errorf("parse score of %s: %w", key, err))
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			return nil, db.Malformed(db.OpFTSearch, fmt.Errorf("parse fields of %s: %w", key, err))
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Score:  score,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// buildFilter translates filter.Expression into TAG clauses ANDed with the text query.
func buildFilter(expr filter.Expression) string {
	if expr.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, len(expr.Must()))
	for _, cond := range expr.Must() {
		parts = append(parts, buildTagFilter(cond.Key(), cond.Match()))
	}
	return strings.Join(parts, " ")
}

func buildTagFilter(key, value string) string {
	return fmt.Sprintf("@%s:{%s}", key, tagEscaper.Replace(value))
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`,`, `\,`,
	`.`, `\.`,
	`/`, `\/`,
	`&`, `\&`,
	`#`, `\#`,
)
