package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"key not found", &db.Error{Op: db.OpDelete, Err: db.ErrKeyNotFound}, domain.ErrDocumentNotFound},
		{"unavailable", db.Unavailable(db.OpSearch, errors.New("dial tcp")), domain.ErrUpstreamUnavailable},
		{"rejected", db.Rejected(db.OpIndex, errors.New("mapper_parsing_exception")), domain.ErrUpstreamRejected},
		{"index missing", &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}, domain.ErrUpstreamRejected},
		{"malformed", db.Malformed(db.OpSearch, errors.New("missing hits")), domain.ErrMalformedResponse},
		{"not supported", &db.Error{Op: db.OpAnalyze, Err: db.ErrNotSupported}, domain.ErrNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("Translate() = %v, want %v in chain", got, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("original error dropped from chain: %v", got)
			}
		})
	}
}

func TestTranslate_Passthrough(t *testing.T) {
	if Translate(nil) != nil {
		t.Fatal("expected nil")
	}
	if err := Translate(context.Canceled); !errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Errorf("unexpected translation: %v", err)
	}
}

func TestRefresh(t *testing.T) {
	cases := map[domain.RefreshPolicy]db.Refresh{
		domain.RefreshNone:      db.RefreshFalse,
		domain.RefreshImmediate: db.RefreshTrue,
		domain.RefreshWaitFor:   db.RefreshWaitFor,
		"":                      db.RefreshWaitFor,
	}
	for in, want := range cases {
		if got := Refresh(in); got != want {
			t.Errorf("Refresh(%q) = %q, want %q", in, got, want)
		}
	}
}
