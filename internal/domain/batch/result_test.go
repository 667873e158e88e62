package batch

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

func TestNewOK(t *testing.T) {
	r := NewOK("doc-1", document.Created)
	if r.ID() != "doc-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Write() != document.Created {
		t.Errorf("Write() = %q", r.Write())
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestNewError(t *testing.T) {
	err := errors.New("something failed")
	r := NewError("doc-2", err)
	if r.ID() != "doc-2" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusError)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v", r.Err())
	}
	if r.Write() != "" {
		t.Errorf("Write() = %q, want empty", r.Write())
	}
}

func TestSummary(t *testing.T) {
	results := []Result{
		NewOK("a", document.Created),
		NewOK("b", document.Updated),
		NewError("c", errors.New("boom")),
	}
	ok, failed := Summary(results)
	if ok != 2 || failed != 1 {
		t.Errorf("Summary() = %d, %d; want 2, 1", ok, failed)
	}
}
