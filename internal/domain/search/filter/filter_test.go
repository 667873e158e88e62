package filter

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

func TestNewMatch_Valid(t *testing.T) {
	c, err := NewMatch("category", "web")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Key() != "category" || c.Match() != "web" {
		t.Errorf("got %q=%q", c.Key(), c.Match())
	}
}

func TestNewMatch_Invalid(t *testing.T) {
	if _, err := NewMatch("", "web"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("empty key: expected ErrInvalidRequest, got %v", err)
	}
	if _, err := NewMatch("category", ""); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("empty value: expected ErrInvalidRequest, got %v", err)
	}
}

func TestExpression_Empty(t *testing.T) {
	var e Expression
	if !e.IsEmpty() {
		t.Error("zero expression should be empty")
	}
	if _, ok := e.Value("category"); ok {
		t.Error("empty expression should not constrain category")
	}
}

func TestExpression_Value(t *testing.T) {
	c, _ := NewMatch("category", "ai")
	e, err := NewExpression(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := e.Value("category")
	if !ok || v != "ai" {
		t.Errorf("Value(category) = %q, %v", v, ok)
	}
	if _, ok := e.Value("title"); ok {
		t.Error("title should not be constrained")
	}
}

func TestNewExpression_TooMany(t *testing.T) {
	conds := make([]Condition, MaxConditions+1)
	for i := range conds {
		conds[i], _ = NewMatch("category", "x")
	}
	if _, err := NewExpression(conds...); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}
