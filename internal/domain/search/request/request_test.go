package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNew_Defaults(t *testing.T) {
	r, err := New("테스트", nil, "", true, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "테스트" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Size() != DefaultSize {
		t.Errorf("Size() = %d, want %d", r.Size(), DefaultSize)
	}
	if !r.Filters().IsEmpty() {
		t.Error("expected no filters")
	}
	if r.Category() != "" {
		t.Errorf("Category() = %q", r.Category())
	}
	if !r.Fuzzy() {
		t.Error("expected fuzzy")
	}
}

func TestNew_CategoryFilter(t *testing.T) {
	r, err := New("python", intPtr(5), "programming", false, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Size() != 5 {
		t.Errorf("Size() = %d", r.Size())
	}
	if r.Category() != "programming" {
		t.Errorf("Category() = %q", r.Category())
	}
	if len(r.Filters().Must()) != 1 {
		t.Errorf("expected 1 filter condition, got %d", len(r.Filters().Must()))
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		size    *int
		maxSize int
	}{
		{"empty query", "", nil, 0},
		{"blank query", "  \n", nil, 0},
		{"query too long", strings.Repeat("q", MaxQueryLength+1), nil, 0},
		{"zero size", "q", intPtr(0), 0},
		{"negative size", "q", intPtr(-3), 0},
		{"size above default max", "q", intPtr(MaxSize + 1), 0},
		{"size above configured max", "q", intPtr(51), 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.query, tc.size, "", true, tc.maxSize)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestNew_SizeAtMax(t *testing.T) {
	r, err := New("q", intPtr(50), "", true, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Size() != 50 {
		t.Errorf("Size() = %d", r.Size())
	}
}
