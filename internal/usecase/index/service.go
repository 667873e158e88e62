package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// MaxAnalyzeLength bounds the text accepted by Analyze, in bytes.
const MaxAnalyzeLength = 10000

// Service exposes index statistics and analyzer output.
type Service struct {
	repo Repository
}

// New creates an index service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats returns the index document count and store size.
func (s *Service) Stats(ctx context.Context) (domain.IndexStats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("index stats: %w", err)
	}
	return st, nil
}

// Refresh makes every acknowledged write visible to search.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.repo.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return nil
}

// Analyze runs text through the index analyzer.
func (s *Service) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Analysis{}, fmt.Errorf("text is required: %w", domain.ErrInvalidRequest)
	}
	if len(text) > MaxAnalyzeLength {
		return domain.Analysis{}, fmt.Errorf("text too long (max %d bytes): %w", MaxAnalyzeLength, domain.ErrInvalidRequest)
	}
	a, err := s.repo.Analyze(ctx, text)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("analyze: %w", err)
	}
	return a, nil
}
