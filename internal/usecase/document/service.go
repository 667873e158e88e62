package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Service handles single-document writes and counting.
type Service struct {
	repo    Repository
	refresh domain.RefreshPolicy
}

// New creates a document service. Writes wait for visibility unless configured otherwise.
func New(repo Repository) *Service {
	return &Service{repo: repo, refresh: domain.RefreshWaitFor}
}

// WithRefresh sets the default refresh policy for writes.
func (s *Service) WithRefresh(p domain.RefreshPolicy) *Service {
	if p != "" {
		s.refresh = p
	}
	return s
}

// Add creates or replaces a document. An empty refresh uses the service default.
func (s *Service) Add(
	ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy,
) (domdoc.WriteResult, error) {
	res, err := s.repo.Upsert(ctx, doc, s.policy(refresh))
	if err != nil {
		return "", fmt.Errorf("add document: %w", err)
	}
	return res, nil
}

// Delete removes a document by id.
func (s *Service) Delete(ctx context.Context, id string, refresh domain.RefreshPolicy) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required: %w", domain.ErrInvalidRequest)
	}
	if err := s.repo.Delete(ctx, id, s.policy(refresh)); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Count returns the number of indexed documents.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (s *Service) policy(p domain.RefreshPolicy) domain.RefreshPolicy {
	if p == "" {
		return s.refresh
	}
	return p
}
