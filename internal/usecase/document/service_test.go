package document

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
)

// --- Mocks ---

type mockRepo struct {
	upsertResult domdoc.WriteResult
	upsertErr    error
	deleteErr    error
	count        int
	countErr     error

	lastRefresh domain.RefreshPolicy
	lastID      string
}

func (m *mockRepo) Upsert(
	_ context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy,
) (domdoc.WriteResult, error) {
	m.lastID = doc.ID()
	m.lastRefresh = refresh
	return m.upsertResult, m.upsertErr
}

func (m *mockRepo) Delete(_ context.Context, id string, refresh domain.RefreshPolicy) error {
	m.lastID = id
	m.lastRefresh = refresh
	return m.deleteErr
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	return m.count, m.countErr
}

func testDoc(t *testing.T) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New("t1", "테스트 문서", "본문", "")
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}

// --- Tests ---

func TestAdd_DefaultRefresh(t *testing.T) {
	repo := &mockRepo{upsertResult: domdoc.Created}
	svc := New(repo)
	doc := testDoc(t)

	res, err := svc.Add(context.Background(), &doc, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != domdoc.Created {
		t.Errorf("expected created, got %s", res)
	}
	if repo.lastRefresh != domain.RefreshWaitFor {
		t.Errorf("expected wait_for, got %s", repo.lastRefresh)
	}
}

func TestAdd_RefreshOverride(t *testing.T) {
	repo := &mockRepo{upsertResult: domdoc.Updated}
	svc := New(repo).WithRefresh(domain.RefreshNone)
	doc := testDoc(t)

	if _, err := svc.Add(context.Background(), &doc, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastRefresh != domain.RefreshNone {
		t.Errorf("expected configured default false, got %s", repo.lastRefresh)
	}

	if _, err := svc.Add(context.Background(), &doc, domain.RefreshImmediate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastRefresh != domain.RefreshImmediate {
		t.Errorf("expected per-request true, got %s", repo.lastRefresh)
	}
}

func TestAdd_RepoError(t *testing.T) {
	repo := &mockRepo{upsertErr: domain.ErrUpstreamUnavailable}
	svc := New(repo)
	doc := testDoc(t)

	_, err := svc.Add(context.Background(), &doc, "")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestDelete_BlankID(t *testing.T) {
	svc := New(&mockRepo{})
	err := svc.Delete(context.Background(), "  ", "")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepo{deleteErr: domain.ErrDocumentNotFound}
	svc := New(repo)

	err := svc.Delete(context.Background(), "missing", "")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if repo.lastID != "missing" {
		t.Errorf("unexpected id: %s", repo.lastID)
	}
}

func TestCount(t *testing.T) {
	svc := New(&mockRepo{count: 3})
	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}
