package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
	batchuc "github.com/kailas-cloud/docsearch/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docsearch/internal/usecase/index"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
	"github.com/kailas-cloud/docsearch/internal/version"
)

// Request body limits, in bytes.
const (
	maxDocumentBody = 2 << 20
	maxBatchBody    = 64 << 20
	maxQueryBody    = 64 << 10
)

const statusMessage = "Document search gateway is running"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the document search HTTP API.
type Server struct {
	documents     *documentuc.Service
	search        *searchuc.Service
	batch         *batchuc.Service
	index         *indexuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	defSearchSize int
	maxSearchSize int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	documents *documentuc.Service,
	search *searchuc.Service,
	batch *batchuc.Service,
	index *indexuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents:     documents,
		search:        search,
		batch:         batch,
		index:         index,
		health:        health,
		logger:        logger,
		defSearchSize: request.DefaultSize,
		maxSearchSize: request.MaxSize,
	}
	s.errorHandlers = []errorHandler{
		invalidRequestHandler,
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, ErrorCodeDocumentNotFound),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, ErrorCodeUpstreamUnavailable),
		sentinelHandler(domain.ErrUpstreamRejected, http.StatusBadGateway, ErrorCodeUpstreamError),
		sentinelHandler(domain.ErrMalformedResponse, http.StatusBadGateway, ErrorCodeUpstreamError),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
	}
	return s
}

// WithSearchLimits sets the default and maximum of the search size parameter.
func (s *Server) WithSearchLimits(defaultSize, maxSize int) *Server {
	if defaultSize > 0 {
		s.defSearchSize = defaultSize
	}
	if maxSize > 0 {
		s.maxSearchSize = maxSize
	}
	return s
}

// Routes mounts the API endpoints on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/", s.Status)
	r.Get("/health", s.HealthCheck)
	r.Post("/documents", s.AddDocument)
	r.Post("/documents/", s.AddDocument)
	r.Post("/documents/batch", s.BatchAddDocuments)
	r.Get("/documents/count", s.CountDocuments)
	r.Delete("/documents/{id}", s.DeleteDocument)
	r.Post("/search", s.Search)
	r.Post("/search/", s.Search)
	r.Get("/index/stats", s.IndexStats)
	r.Post("/analyze", s.Analyze)
}

// AddDocument handles POST /documents/.
func (s *Server) AddDocument(w http.ResponseWriter, r *http.Request) {
	refresh, ok := refreshParam(w, r)
	if !ok {
		return
	}

	var req DocumentRequest
	if !decodeBody(w, r, maxDocumentBody, &req) {
		return
	}

	doc, err := domdoc.New(req.ID, req.Title, req.Content, req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	res, err := s.documents.Add(r.Context(), &doc, refresh)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, WriteResponse{ID: doc.ID(), Result: string(res)})
}

// BatchAddDocuments handles POST /documents/batch.
func (s *Server) BatchAddDocuments(w http.ResponseWriter, r *http.Request) {
	refresh, ok := refreshParam(w, r)
	if !ok {
		return
	}

	var req BatchRequest
	if !decodeBody(w, r, maxBatchBody, &req) {
		return
	}

	items := make([]batchuc.Item, len(req.Documents))
	for i, d := range req.Documents {
		items[i] = batchuc.Item{ID: d.ID, Title: d.Title, Content: d.Content, Category: d.Category}
	}

	results, err := s.batch.Upsert(r.Context(), items, refresh)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := BatchResponse{Items: make([]BatchResultItem, len(results))}
	for i, res := range results {
		resp.Items[i] = batchResultToDTO(res)
	}
	resp.Succeeded, resp.Failed = dombatch.Summary(results)

	writeJSON(w, http.StatusOK, resp)
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", gochi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
		return
	}

	refresh, ok := refreshParam(w, r)
	if !ok {
		return
	}

	if err := s.documents.Delete(r.Context(), id, refresh); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, WriteResponse{ID: id, Result: string(domdoc.Deleted)})
}

// CountDocuments handles GET /documents/count.
func (s *Server) CountDocuments(w http.ResponseWriter, r *http.Request) {
	n, err := s.documents.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: n})
}

// Search handles POST /search/.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !decodeBody(w, r, maxQueryBody, &body) {
		return
	}

	fuzzy := true
	if body.Fuzzy != nil {
		fuzzy = *body.Fuzzy
	}
	if body.Size == nil {
		n := s.defSearchSize
		body.Size = &n
	}

	req, err := request.New(body.Query, body.Size, body.Category, fuzzy, s.maxSearchSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := SearchResponse{
		Total:   page.Total,
		Took:    page.TookMs,
		Results: make([]SearchHit, len(page.Results)),
	}
	for i := range page.Results {
		resp.Results[i] = searchHitToDTO(&page.Results[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// IndexStats handles GET /index/stats.
func (s *Server) IndexStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.index.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, IndexStatsResponse{
		Index:          st.Index,
		DocumentCount:  st.DocumentCount,
		StoreSizeBytes: st.StoreSizeBytes,
	})
}

// Analyze handles POST /analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeBody(w, r, maxQueryBody, &req) {
		return
	}

	a, err := s.index.Analyze(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tokens := a.Tokens
	if tokens == nil {
		tokens = []string{}
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Original: a.Original, Tokens: tokens, TokenCount: len(tokens)})
}

// Status handles GET /. It always answers 200 while the gateway is up.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusToDTO(s.health.Check(r.Context())))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, statusToDTO(report))
}

func statusToDTO(report healthuc.Report) StatusResponse {
	return StatusResponse{
		Status:  string(report.Status),
		Message: statusMessage,
		Version: version.Version,
		Elasticsearch: EngineStatus{
			Status:        string(report.Engine.Connection),
			ClusterStatus: report.Engine.ClusterStatus,
			Version:       report.Engine.Version,
			Error:         report.Engine.Error,
		},
	}
}

func searchHitToDTO(r *result.Result) SearchHit {
	return SearchHit{
		ID:       r.ID(),
		Title:    r.Title(),
		Content:  r.Content(),
		Category: r.Category(),
		Score:    r.Score(),
	}
}

func batchResultToDTO(r dombatch.Result) BatchResultItem {
	item := BatchResultItem{
		ID:     r.ID(),
		Status: string(r.Status()),
	}
	if r.Status() == dombatch.StatusOK {
		write := string(r.Write())
		item.Result = &write
	}
	if r.Err() != nil {
		item.Error = &ErrorResponse{
			Code:    batchErrorCode(r.Err()),
			Message: itemMessage(r.Err()),
		}
	}
	return item
}

func batchErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return ErrorCodeValidationFailed
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return ErrorCodeUpstreamUnavailable
	case errors.Is(err, domain.ErrUpstreamRejected), errors.Is(err, domain.ErrMalformedResponse):
		return ErrorCodeUpstreamError
	default:
		return ErrorCodeInternalError
	}
}

// itemMessage keeps validation details, which only echo caller input.
func itemMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	return safeDomainMessage(err)
}

// refreshParam parses the optional ?refresh= query parameter.
// An absent parameter yields "" so the service default applies.
func refreshParam(w http.ResponseWriter, r *http.Request) (domain.RefreshPolicy, bool) {
	p, err := domain.ParseRefreshPolicy(r.URL.Query().Get("refresh"), "")
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return "", false
	}
	return p, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrDocumentNotFound,
		domain.ErrUpstreamUnavailable,
		domain.ErrUpstreamRejected,
		domain.ErrMalformedResponse,
		domain.ErrRateLimited,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidRequestHandler reports validation failures with their full message.
func invalidRequestHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrInvalidRequest) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
