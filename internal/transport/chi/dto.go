package chi

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeDocumentNotFound    ErrorCode = "document_not_found"
	ErrorCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
	ErrorCodeUpstreamError       ErrorCode = "upstream_error"
	ErrorCodeRateLimited         ErrorCode = "rate_limited"
	ErrorCodeNotImplemented      ErrorCode = "not_implemented"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DocumentRequest is the body of POST /documents/.
type DocumentRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// WriteResponse reports the outcome of a single-document write.
type WriteResponse struct {
	ID     string `json:"id"`
	Result string `json:"result"`
}

// BatchRequest is the body of POST /documents/batch.
type BatchRequest struct {
	Documents []DocumentRequest `json:"documents"`
}

// BatchResultItem is the per-document outcome of a batch write.
type BatchResultItem struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Result *string        `json:"result,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// BatchResponse is the body returned by POST /documents/batch.
type BatchResponse struct {
	Items     []BatchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// CountResponse is the body returned by GET /documents/count.
type CountResponse struct {
	Count int `json:"count"`
}

// SearchRequest is the body of POST /search/.
type SearchRequest struct {
	Query    string `json:"query"`
	Size     *int   `json:"size,omitempty"`
	Category string `json:"category,omitempty"`
	Fuzzy    *bool  `json:"fuzzy,omitempty"`
}

// SearchHit is a single ranked document.
type SearchHit struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// SearchResponse is the body returned by POST /search/.
type SearchResponse struct {
	Total   int         `json:"total"`
	Took    int         `json:"took"`
	Results []SearchHit `json:"results"`
}

// EngineStatus is the engine part of the status and health responses.
type EngineStatus struct {
	Status        string `json:"status"`
	ClusterStatus string `json:"cluster_status,omitempty"`
	Version       string `json:"version,omitempty"`
	Error         string `json:"error,omitempty"`
}

// StatusResponse is the body of GET / and GET /health.
type StatusResponse struct {
	Status        string       `json:"status"`
	Message       string       `json:"message"`
	Version       string       `json:"version"`
	Elasticsearch EngineStatus `json:"elasticsearch"`
}

// IndexStatsResponse is the body returned by GET /index/stats.
type IndexStatsResponse struct {
	Index          string `json:"index"`
	DocumentCount  int64  `json:"document_count"`
	StoreSizeBytes int64  `json:"store_size_bytes"`
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse is the body returned by POST /analyze.
type AnalyzeResponse struct {
	Original   string   `json:"original"`
	Tokens     []string `json:"tokens"`
	TokenCount int      `json:"token_count"`
}
