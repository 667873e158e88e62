package docsearch

import "github.com/kailas-cloud/docsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest      = domain.ErrInvalidRequest
	ErrDocumentNotFound    = domain.ErrDocumentNotFound
	ErrUpstreamUnavailable = domain.ErrUpstreamUnavailable
	ErrUpstreamRejected    = domain.ErrUpstreamRejected
	ErrMalformedResponse   = domain.ErrMalformedResponse
	ErrNotImplemented      = domain.ErrNotImplemented
)
