package domain

import "errors"

var (
	// ErrInvalidRequest signals a request that failed validation before any engine call.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrUpstreamUnavailable signals that the search engine is unreachable or failing internally.
	ErrUpstreamUnavailable = errors.New("search engine unavailable")
	// ErrUpstreamRejected signals that the search engine refused the request.
	ErrUpstreamRejected = errors.New("search engine rejected request")
	// ErrMalformedResponse signals an engine response that does not match the expected shape.
	ErrMalformedResponse = errors.New("malformed search engine response")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotImplemented signals a feature the configured engine does not provide.
	ErrNotImplemented = errors.New("not implemented")
)
