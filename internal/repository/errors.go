// Package repository holds helpers shared by the engine-backed repositories.
package repository

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Translate maps engine sentinels onto domain sentinels. The engine error stays
// in the chain for logging; unknown errors pass through unchanged.
func Translate(err error) error {
	var target error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrKeyNotFound):
		target = domain.ErrDocumentNotFound
	case errors.Is(err, db.ErrUnavailable):
		target = domain.ErrUpstreamUnavailable
	case errors.Is(err, db.ErrMalformedResponse):
		target = domain.ErrMalformedResponse
	case errors.Is(err, db.ErrNotSupported):
		target = domain.ErrNotImplemented
	case errors.Is(err, db.ErrRejected), errors.Is(err, db.ErrIndexNotFound):
		target = domain.ErrUpstreamRejected
	default:
		return err
	}
	return fmt.Errorf("%w: %w", target, err)
}

// Refresh converts a domain refresh policy to the engine parameter.
func Refresh(p domain.RefreshPolicy) db.Refresh {
	switch p {
	case domain.RefreshImmediate:
		return db.RefreshTrue
	case domain.RefreshNone:
		return db.RefreshFalse
	default:
		return db.RefreshWaitFor
	}
}
