package batch

import "github.com/kailas-cloud/docsearch/internal/domain/document"

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of processing one item in a batch operation.
type Result struct {
	id     string
	status ItemStatus
	write  document.WriteResult
	err    error
}

// NewOK creates a successful batch result.
func NewOK(id string, write document.WriteResult) Result {
	return Result{id: id, status: StatusOK, write: write}
}

// NewError creates a failed batch result.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// ID returns the item identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Write returns created/updated for successful items.
func (r Result) Write() document.WriteResult { return r.write }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts successes and failures.
func Summary(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.status == StatusOK {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
