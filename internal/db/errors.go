package db

import "errors"

// Sentinel errors for engine operations.
var (
	ErrKeyNotFound       = errors.New("db: key not found")
	ErrIndexNotFound     = errors.New("db: index not found")
	ErrIndexExists       = errors.New("db: index already exists")
	ErrUnavailable       = errors.New("db: engine unavailable")
	ErrRejected          = errors.New("db: request rejected by engine")
	ErrMalformedResponse = errors.New("db: malformed engine response")
	ErrNotSupported      = errors.New("db: operation not supported by engine")
)

// Op names used for error context and metrics labels.
// Elasticsearch ops are named after the REST API, Redis ops after the command.
const (
	OpPing        = "ping"
	OpInfo        = "info"
	OpCreateIndex = "indices.create"
	OpIndexExists = "indices.exists"
	OpRefresh     = "indices.refresh"
	OpIndexStats  = "indices.stats"
	OpAnalyze     = "indices.analyze"
	OpIndex       = "index"
	OpBulk        = "bulk"
	OpDelete      = "delete"
	OpCount       = "count"
	OpSearch      = "search"
	OpFTCreate    = "FT.CREATE"
	OpFTInfo      = "FT.INFO"
	OpFTSearch    = "FT.SEARCH"
	OpHSet        = "HSET"
	OpDel         = "DEL"
	OpRedisInfo   = "INFO"
	OpRedisPing   = "PING"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Unavailable wraps err as an ErrUnavailable failure of op.
func Unavailable(op string, err error) error {
	return &Error{Op: op, Err: errors.Join(ErrUnavailable, err)}
}

// Rejected wraps err as an ErrRejected failure of op.
func Rejected(op string, err error) error {
	return &Error{Op: op, Err: errors.Join(ErrRejected, err)}
}

// Malformed wraps err as an ErrMalformedResponse failure of op.
func Malformed(op string, err error) error {
	return &Error{Op: op, Err: errors.Join(ErrMalformedResponse, err)}
}
