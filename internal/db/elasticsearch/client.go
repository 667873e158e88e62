// Package elasticsearch implements db.Store on top of the official Elasticsearch client.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DriverName identifies this driver in config and metrics.
const DriverName = "elasticsearch"

// Config holds connection parameters for an Elasticsearch store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	// MaxRetries enables transport-level retries on 502/503/504 and network errors. Zero disables retries.
	MaxRetries int
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Store implements db.Store via go-elasticsearch.
type Store struct {
	client *elasticsearch.Client
}

// NewStore creates an Elasticsearch store. No request is sent until the first call.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}

	esCfg := elasticsearch.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	}
	if cfg.MaxRetries > 0 {
		esCfg.MaxRetries = cfg.MaxRetries
		esCfg.RetryOnStatus = []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}
	} else {
		esCfg.DisableRetry = true
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &Store{client: client}, nil
}

// Driver returns the driver name.
func (s *Store) Driver() string { return DriverName }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	return s.decode(db.OpPing, res, err, nil)
}

type infoResponse struct {
	ClusterName string `json:"cluster_name"`
	Version     *struct {
		Number string `json:"number"`
	} `json:"version"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Info reports the engine version and cluster health status.
func (s *Store) Info(ctx context.Context) (db.EngineInfo, error) {
	var info infoResponse
	res, err := s.client.Info(s.client.Info.WithContext(ctx))
	if err := s.decode(db.OpInfo, res, err, &info); err != nil {
		return db.EngineInfo{}, err
	}
	if info.Version == nil {
		return db.EngineInfo{}, db.Malformed(db.OpInfo, errors.New("missing version"))
	}

	var health healthResponse
	res, err = s.client.Cluster.Health(s.client.Cluster.Health.WithContext(ctx))
	if err := s.decode(db.OpInfo, res, err, &health); err != nil {
		return db.EngineInfo{}, err
	}
	if health.Status == "" {
		return db.EngineInfo{}, db.Malformed(db.OpInfo, errors.New("missing cluster status"))
	}

	return db.EngineInfo{
		Version:       info.Version.Number,
		ClusterName:   info.ClusterName,
		ClusterStatus: health.Status,
	}, nil
}

// Close is a no-op: the client holds only an idle-connection pool.
func (s *Store) Close() {}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// errorResponse is the Elasticsearch error envelope. "error" is an object for
// API errors and a plain string for some transport-level failures.
type errorResponse struct {
	Error  json.RawMessage `json:"error"`
	Status int             `json:"status"`
	Result string          `json:"result"`
}

type errorCause struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// decode closes the body, classifies non-2xx responses and decodes the JSON payload into out.
func (s *Store) decode(op string, res *esapi.Response, err error, out any) error {
	if err != nil {
		return db.Unavailable(op, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return classify(op, res)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return db.Malformed(op, err)
	}
	return nil
}

func classify(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	cause := parseCause(body)

	switch {
	case res.StatusCode >= http.StatusInternalServerError, res.StatusCode == http.StatusTooManyRequests:
		return db.Unavailable(op, fmt.Errorf("status %d: %s", res.StatusCode, cause))
	case res.StatusCode == http.StatusNotFound:
		if cause.Type == "index_not_found_exception" {
			return &db.Error{Op: op, Err: db.ErrIndexNotFound}
		}
		return &db.Error{Op: op, Err: db.ErrKeyNotFound}
	case cause.Type == "resource_already_exists_exception":
		return &db.Error{Op: op, Err: db.ErrIndexExists}
	default:
		return db.Rejected(op, fmt.Errorf("status %d: %s", res.StatusCode, cause))
	}
}

func parseCause(body []byte) errorCause {
	var env errorResponse
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error) == 0 {
		return errorCause{Reason: string(bytes.TrimSpace(body))}
	}
	var c errorCause
	if err := json.Unmarshal(env.Error, &c); err == nil {
		return c
	}
	var msg string
	_ = json.Unmarshal(env.Error, &msg)
	return errorCause{Reason: msg}
}

func (c errorCause) String() string {
	switch {
	case c.Type != "" && c.Reason != "":
		return c.Type + ": " + c.Reason
	case c.Type != "":
		return c.Type
	default:
		return c.Reason
	}
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return bytes.NewReader(data), nil
}
