// Package redis implements db.Store on the Redis Query Engine (FT.*) via rueidis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DriverName identifies this driver in config and metrics.
const DriverName = "redis"

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// KeyPrefix namespaces document keys and FT index names.
	KeyPrefix string
	// MaxRetries > 0 keeps rueidis' built-in retry of read-only commands; zero disables it.
	MaxRetries int
}

// Store implements db.Store via rueidis for Redis 8+.
type Store struct {
	client    rueidis.Client
	keyPrefix string
}

// NewStore creates a Redis store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		DisableRetry: cfg.MaxRetries <= 0,
		AlwaysRESP2:  true, // FT.SEARCH and FT.INFO parsing expects RESP2 arrays
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

// Driver returns the driver name.
func (s *Store) Driver() string { return DriverName }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.b().Ping().Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return wrapErr(db.OpRedisPing, err)
	}
	return nil
}

// Info reports the server version from INFO server. Redis has no cluster health notion.
func (s *Store) Info(ctx context.Context) (db.EngineInfo, error) {
	cmd := s.b().Info().Section("server").Build()
	text, err := s.do(ctx, cmd).ToString()
	if err != nil {
		return db.EngineInfo{}, wrapErr(db.OpRedisInfo, err)
	}

	for _, line := range strings.Split(text, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "redis_version:"); ok {
			return db.EngineInfo{Version: v}, nil
		}
	}
	return db.EngineInfo{}, db.Malformed(db.OpRedisInfo, errors.New("missing redis_version"))
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for redis: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}

// ftName is the FT index name for a logical index.
func (s *Store) ftName(index string) string {
	return s.keyPrefix + index + ":idx"
}

// docPrefix is the key prefix shared by all documents of a logical index.
func (s *Store) docPrefix(index string) string {
	return s.keyPrefix + index + ":"
}

func (s *Store) docKey(index, id string) string {
	return s.docPrefix(index) + id
}

// wrapErr classifies err: server replies are rejections, everything else
// (dial failures, timeouts, closed client) means the engine is unavailable.
func wrapErr(op string, err error) error {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return db.Unavailable(op, err)
	}
	msg := re.Error()
	switch {
	case containsIgnoreCase(msg, "unknown index name"), containsIgnoreCase(msg, "no such index"):
		return &db.Error{Op: op, Err: db.ErrIndexNotFound}
	case containsIgnoreCase(msg, "index already exists"):
		return &db.Error{Op: op, Err: db.ErrIndexExists}
	case containsIgnoreCase(msg, "loading"), containsIgnoreCase(msg, "busy"):
		return db.Unavailable(op, err)
	default:
		return db.Rejected(op, err)
	}
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
