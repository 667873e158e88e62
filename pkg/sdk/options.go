package docsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "elasticsearch" or "redis"
	addrs      []string
	username   string
	password   string
	keyPrefix  string
	maxRetries int

	schema         Schema
	refresh        RefreshPolicy
	maxBatchSize   int
	maxSearchSize  int
	requestTimeout time.Duration
	readyTimeout   time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithElasticsearch connects the client to an Elasticsearch cluster.
func WithElasticsearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverElasticsearch
		c.addrs = addrs
	})
}

// WithRedis connects the client to a Redis instance with the Query Engine.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithBasicAuth sets engine credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithKeyPrefix namespaces Redis keys and index names. Ignored by Elasticsearch.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithRetries enables driver-level retries of transient failures.
func WithRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRetries = n
	})
}

// WithSchema overrides the index schema. Zero fields keep their defaults.
func WithSchema(s Schema) Option {
	return optionFunc(func(c *clientConfig) {
		c.schema = s
	})
}

// WithRefresh sets the default write visibility policy. Default: RefreshWaitFor.
func WithRefresh(p RefreshPolicy) Option {
	return optionFunc(func(c *clientConfig) {
		c.refresh = p
	})
}

// WithMaxBatchSize sets the maximum number of documents per Batch call.
// Default: 500.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithMaxSearchSize sets the upper bound for Query.Size. Default: 100.
func WithMaxSearchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxSearchSize = size
	})
}

// WithRequestTimeout bounds every engine call. Default: 10s.
func WithRequestTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.requestTimeout = d
	})
}

// WithReadinessTimeout bounds the initial wait for the engine. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readyTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
