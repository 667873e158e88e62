package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Supported engine drivers.
const (
	DriverElasticsearch = "elasticsearch"
	DriverRedis         = "redis"
)

// Config holds the docsearch API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Engine  EngineConfig  `yaml:"engine"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Batch   BatchConfig   `yaml:"batch"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int     `yaml:"port"`
	ReadTimeoutSec  int     `yaml:"read_timeout_sec"`
	WriteTimeoutSec int     `yaml:"write_timeout_sec"`
	ShutdownSec     int     `yaml:"shutdown_timeout_sec"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps"` // 0 = unlimited
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

// EngineConfig holds search engine connection settings.
type EngineConfig struct {
	Driver            string   `yaml:"driver"` // elasticsearch, redis (default: elasticsearch)
	Addrs             []string `yaml:"addrs"`
	Username          string   `yaml:"username"`
	Password          string   `yaml:"password"`
	ReadinessTimeout  int      `yaml:"readiness_timeout_sec"`
	RequestTimeoutSec int      `yaml:"request_timeout_sec"`
	MaxRetries        int      `yaml:"max_retries"` // 0 = no retries
}

// IndexConfig holds the static index schema.
type IndexConfig struct {
	Name         string  `yaml:"name"`
	Analyzer     string  `yaml:"analyzer"`
	TitleBoost   float64 `yaml:"title_boost"`
	ContentBoost float64 `yaml:"content_boost"`
	BM25K1       float64 `yaml:"bm25_k1"`
	BM25B        float64 `yaml:"bm25_b"`
	Fuzziness    string  `yaml:"fuzziness"` // AUTO, 0, 1, 2
	Refresh      string  `yaml:"refresh"`   // true, false, wait_for
	KeyPrefix    string  `yaml:"key_prefix"`
}

// SearchConfig holds search request limits.
type SearchConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

// BatchConfig holds batch ingestion limits.
type BatchConfig struct {
	MaxSize int `yaml:"max_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands environment references in data, decodes it, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Variables already set are kept. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.Engine.Driver == "" {
		c.Engine.Driver = DriverElasticsearch
	}
	if len(c.Engine.Addrs) == 0 {
		switch c.Engine.Driver {
		case DriverElasticsearch:
			c.Engine.Addrs = []string{"http://localhost:9200"}
		case DriverRedis:
			c.Engine.Addrs = []string{"localhost:6379"}
		}
	}
	if c.Engine.ReadinessTimeout <= 0 {
		c.Engine.ReadinessTimeout = 30
	}
	if c.Engine.RequestTimeoutSec <= 0 {
		c.Engine.RequestTimeoutSec = 10
	}

	def := domain.DefaultIndexSchema()
	if c.Index.Name == "" {
		c.Index.Name = def.Name
	}
	if c.Index.Analyzer == "" {
		c.Index.Analyzer = def.Analyzer
	}
	if c.Index.TitleBoost == 0 {
		c.Index.TitleBoost = def.TitleBoost
	}
	if c.Index.ContentBoost == 0 {
		c.Index.ContentBoost = def.ContentBoost
	}
	if c.Index.BM25K1 == 0 {
		c.Index.BM25K1 = def.BM25K1
	}
	if c.Index.BM25B == 0 {
		c.Index.BM25B = def.BM25B
	}
	if c.Index.Fuzziness == "" {
		c.Index.Fuzziness = def.Fuzziness
	}
	if c.Index.Refresh == "" {
		c.Index.Refresh = string(domain.RefreshWaitFor)
	}
	if c.Index.KeyPrefix == "" {
		c.Index.KeyPrefix = "docsearch:"
	}

	if c.Search.DefaultSize <= 0 {
		c.Search.DefaultSize = 10
	}
	if c.Search.MaxSize <= 0 {
		c.Search.MaxSize = 100
	}
	if c.Batch.MaxSize <= 0 {
		c.Batch.MaxSize = 500
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimitRPS < 0 {
		return fmt.Errorf("http.rate_limit_rps must not be negative, got %g", c.HTTP.RateLimitRPS)
	}
	switch c.Engine.Driver {
	case DriverElasticsearch, DriverRedis:
	default:
		return fmt.Errorf("engine.driver must be %q or %q, got %q", DriverElasticsearch, DriverRedis, c.Engine.Driver)
	}
	if len(c.Engine.Addrs) == 0 {
		return errors.New("engine.addrs is required")
	}
	for i, a := range c.Engine.Addrs {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("engine.addrs[%d] is empty", i)
		}
	}
	if c.Engine.MaxRetries < 0 {
		return fmt.Errorf("engine.max_retries must not be negative, got %d", c.Engine.MaxRetries)
	}
	if c.Index.TitleBoost <= c.Index.ContentBoost {
		return fmt.Errorf("index.title_boost %g must exceed index.content_boost %g",
			c.Index.TitleBoost, c.Index.ContentBoost)
	}
	if c.Index.ContentBoost <= 0 {
		return fmt.Errorf("index.content_boost must be positive, got %g", c.Index.ContentBoost)
	}
	if c.Index.BM25K1 < 0 {
		return fmt.Errorf("index.bm25_k1 must not be negative, got %g", c.Index.BM25K1)
	}
	if c.Index.BM25B < 0 || c.Index.BM25B > 1 {
		return fmt.Errorf("index.bm25_b must be between 0 and 1, got %g", c.Index.BM25B)
	}
	switch strings.ToUpper(c.Index.Fuzziness) {
	case "AUTO", "0", "1", "2":
	default:
		return fmt.Errorf("index.fuzziness must be AUTO, 0, 1 or 2, got %q", c.Index.Fuzziness)
	}
	if _, err := domain.ParseRefreshPolicy(c.Index.Refresh, domain.RefreshWaitFor); err != nil {
		return fmt.Errorf("index.refresh: %w", err)
	}
	if c.Search.DefaultSize > c.Search.MaxSize {
		return fmt.Errorf("search.default_size %d exceeds search.max_size %d", c.Search.DefaultSize, c.Search.MaxSize)
	}
	return nil
}

// Schema returns the index schema described by the index section.
func (c *Config) Schema() domain.IndexSchema {
	return domain.IndexSchema{
		Name:         c.Index.Name,
		Analyzer:     c.Index.Analyzer,
		TitleBoost:   c.Index.TitleBoost,
		ContentBoost: c.Index.ContentBoost,
		BM25K1:       c.Index.BM25K1,
		BM25B:        c.Index.BM25B,
		Fuzziness:    strings.ToUpper(c.Index.Fuzziness),
	}
}

// RefreshPolicy returns the default write refresh policy. Call after Validate.
func (c *Config) RefreshPolicy() domain.RefreshPolicy {
	p, _ := domain.ParseRefreshPolicy(c.Index.Refresh, domain.RefreshWaitFor)
	return p
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
