package docsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/docsearch/internal/db"
	dbES "github.com/kailas-cloud/docsearch/internal/db/elasticsearch"
	dbRedis "github.com/kailas-cloud/docsearch/internal/db/redis"
	"github.com/kailas-cloud/docsearch/internal/domain"
	dombatch "github.com/kailas-cloud/docsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/request"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/repository"
	documentrepo "github.com/kailas-cloud/docsearch/internal/repository/document"
	indexrepo "github.com/kailas-cloud/docsearch/internal/repository/index"
	searchrepo "github.com/kailas-cloud/docsearch/internal/repository/search"
	batchuc "github.com/kailas-cloud/docsearch/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docsearch/internal/usecase/index"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
)

const (
	driverElasticsearch = "elasticsearch"
	driverRedis         = "redis"

	defaultReadinessTimeout = 10 * time.Second
	defaultRequestTimeout   = 10 * time.Second
)

// Use-case contracts, narrowed so tests can substitute them.
type documentUseCase interface {
	Add(ctx context.Context, doc *domdoc.Document, refresh domain.RefreshPolicy) (domdoc.WriteResult, error)
	Delete(ctx context.Context, id string, refresh domain.RefreshPolicy) error
	Count(ctx context.Context) (int, error)
}

type batchUseCase interface {
	Upsert(ctx context.Context, items []batchuc.Item, refresh domain.RefreshPolicy) ([]dombatch.Result, error)
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

type indexUseCase interface {
	Stats(ctx context.Context) (domain.IndexStats, error)
	Analyze(ctx context.Context, text string) (domain.Analysis, error)
	Refresh(ctx context.Context) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// engine is the part of db.Store the client holds on to directly.
type engine interface {
	db.Pinger
	Close()
}

// Client is the docsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	store         engine
	docSvc        documentUseCase
	batchSvc      batchUseCase
	searchSvc     searchUseCase
	indexSvc      indexUseCase
	healthSvc     healthUseCase
	maxSearchSize int
	obs           *observer
}

// New creates a Client, waits for the engine and creates the index when missing.
// The provided context bounds the readiness wait and the index check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docsearch: engine address required (use WithElasticsearch or WithRedis)")
	}

	schema := cfg.indexSchema()
	if err := schema.ValidateBoosts(); err != nil {
		return nil, fmt.Errorf("docsearch: schema: %w", err)
	}

	engine, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	readyTimeout := cfg.readyTimeout
	if readyTimeout <= 0 {
		readyTimeout = defaultReadinessTimeout
	}
	if err := engine.WaitForReady(ctx, readyTimeout); err != nil {
		engine.Close()
		return nil, fmt.Errorf("docsearch: engine not ready: %w", err)
	}

	reqTimeout := cfg.requestTimeout
	if reqTimeout <= 0 {
		reqTimeout = defaultRequestTimeout
	}
	store := db.NewInstrumentedStore(engine, reqTimeout)

	idxRepo := indexrepo.New(store, schema)
	if _, err := idxRepo.Ensure(ctx); err != nil {
		engine.Close()
		return nil, fmt.Errorf("docsearch: ensure index %q: %w", schema.Name, err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg, schema.Name)
	if err != nil {
		engine.Close()
		return nil, err
	}

	return wireClient(store, idxRepo, schema, cfg, obs), nil
}

// indexSchema merges the configured schema over the defaults.
func (c *clientConfig) indexSchema() domain.IndexSchema {
	s := domain.DefaultIndexSchema()
	if c.schema.Name != "" {
		s.Name = c.schema.Name
	}
	if c.schema.Analyzer != "" {
		s.Analyzer = c.schema.Analyzer
	}
	if c.schema.TitleBoost > 0 {
		s.TitleBoost = c.schema.TitleBoost
	}
	if c.schema.ContentBoost > 0 {
		s.ContentBoost = c.schema.ContentBoost
	}
	if c.schema.BM25K1 > 0 {
		s.BM25K1 = c.schema.BM25K1
	}
	if c.schema.BM25B > 0 {
		s.BM25B = c.schema.BM25B
	}
	if c.schema.Fuzziness != "" {
		s.Fuzziness = c.schema.Fuzziness
	}
	return s
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverElasticsearch:
		s, err := dbES.NewStore(dbES.Config{
			Addrs:      cfg.addrs,
			Username:   cfg.username,
			Password:   cfg.password,
			MaxRetries: cfg.maxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("docsearch: create elasticsearch store: %w", err)
		}
		return s, nil
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Username:   cfg.username,
			Password:   cfg.password,
			KeyPrefix:  cfg.keyPrefix,
			MaxRetries: cfg.maxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("docsearch: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("docsearch: unknown driver %q", cfg.driver)
	}
}

func wireClient(
	store db.Store, idxRepo *indexrepo.Repo, schema domain.IndexSchema, cfg *clientConfig, obs *observer,
) *Client {
	docRepo := documentrepo.New(store, schema.Name)
	searchRepo := searchrepo.New(store, schema)

	docSvc := documentuc.New(docRepo).WithRefresh(cfg.refresh)
	batchSvc := batchuc.New(docRepo).WithMaxBatchSize(cfg.maxBatchSize).WithRefresh(cfg.refresh)

	maxSearch := cfg.maxSearchSize
	if maxSearch <= 0 {
		maxSearch = request.MaxSize
	}

	return &Client{
		store:         store,
		docSvc:        docSvc,
		batchSvc:      batchSvc,
		searchSvc:     searchuc.New(searchRepo),
		indexSvc:      indexuc.New(idxRepo),
		healthSvc:     healthuc.New(store, store.Driver()),
		maxSearchSize: maxSearch,
		obs:           obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks engine connectivity. Failures match ErrUpstreamUnavailable.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", repository.Translate(err))
	}
	return nil
}

// Documents returns the document service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{docSvc: c.docSvc, batchSvc: c.batchSvc, obs: c.obs}
}

// Index returns the index inspection service.
func (c *Client) Index() *IndexService {
	return &IndexService{svc: c.indexSvc, obs: c.obs}
}
