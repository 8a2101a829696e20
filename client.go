package recordex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/recordex/internal/db"
	dbRedis "github.com/kailas-cloud/recordex/internal/db/redis"
	matchrepo "github.com/kailas-cloud/recordex/internal/repository/match"
	recordrepo "github.com/kailas-cloud/recordex/internal/repository/record"
	taggingrepo "github.com/kailas-cloud/recordex/internal/repository/tagging"
	matchuc "github.com/kailas-cloud/recordex/internal/usecase/match"
	recorduc "github.com/kailas-cloud/recordex/internal/usecase/record"
	tagginguc "github.com/kailas-cloud/recordex/internal/usecase/tagging"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the recordex SDK entry point. It talks to the store directly,
// without the HTTP layer.
type Client struct {
	store    db.Store
	recSvc   *recorduc.Service
	tagSvc   *tagginguc.Service
	matchSvc *matchuc.Service
}

// New creates a recordex Client, connects to the database, and ensures the
// search indexes exist.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("recordex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("recordex: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("recordex: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	recRepo := recordrepo.New(store)
	tagRepo := taggingrepo.New(store)
	mRepo := matchrepo.New(store, cfg.maxCandidates)

	if err := recRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("recordex: ensure record index: %w", err)
	}
	if err := tagRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("recordex: ensure tagging index: %w", err)
	}

	paging := recorduc.Paging{
		DefaultPageSize: cfg.defaultPageSize,
		MaxPageSize:     cfg.maxPageSize,
	}

	return &Client{
		store:  store,
		recSvc: recorduc.New(recRepo, paging),
		tagSvc: tagginguc.New(tagRepo, recRepo, tagginguc.Paging{
			DefaultPageSize: cfg.defaultPageSize,
			MaxPageSize:     cfg.maxPageSize,
		}),
		matchSvc: matchuc.New(mRepo),
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Records returns the record management service.
func (c *Client) Records() *RecordService {
	return &RecordService{svc: c.recSvc}
}

// Taggings returns the tagging service.
func (c *Client) Taggings() *TaggingService {
	return &TaggingService{svc: c.tagSvc}
}

// Matching returns the matching service.
func (c *Client) Matching() *MatchService {
	return &MatchService{svc: c.matchSvc}
}
