package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/auth"
	"github.com/mohit-756/interview-bot/internal/cache"
	"github.com/mohit-756/interview-bot/internal/config"
	"github.com/mohit-756/interview-bot/internal/extraction"
	"github.com/mohit-756/interview-bot/internal/ingestion"
	"github.com/mohit-756/interview-bot/internal/llm"
	"github.com/mohit-756/interview-bot/internal/notify"
	"github.com/mohit-756/interview-bot/internal/scoring"
	"github.com/mohit-756/interview-bot/internal/storage"
	"github.com/mohit-756/interview-bot/internal/workflow"
)

// components holds everything a command may need. Close releases them.
type components struct {
	db        *storage.DB
	extractor *extraction.Extractor
	tokens    *auth.JWTMaker
	svc       *workflow.Service

	closers []func() error
}

func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// openStore connects to PostgreSQL and applies the schema
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage.DB, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database.url is required")
	}
	db, err := storage.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// newExtractor builds the model-backed extractor. A provider client that
// cannot be built leaves the extractor on its keyword fallback, and a Redis
// outage at startup disables the cache; neither fails the command.
func newExtractor(ctx context.Context, cfg *config.Config, log *zap.Logger) (*extraction.Extractor, []func() error) {
	var (
		gen     llm.Generator
		closers []func() error
	)
	client, err := llm.New(ctx, cfg.LLM, log)
	if err != nil {
		log.Warn("llm client unavailable, using keyword extraction",
			zap.String("provider", cfg.LLM.Provider),
			zap.Error(err),
		)
	} else {
		gen = client
		closers = append(closers, client.Close)
		log.Info("llm client ready",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model),
		)
	}

	opts := []extraction.Option{extraction.WithTimeout(cfg.LLM.Timeout)}
	if gen != nil && cfg.Redis.Addr != "" {
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, rdb); err != nil {
			log.Warn("taxonomy cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			rdb.Close()
		} else {
			opts = append(opts, extraction.WithCache(extraction.NewRedisCache(rdb, cfg.Redis.TTL, log)))
			closers = append(closers, rdb.Close)
		}
	}

	return extraction.NewExtractor(gen, log, opts...), closers
}

func newScorer(cfg *config.Config, log *zap.Logger) *scoring.Scorer {
	return scoring.NewScorer(scoring.Options{
		MinDomainScoreFresher: cfg.Scoring.MinDomainScoreFresher,
		StrictFresherGate:     cfg.Scoring.StrictFresherGate,
	}, log)
}

// build wires the database, extractor, mailer and workflow service.
// Tokens stay nil when no JWT secret is configured.
func build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*components, error) {
	c := &components{}

	db, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	c.db = db
	c.closers = append(c.closers, db.Close)

	extractor, closers := newExtractor(ctx, cfg, log)
	c.extractor = extractor
	c.closers = append(c.closers, closers...)

	if cfg.Auth.JWTSecret != "" {
		tokens, err := auth.NewJWTMaker(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.tokens = tokens
	}

	c.svc = workflow.New(workflow.Deps{
		Store:     db,
		Extractor: extractor,
		Scorer:    newScorer(cfg, log),
		Resumes:   ingestion.NewTextExtractor(log),
		Files:     ingestion.NewFileHandler(cfg.UploadsDir),
		Mailer:    notify.New(ctx, cfg.Mail, log),
		Tokens:    c.tokens,
		BaseURL:   cfg.Server.BaseURL,
		Log:       log,
	})
	return c, nil
}
