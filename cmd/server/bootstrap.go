package main

import (
	"context"
	"fmt"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/config"
	"github.com/fadilmartias/skillsync-api/internal/database"
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/fadilmartias/skillsync-api/internal/service"
	"github.com/fadilmartias/skillsync-api/internal/storage"
	"go.uber.org/zap"
)

// openStore connects to the configured database and brings the schema up to date.
func openStore() (*repository.Store, func(), error) {
	dsn := config.LoadDBConfig().DSN()
	db, err := database.Open(dsn, database.Options{Production: config.LoadAppConfig().IsProduction()})
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db, log); err != nil {
		return nil, nil, err
	}
	log.Info("database ready",
		zap.String("dialect", db.Dialector.Name()),
		zap.Bool("vector_search", database.SupportsVectorSearch(db)),
	)

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewStore(db), closeDB, nil
}

// newGateway picks Gemini, then OpenRouter, and falls back to mock mode when neither is configured.
// Embeddings are only available through Gemini.
func newGateway(ctx context.Context) *ai.Gateway {
	gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), log)
	if err == nil {
		log.Info("using gemini for AI features", zap.String("model", gemini.Model))
		return ai.NewGateway(ai.Config{Client: gemini, Embedder: gemini}, log)
	}
	log.Debug("gemini unavailable", zap.Error(err))

	if orCfg := config.LoadOpenRouterConfig(); orCfg.APIKey != "" {
		log.Info("using openrouter for AI features", zap.String("model", orCfg.Model))
		return ai.NewGateway(ai.Config{Client: service.NewOpenRouterService(orCfg)}, log)
	}

	log.Warn("no AI provider configured, responses will use mock data")
	return ai.NewGateway(ai.Config{}, log)
}

func newObjectStore(ctx context.Context) (storage.ObjectStore, error) {
	cfg := config.LoadStorageConfig()
	if !cfg.Enabled() {
		log.Info("object storage disabled, uploaded files are not kept")
		return nil, nil
	}
	files, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	log.Info("object storage enabled", zap.String("bucket", cfg.Bucket))
	return files, nil
}

// newPublisher never fails startup: an unreachable broker only disables events.
func newPublisher() events.Publisher {
	cfg := config.LoadBrokerConfig()
	if !cfg.Enabled() {
		return events.Nop{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange, log)
	if err != nil {
		log.Warn("event broker unavailable, events disabled", zap.Error(err))
		return events.Nop{}
	}
	log.Info("publishing domain events", zap.String("exchange", cfg.Exchange))
	return publisher
}
