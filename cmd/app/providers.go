package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/dialogsum/internal/bootstrap"
	"github.com/yanqian/dialogsum/internal/domain/history"
	"github.com/yanqian/dialogsum/internal/domain/summarizer"
	"github.com/yanqian/dialogsum/internal/infra/config"
	"github.com/yanqian/dialogsum/internal/infra/device"
	"github.com/yanqian/dialogsum/internal/infra/historyrepo"
	"github.com/yanqian/dialogsum/internal/infra/inference/hfinference"
	"github.com/yanqian/dialogsum/internal/infra/inference/openaiprovider"
	"github.com/yanqian/dialogsum/internal/infra/summarycache"
	"github.com/yanqian/dialogsum/internal/infra/tokenizer"
	httpiface "github.com/yanqian/dialogsum/internal/interface/http"
	mcpiface "github.com/yanqian/dialogsum/internal/interface/mcp"
)

func provideSummaryConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{
		DefaultMaxLength: cfg.Summary.DefaultMaxLength,
		DefaultMinLength: cfg.Summary.DefaultMinLength,
		MinInputChars:    cfg.Summary.MinInputChars,
		MaxInputChars:    cfg.Summary.MaxInputChars,
		EchoChars:        cfg.Summary.EchoChars,
		Workers:          cfg.Summary.Workers,
		ContextTokens:    cfg.Summary.ContextTokens,
		CacheTTL:         cfg.Cache.TTL,
	}
}

func provideModelBackend(cfg *config.Config, logger *slog.Logger) summarizer.Backend {
	gpu, err := device.DetectGPU(cfg.Model.GPU)
	if err != nil {
		logger.Warn("gpu detection failed, assuming cpu", "error", err)
	}
	ctx := context.Background()

	switch cfg.Model.Backend {
	case "openai":
		client, err := openaiprovider.NewClient(cfg.Model.OpenAI.APIKey, cfg.Model.OpenAI.BaseURL, cfg.Model.OpenAI.Model)
		if err != nil {
			logger.Error("failed to create openai client", "error", err)
			return bootstrap.LoadBackend(ctx, nil, nil, nil, gpu, logger)
		}
		backend := bootstrap.LoadBackend(ctx, client, nil, []bootstrap.ModelCandidate{{ID: client.Model()}}, gpu, logger)
		backend.Availability.ModelInfo = "OpenAI " + client.Model()
		return backend
	default:
		client, err := hfinference.NewClient(cfg.Model.APIToken, cfg.Model.Endpoint, cfg.Model.RequestTimeout)
		if err != nil {
			logger.Error("failed to create inference client", "error", err)
			return bootstrap.LoadBackend(ctx, nil, nil, nil, gpu, logger)
		}
		var prober bootstrap.Prober
		if cfg.Model.ProbeOnStartup {
			prober = client
		}
		candidates := bootstrap.ModelCandidates(cfg.Model.Dir, cfg.Model.FineTunedID, cfg.Model.FallbackID)
		return bootstrap.LoadBackend(ctx, client, prober, candidates, gpu, logger)
	}
}

func provideSummaryCache(cfg *config.Config, logger *slog.Logger) summarizer.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Cache.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return summarycache.NewMemoryCache(cfg.Cache.MaxEntries)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return summarycache.NewMemoryCache(cfg.Cache.MaxEntries)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("summary valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
			return summarycache.NewValkeyCache(client, "dialogsum")
		}
	}
	logger.Info("summary memory cache enabled", "max_entries", cfg.Cache.MaxEntries)
	return summarycache.NewMemoryCache(cfg.Cache.MaxEntries)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) history.Repository {
	fallback := historyrepo.NewMemoryRepository(cfg.History.Capacity)
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	if err := historyrepo.Migrate(pool, logger); err != nil {
		logger.Error("history migrations failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return historyrepo.NewPostgresRepository(pool)
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) summarizer.TokenCounter {
	counter, err := tokenizer.NewCounter(cfg.Summary.TokenEncoding)
	if err != nil {
		logger.Warn("token estimation disabled", "error", err)
		return nil
	}
	return counter
}

func provideModelDir(cfg *config.Config) httpiface.ModelDir {
	return httpiface.ModelDir(cfg.Model.Dir)
}

func provideMCPHandler(cfg *config.Config, svc summarizer.Service, logger *slog.Logger) http.Handler {
	if !cfg.MCP.Enabled {
		return nil
	}
	logger.Info("mcp endpoint enabled", "path", cfg.MCP.Path)
	return mcpiface.NewServer(svc, logger).Handler()
}
