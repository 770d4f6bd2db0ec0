package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"lawsnap/internal/advisor"
	"lawsnap/internal/cache"
	"lawsnap/internal/config"
	"lawsnap/internal/laws"
	"lawsnap/internal/llm"
	"lawsnap/internal/logger"
	"lawsnap/internal/retry"
	"lawsnap/internal/session"
	"lawsnap/internal/store"
)

// Deps bundles the runtime dependencies shared by the web server and the CLI.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Laws     *laws.Table
	LLM      llm.Client
	Sessions session.Store
	Cache    cache.Cache
	Results  store.Store
	Lawyers  *advisor.Directory

	redis *redis.Client
}

// Build loads env, config, and shared components. A missing .env file is
// not an error.
func Build(ctx context.Context) (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	return BuildWith(ctx, cfg, log)
}

// BuildWith assembles Deps from an already loaded config.
func BuildWith(ctx context.Context, cfg config.Config, log *slog.Logger) (Deps, error) {
	table, err := laws.Load(cfg.LawsCSV)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to load laws: %w", err)
	}
	log.Info("laws loaded", "path", cfg.LawsCSV, "rows", table.Len(), "professions", len(table.Professions()))

	lawyers, err := advisor.LoadDirectory(cfg.LawyersFile)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to load lawyer directory: %w", err)
	}
	llmClient, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	deps := Deps{
		Config:  cfg,
		Log:     log,
		Laws:    table,
		LLM:     llmClient,
		Lawyers: lawyers,
	}
	if cfg.SessionStore == "redis" || cfg.CacheProvider == "redis" {
		rdb, err := connectRedis(ctx, cfg)
		if err != nil {
			return Deps{}, err
		}
		deps.redis = rdb
	}

	if deps.Sessions, err = buildSessions(cfg, deps.redis, log); err != nil {
		deps.Close()
		return Deps{}, fmt.Errorf("failed to initialize session store: %w", err)
	}
	if deps.Cache, err = buildCache(cfg, deps.redis, log); err != nil {
		deps.Close()
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	if deps.Results, err = buildResults(cfg, log); err != nil {
		deps.Close()
		return Deps{}, fmt.Errorf("failed to initialize results store: %w", err)
	}
	return deps, nil
}

// Close releases connections opened by Build.
func (d Deps) Close() {
	if d.Results != nil {
		if err := d.Results.Close(); err != nil {
			d.Log.Warn("results store close failed", "err", err)
		}
	}
	if d.Cache != nil {
		_ = d.Cache.Close()
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.Log.Warn("redis close failed", "err", err)
		}
	}
}

func connectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	err := retry.Do(ctx, 3, 500*time.Millisecond, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return rdb.Ping(pingCtx).Err()
	})
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

func buildLLM(ctx context.Context, cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "local":
		client, err := llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local LLM client: %w", err)
		}
		log.Info("using local LLM endpoint", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
		return client, nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
		model := cfg.LLMModel
		if model == config.DefaultLocalModel {
			model = ""
		}
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, model, cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		log.Info("using Gemini LLM client")
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: local, gemini)", cfg.LLMProvider)
	}
}

func buildSessions(cfg config.Config, rdb *redis.Client, log *slog.Logger) (session.Store, error) {
	switch cfg.SessionStore {
	case "memory":
		log.Info("using in-memory sessions", "ttl", cfg.SessionTTL)
		return session.NewMemoryStore(cfg.SessionTTL), nil
	case "redis":
		log.Info("using Redis sessions", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		return session.NewRedisStore(rdb, cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("invalid SESSION_STORE: %s (valid options: memory, redis)", cfg.SessionStore)
	}
}

func buildCache(cfg config.Config, rdb *redis.Client, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "noop", "":
		log.Info("insight caching disabled")
		return cache.NewNoOpCache(), nil
	case "redis":
		log.Info("using Redis insight cache", "addr", cfg.RedisAddr, "ttl_seconds", cfg.CacheTTL)
		return cache.NewRedisCache(rdb), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: noop, redis)", cfg.CacheProvider)
	}
}

func buildResults(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.ResultsStore {
	case "memory":
		log.Info("using in-memory quiz history")
		return store.NewMemoryStore(), nil
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when RESULTS_STORE=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres quiz history")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid RESULTS_STORE: %s (valid options: memory, postgres)", cfg.ResultsStore)
	}
}
