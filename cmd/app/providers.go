package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/mindmend/internal/domain/advice"
	"github.com/yanqian/mindmend/internal/domain/auth"
	"github.com/yanqian/mindmend/internal/domain/journal"
	"github.com/yanqian/mindmend/internal/domain/profile"
	"github.com/yanqian/mindmend/internal/domain/support"
	"github.com/yanqian/mindmend/internal/infra/avatarstore"
	"github.com/yanqian/mindmend/internal/infra/config"
	"github.com/yanqian/mindmend/internal/infra/journalrepo"
	"github.com/yanqian/mindmend/internal/infra/llm/gemini"
	"github.com/yanqian/mindmend/internal/infra/llm/openrouter"
	"github.com/yanqian/mindmend/internal/infra/llm/router"
	"github.com/yanqian/mindmend/internal/infra/llm/tokenizer"
	"github.com/yanqian/mindmend/internal/infra/moodstore"
	"github.com/yanqian/mindmend/internal/infra/profilerepo"
	"github.com/yanqian/mindmend/internal/infra/userrepo"
	httpiface "github.com/yanqian/mindmend/internal/interface/http"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		Google: auth.GoogleConfig{
			ClientID:             cfg.Auth.Google.ClientID,
			ClientSecret:         cfg.Auth.Google.ClientSecret,
			RedirectURL:          cfg.Auth.Google.RedirectURL,
			TokenEncryptionKey:   cfg.Auth.Google.TokenEncryptionKey,
			PostLoginRedirectURL: cfg.Auth.Google.PostLoginRedirectURL,
		},
	}
}

func provideAdviceConfig(cfg *config.Config) advice.Config {
	return advice.Config{
		Candidates:    cfg.Advice.Candidates,
		SystemPrompt:  cfg.Advice.SystemPrompt,
		Temperature:   cfg.LLM.Temperature,
		MaxNoteTokens: cfg.Advice.MaxNoteTokens,
	}
}

func provideProfileConfig(cfg *config.Config) profile.Config {
	return profile.Config{AvatarMaxBytes: cfg.Avatar.MaxBytes}
}

func provideHandlerOptions(cfg *config.Config) httpiface.HandlerOptions {
	return httpiface.HandlerOptions{
		PostLoginRedirectURL: cfg.Auth.Google.PostLoginRedirectURL,
		AvatarMaxBytes:       cfg.Avatar.MaxBytes,
	}
}

func provideOpenRouterClient(cfg *config.Config, logger *slog.Logger) *openrouter.Client {
	client := openrouter.NewClient(openrouter.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Referer: cfg.LLM.Referer,
		Title:   cfg.LLM.Title,
		Timeout: cfg.LLM.Timeout,
	})
	if !client.HasCredential() {
		logger.Warn("openrouter api key not set, hosted candidates will be skipped")
	}
	return client
}

func provideGeminiClient(cfg *config.Config, logger *slog.Logger) *gemini.Client {
	client, err := gemini.NewClient(context.Background(), cfg.LLM.GeminiAPIKey)
	if err != nil {
		logger.Error("failed to initialize gemini client, gemini candidates disabled", "error", err)
		return nil
	}
	if client != nil {
		logger.Info("gemini backend enabled")
	}
	return client
}

func provideLLMRouter(primary *openrouter.Client, direct *gemini.Client) *router.Router {
	return router.New(primary, direct)
}

func provideTokenizer(cfg *config.Config, logger *slog.Logger) *tokenizer.Tiktoken {
	return tokenizer.NewTiktoken(cfg.Advice.Encoding, logger)
}

// providePostgresPool returns nil when no DSN is configured or the database
// is unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func(), error) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil, noop, nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil, noop, nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil, noop, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil, noop, nil
	}
	logger.Info("postgres repositories enabled")
	return pool, pool.Close, nil
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideProfileRepository(pool *pgxpool.Pool) profile.Repository {
	if pool == nil {
		return profilerepo.NewMemoryRepository()
	}
	return profilerepo.NewPostgresRepository(pool)
}

func provideJournalRepository(pool *pgxpool.Pool) journal.Repository {
	if pool == nil {
		return journalrepo.NewMemoryRepository()
	}
	return journalrepo.NewPostgresRepository(pool)
}

// provideValkeyClient returns nil when valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, func(), error) {
	noop := func() {}
	if !cfg.Valkey.Enabled {
		return nil, noop, nil
	}
	opt, err := buildValkeyOptions(cfg.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return nil, noop, nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return nil, noop, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return nil, noop, nil
	}
	logger.Info("valkey mood store enabled", "addr", cfg.Valkey.Addr)
	return client, client.Close, nil
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideMoodStore(client valkey.Client) journal.MoodStore {
	if client == nil {
		return moodstore.NewMemoryStore()
	}
	return moodstore.NewValkeyStore(client, "moods")
}

func provideAvatarStore(cfg *config.Config, logger *slog.Logger) profile.AvatarStore {
	if !cfg.Avatar.Enabled() {
		logger.Info("avatar bucket not configured, keeping avatars in memory")
		return avatarstore.NewMemoryStore()
	}
	store, err := avatarstore.NewR2Store(cfg.Avatar.Endpoint, cfg.Avatar.AccessKey, cfg.Avatar.SecretKey, cfg.Avatar.Bucket, cfg.Avatar.Region, logger)
	if err != nil {
		logger.Error("failed to initialize avatar bucket, keeping avatars in memory", "error", err)
		return avatarstore.NewMemoryStore()
	}
	logger.Info("avatar bucket enabled", "bucket", cfg.Avatar.Bucket)
	return store
}

func provideJournalAccounts(svc auth.Service) journal.AccountDirectory { return svc }

func provideProfileAccounts(svc auth.Service) profile.AccountDirectory { return svc }

func provideAdvisor(requester advice.Requester) journal.Advisor { return requester }

func provideQuoteSource(svc support.Service) journal.QuoteSource { return svc }
