//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/mindmend/internal/bootstrap"
	"github.com/yanqian/mindmend/internal/domain/advice"
	"github.com/yanqian/mindmend/internal/domain/auth"
	"github.com/yanqian/mindmend/internal/domain/journal"
	"github.com/yanqian/mindmend/internal/domain/profile"
	"github.com/yanqian/mindmend/internal/domain/support"
	"github.com/yanqian/mindmend/internal/infra/config"
	"github.com/yanqian/mindmend/internal/infra/llm/router"
	"github.com/yanqian/mindmend/internal/infra/llm/tokenizer"
	httpiface "github.com/yanqian/mindmend/internal/interface/http"
	"github.com/yanqian/mindmend/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideAdviceConfig,
		provideProfileConfig,
		provideHandlerOptions,
		provideOpenRouterClient,
		provideGeminiClient,
		provideLLMRouter,
		provideTokenizer,
		providePostgresPool,
		provideValkeyClient,
		provideUserRepository,
		provideProfileRepository,
		provideJournalRepository,
		provideMoodStore,
		provideAvatarStore,
		provideJournalAccounts,
		provideProfileAccounts,
		provideAdvisor,
		provideQuoteSource,
		advice.NewService,
		auth.NewService,
		profile.NewService,
		journal.NewService,
		support.NewService,
		wire.Bind(new(advice.ChatClient), new(*router.Router)),
		wire.Bind(new(advice.NoteTrimmer), new(*tokenizer.Tiktoken)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
