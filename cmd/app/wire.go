//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/dialogsum/internal/bootstrap"
	"github.com/yanqian/dialogsum/internal/domain/history"
	"github.com/yanqian/dialogsum/internal/domain/summarizer"
	"github.com/yanqian/dialogsum/internal/infra/config"
	httpiface "github.com/yanqian/dialogsum/internal/interface/http"
	"github.com/yanqian/dialogsum/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummaryConfig,
		provideModelBackend,
		provideSummaryCache,
		provideHistoryRepository,
		provideTokenCounter,
		provideModelDir,
		provideMCPHandler,
		history.NewService,
		summarizer.NewService,
		wire.Bind(new(summarizer.Recorder), new(*history.Service)),
		wire.Bind(new(httpiface.HistoryReader), new(*history.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
