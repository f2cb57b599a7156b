package app

import (
	"github.com/gin-gonic/gin"

	"github.com/minsuoh/krxpulse/config"
	"github.com/minsuoh/krxpulse/internal/api"
	"github.com/minsuoh/krxpulse/internal/cache"
	"github.com/minsuoh/krxpulse/internal/fetch"
	"github.com/minsuoh/krxpulse/internal/marketdata"
	"github.com/minsuoh/krxpulse/internal/service"
)

// sourceOpener is an indirection used by InitializeApp; overridden in
// tests to avoid touching the real upstream.
var sourceOpener = func(cfg config.Config) marketdata.Source {
	return marketdata.NewYahooSource(
		cfg.MarketData.ChartURL,
		cfg.MarketData.FundamentalsURL,
		cfg.MarketData.FetchTimeout,
	)
}

// InitializeApp wires all application dependencies and returns a fully
// configured Gin router plus a cleanup function for graceful shutdown.
//
// Responsibilities:
//   - Builds the upstream market-data source from config.
//   - Builds the batch fetcher, result cache, and trend service.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	src := sourceOpener(cfg)

	batcher := fetch.NewBatcher(src, cfg.MarketData.FetchTimeout, cfg.MarketData.FetchParallel)
	results := cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	svc := service.NewTrendService(batcher, results)

	handler := api.NewHandler(svc, cfg.Universe)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(src.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		results.Close()
	}

	return router, cleanup, nil
}
