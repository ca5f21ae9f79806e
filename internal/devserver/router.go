// Package devserver assembles the development server: it proxies prompt API
// calls to the backend and serves health and contract endpoints locally.
package devserver

import (
	"net/http"

	"github.com/dimitrije/prompthub/internal/config"
	"github.com/dimitrije/prompthub/internal/handlers"
	"github.com/dimitrije/prompthub/internal/middleware"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, log *zap.Logger) (http.Handler, error) {
	proxyHandler, err := handlers.NewProxyHandler(cfg.Server.BackendURL, cfg.Server.ProxyPrefix, log)
	if err != nil {
		return nil, err
	}
	healthHandler := handlers.NewHealthHandler()
	contractHandler := handlers.NewContractHandler()

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(driftmw.Recovery())
	app.Use(driftmw.CORSWithConfig(driftmw.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		MaxAge:       86400,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))

	app.Get("/health", healthHandler.Check)

	api := app.Group(cfg.Server.ProxyPrefix)

	api.Get("/openapi.json", contractHandler.JSON)
	api.Get("/openapi.yaml", contractHandler.YAML)

	api.Get("/prompts", proxyHandler.Forward)
	api.Post("/prompts", proxyHandler.Forward)
	api.Get("/prompts/:id", proxyHandler.Forward)
	api.Put("/prompts/:id", proxyHandler.Forward)
	api.Delete("/prompts/:id", proxyHandler.Forward)

	return app, nil
}
