package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"renderapi/internal/http/handlers"
	httpapi "renderapi/internal/http/httpapi"
	"renderapi/internal/infra"
	"renderapi/internal/metrics"
	"renderapi/internal/providers/nvidia"
	"renderapi/internal/render"
	"renderapi/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	endpoints, err := nvidia.LoadEndpoints(cfg.ProvidersFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load provider chain")
	}

	store, err := storage.NewFileStore(cfg.TempDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare temp storage")
	}

	collector := metrics.NewCollector()
	client := nvidia.NewClient(nvidia.Options{
		APIKey:         cfg.NvidiaAPIKey,
		Logger:         &logger,
		RequestTimeout: cfg.ProviderTimeout,
	})
	if !client.HasCredentials() {
		logger.Warn().Msg("NVIDIA_API_KEY is not set; provider calls will be rejected")
	}
	orchestrator, err := render.NewOrchestrator(render.Options{
		Generator: client,
		Store:     store,
		Endpoints: endpoints,
		Logger:    &logger,
		Metrics:   collector,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build render orchestrator")
	}

	app := handlers.NewApp(orchestrator, &logger)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		AllowedOrigin:  cfg.CORSAllowedOrigin,
		Logger:         logger,
		MetricsHandler: collector.Handler(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("temp_dir", store.BasePath()).
			Int("providers", len(endpoints)).
			Msg("render API listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	// In-flight renders may be waiting on a provider.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ProviderTimeout+10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
