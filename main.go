package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/saandeepkondury/py-trends-API/client"
	"github.com/saandeepkondury/py-trends-API/config"
	"github.com/saandeepkondury/py-trends-API/metric"
	"github.com/saandeepkondury/py-trends-API/model"
	"github.com/saandeepkondury/py-trends-API/routes"
	"github.com/saandeepkondury/py-trends-API/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	sysConfigs, err := config.LoadConfigs()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	configureLogger(sysConfigs.Config)

	if sysConfigs.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if sysConfigs.Config.ApiKey == "" {
		log.Warn().Msg("API_KEY is not set, trends endpoints are unauthenticated")
	}

	trendsCfg := sysConfigs.Config.Trends
	newClient := func() service.TrendsClient {
		return client.NewGoogleTrendsClient(trendsCfg)
	}

	router := routes.SetupRouter(sysConfigs, newClient, metric.NewMetrics())

	port := sysConfigs.Config.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-sigChan
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}

func configureLogger(cfg *model.EnvConfig) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Logger()
}
