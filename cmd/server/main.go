package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vrmchat/avatar-gateway/internal/config"
	"github.com/vrmchat/avatar-gateway/internal/dialogue"
	"github.com/vrmchat/avatar-gateway/internal/llm"
	"github.com/vrmchat/avatar-gateway/internal/observability"
	"github.com/vrmchat/avatar-gateway/internal/session"
	"github.com/vrmchat/avatar-gateway/internal/tts"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("port", cfg.Port).
		Str("ollama_url", cfg.OllamaURL).
		Str("ollama_model", cfg.OllamaModel).
		Str("tts_voice", cfg.TTSVoice).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("Avatar Gateway Service starting")

	// Wire the pipeline collaborators
	catalog := dialogue.DefaultCatalog()
	persona := dialogue.BuildPersona(cfg.AvatarName, catalog)
	generator := llm.NewClient(cfg)
	ttsClient := tts.NewClient(cfg)
	speaker := tts.NewSpeaker(ttsClient, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	manager := session.NewManager(cfg, catalog, persona, generator, speaker, rng, logger)

	mux := http.NewServeMux()

	// Avatar client WebSocket endpoint
	mux.HandleFunc("/ws", manager.HandleWS())

	// Health check endpoint
	mux.HandleFunc("/health", observability.HealthCheckHandler())

	// Readiness probes the generation and synthesis backends
	mux.HandleFunc("/ready", observability.ReadinessHandler(map[string]observability.HealthCheckFunc{
		"ollama": func(ctx context.Context) error {
			return generator.Available(ctx)
		},
		"tts": func(ctx context.Context) error {
			_, err := ttsClient.Synthesize(ctx, "ready")
			return err
		},
	}))

	// Metrics endpoint (Prometheus)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Static avatar page and model assets
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("endpoint", fmt.Sprintf("ws://localhost:%s/ws", cfg.Port)).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
