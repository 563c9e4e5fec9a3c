package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docchat/internal/config"
	"docchat/internal/embedding"
	"docchat/internal/llmservice"
	"docchat/internal/segmenter"
	"docchat/internal/session"
	"docchat/internal/web"
)

const configFilePath = "./configs/config.yaml"

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	seg := segmenter.NewPDF(segmenter.Config{
		MaxCharacters:      cfg.Segmenter.MaxCharacters,
		NewAfterNChars:     cfg.Segmenter.NewAfterNChars,
		CombineUnderNChars: cfg.Segmenter.CombineUnderNChars,
	})
	emb := embedding.NewGemini(cfg.Embedding.BaseURL, cfg.Embedding.Model, cfg.GeminiAPIKey)
	gen, err := llmservice.NewClient(cfg.Inference.BaseURL, cfg.GeminiAPIKey, cfg.Inference.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing generator")
	}

	manager := session.NewManager(seg, emb, gen)
	srv := web.NewServer(manager, log.Logger, cfg.Server.MaxUploadBytes)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Server.Port).Msg("Starting docchat")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server error")
	}
}
