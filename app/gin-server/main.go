package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lisanhq/lisan/config"
	"github.com/lisanhq/lisan/internal/api/handlers"
	"github.com/lisanhq/lisan/internal/api/middleware"
	"github.com/lisanhq/lisan/internal/api/routes"
	"github.com/lisanhq/lisan/internal/logger"
	"github.com/lisanhq/lisan/internal/media"
	"github.com/lisanhq/lisan/internal/providers/asr"
	"github.com/lisanhq/lisan/internal/services"
	"github.com/lisanhq/lisan/internal/storage"
)

const appName = "lisan"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("dev").Fatalf("config error: %v", err)
	}
	log := logger.New(cfg.AppEnv)

	fetcher := media.NewFetcher("", cfg.TmpAudioDir, cfg.CookiesPath, log)
	normalizer := media.NewNormalizer("")
	store := storage.NewLocalStore(cfg.TranscriptDir)

	engines := asr.NewHolder(func() (asr.Engine, error) {
		return asr.NewWhisper(asr.WhisperConfig{
			BinaryPath:  cfg.WhisperBin,
			ModelDir:    cfg.ModelDir,
			ModelID:     cfg.ModelID,
			Device:      cfg.WhisperDevice,
			Threads:     cfg.WhisperThreads,
			DefaultLang: cfg.DefaultLang,
			Offline:     cfg.ModelOffline,
		})
	})

	// Warm-up: weights must be staged before serving, so a failed load is
	// fatal here rather than a 500 on the first request.
	log.WithField("model_dir", cfg.ModelDir).Info("warming up model")
	if _, err := engines.Engine(); err != nil {
		log.Fatalf("model warm-up failed: %v", err)
	}
	log.WithField("default_lang", cfg.DefaultLang).Info("model ready")

	svc := services.NewTranscribeService(fetcher, normalizer, engines, store, cfg.TmpAudioDir, log)

	if strings.ToLower(cfg.AppEnv) != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		App:        appName,
		Transcribe: handlers.NewTranscribeHandler(svc),
		Limit:      middleware.ConcurrencyLimit(int64(cfg.MaxConcurrency)),
	})

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
