package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Srimathij/lentra/internal/classify"
	"github.com/Srimathij/lentra/internal/common"
	"github.com/Srimathij/lentra/internal/export"
	"github.com/Srimathij/lentra/internal/imaging"
	"github.com/Srimathij/lentra/internal/llm"
	"github.com/Srimathij/lentra/internal/llm/gemini"
	"github.com/Srimathij/lentra/internal/llm/groq"
	"github.com/Srimathij/lentra/internal/ocr"
	"github.com/Srimathij/lentra/internal/pipeline"
	"github.com/Srimathij/lentra/internal/repository"
	"github.com/Srimathij/lentra/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Model clients. Only the selected provider's client is constructed;
	// Validate already guaranteed its credential is present.
	var (
		vision llm.VisionGenerator
		text   llm.TextGenerator
	)
	switch cfg.LLM.Provider {
	case common.ProviderGemini:
		vision = gemini.NewClient(gemini.Config{
			APIKey:  cfg.LLM.GeminiKey,
			Model:   cfg.LLM.GeminiModel,
			Timeout: cfg.LLM.Timeout,
		}, logger)
	case common.ProviderGroq:
		text = groq.NewClient(groq.Config{
			APIKey:  cfg.LLM.GroqKey,
			Model:   cfg.LLM.GroqModel,
			Timeout: cfg.LLM.Timeout,
		}, logger)
	}

	// Job history store. Optional: an empty path disables it along with
	// the export endpoint.
	var (
		jobs   repository.JobRepository
		expSvc server.Exporter
	)
	if cfg.Store.DBPath != "" {
		db, err := repository.Open(ctx, cfg.Store.DBPath)
		if err != nil {
			logger.Error("failed to open job store", "path", cfg.Store.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		repo := repository.NewJobRepository(db)
		jobs = repo
		expSvc = export.NewService(repo, logger)
	}

	normalizer := imaging.NewNormalizer(logger)
	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Language:      cfg.OCR.Language,
		PSM:           cfg.OCR.PSM,
		MinConfidence: cfg.OCR.MinConfidence,
	}, logger)
	classifier := classify.New(vision, text, logger)

	processor := pipeline.NewProcessor(logger, pipeline.Config{
		Provider:      cfg.LLM.Provider,
		DebugDir:      cfg.Imaging.DebugDir,
		SkipNormalize: cfg.Imaging.SkipNormalize,
	}, normalizer, extractor, vision, text, classifier, jobs)

	handler := server.NewHandler(processor, expSvc, cfg.Server.MaxUploadBytes, logger)
	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           server.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("lentrad listening", "addr", cfg.Server.HTTPAddr, "provider", cfg.LLM.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
