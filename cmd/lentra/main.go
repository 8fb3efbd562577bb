package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Srimathij/lentra/internal/classify"
	"github.com/Srimathij/lentra/internal/common"
	"github.com/Srimathij/lentra/internal/imaging"
	"github.com/Srimathij/lentra/internal/llm"
	"github.com/Srimathij/lentra/internal/llm/gemini"
	"github.com/Srimathij/lentra/internal/llm/groq"
	"github.com/Srimathij/lentra/internal/ocr"
	"github.com/Srimathij/lentra/internal/pipeline"
)

// lentra runs one image through the extraction pipeline and prints the
// result as JSON. Useful for trying prompts and debugging preprocessing
// without a running server.
func main() {
	var (
		classifyOnly = flag.Bool("classify-only", false, "print the document label and stop")
		quiet        = flag.Bool("quiet", false, "suppress log output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "lentra [flags] <image-path>")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	image, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Error("read image", "path", flag.Arg(0), "error", err)
		os.Exit(1)
	}

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

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Language:      cfg.OCR.Language,
		PSM:           cfg.OCR.PSM,
		MinConfidence: cfg.OCR.MinConfidence,
	}, logger)

	processor := pipeline.NewProcessor(logger, pipeline.Config{
		Provider:      cfg.LLM.Provider,
		DebugDir:      cfg.Imaging.DebugDir,
		SkipNormalize: cfg.Imaging.SkipNormalize,
	}, imaging.NewNormalizer(logger), extractor, vision, text, classify.New(vision, text, logger), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *classifyOnly {
		label, err := processor.Classify(ctx, image)
		if err != nil {
			logger.Error("classification failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(label)
		return
	}

	res, err := processor.Process(ctx, image)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
