// Package classify returns one label from the closed document-type set by
// prompting a hosted model. The component itself does no fuzzy matching;
// anything outside the set collapses to Unknown.
package classify

import (
	"context"
	"log/slog"

	"github.com/Srimathij/lentra/constants"
	"github.com/Srimathij/lentra/internal/llm"
)

// Classifier holds at most one of the two generators; the orchestrator
// wires the one matching the configured provider.
type Classifier struct {
	Vision llm.VisionGenerator
	Text   llm.TextGenerator
	Logger *slog.Logger
}

func New(vision llm.VisionGenerator, text llm.TextGenerator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{Vision: vision, Text: text, Logger: logger}
}

// ClassifyImage labels a document from its image via the multimodal model.
func (c *Classifier) ClassifyImage(ctx context.Context, img []byte, mimeType string) (constants.DocumentType, error) {
	raw, err := c.Vision.GenerateVision(ctx, llm.ClassificationPrompt(), img, mimeType)
	if err != nil {
		return constants.Unknown, err
	}
	return c.coerce(raw), nil
}

// ClassifyText labels a document from its OCR text via the text-only model.
func (c *Classifier) ClassifyText(ctx context.Context, ocrText string) (constants.DocumentType, error) {
	raw, err := c.Text.GenerateText(ctx, llm.SystemPrompt, llm.ClassificationTextPrompt(ocrText))
	if err != nil {
		return constants.Unknown, err
	}
	return c.coerce(raw), nil
}

func (c *Classifier) coerce(raw string) constants.DocumentType {
	label, known := constants.Canonicalize(raw)
	if !known {
		c.Logger.Warn("classify.label_coerced", "raw", raw, "label", label)
	} else {
		c.Logger.Info("classify.ok", "label", label)
	}
	return label
}
