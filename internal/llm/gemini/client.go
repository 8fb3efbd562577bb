// Package gemini implements the multimodal model client. Requests carry
// the instruction text plus raw image bytes; decoding is deterministic
// (temperature 0) so identical inputs yield identical extractions.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Srimathij/lentra/internal/common"
	"github.com/Srimathij/lentra/internal/llm"
)

// Config for the Gemini client.
type Config struct {
	APIKey  string
	BaseURL string        // default https://generativelanguage.googleapis.com/v1beta
	Model   string        // e.g., "gemini-2.0-flash"
	Timeout time.Duration // per-call deadline
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// GenerateVision sends one generateContent request carrying the image and
// the instruction text and returns the model's raw text output. Any
// transport or envelope problem surfaces as a MODEL_CALL_FAILURE AppError;
// there is no retry.
func (c *Client) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	start := time.Now()

	body := map[string]any{
		"contents": []map[string]any{{
			"parts": []map[string]any{
				{"inline_data": map[string]any{
					"mime_type": mimeType,
					"data":      base64.StdEncoding.EncodeToString(image),
				}},
				{"text": prompt},
			},
		}},
		"generationConfig": map[string]any{
			"temperature": 0,
		},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("gemini.generate.http_error",
			"model", c.cfg.Model, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError(common.CodeModelCall, "model call failed", err)
	}

	var gr struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", common.NewAppError(common.CodeModelCall, "model call failed", fmt.Errorf("decode gemini envelope: %w", err))
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", common.NewAppError(common.CodeModelCall, "model call failed",
			fmt.Errorf("%w: no candidates in gemini response", common.ErrModelCall))
	}

	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	out := b.String()

	c.logger.Info("gemini.generate.ok",
		"model", c.cfg.Model,
		"prompt_len", len(prompt),
		"image_bytes", len(image),
		"output_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
