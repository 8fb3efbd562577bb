// Package groq implements the text-only model client over the
// OpenAI-compatible chat/completions surface. This path already lost
// information during OCR, so it runs at temperature 0.3 rather than 0.
package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Srimathij/lentra/internal/common"
	"github.com/Srimathij/lentra/internal/llm"
)

// Temperature is fixed for this path; see package comment.
const Temperature = 0.3

// Config for the Groq client.
type Config struct {
	APIKey  string
	BaseURL string        // default https://api.groq.com/openai/v1
	Model   string        // e.g., "llama3-70b-8192"
	Timeout time.Duration // per-call deadline
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3-70b-8192"
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

// GenerateText sends one chat-completions request with a system role
// framing and a user message, and returns the generated message content.
// Transport or envelope problems surface as MODEL_CALL_FAILURE; no retry.
func (c *Client) GenerateText(ctx context.Context, system, user string) (string, error) {
	start := time.Now()

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": Temperature,
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("groq.generate.http_error",
			"model", c.cfg.Model, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError(common.CodeModelCall, "model call failed", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", common.NewAppError(common.CodeModelCall, "model call failed", fmt.Errorf("decode groq envelope: %w", err))
	}
	if len(cc.Choices) == 0 {
		return "", common.NewAppError(common.CodeModelCall, "model call failed",
			fmt.Errorf("%w: no choices in groq response", common.ErrModelCall))
	}
	out := cc.Choices[0].Message.Content

	c.logger.Info("groq.generate.ok",
		"model", c.cfg.Model,
		"user_len", len(user),
		"output_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
