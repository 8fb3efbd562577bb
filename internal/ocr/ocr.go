package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds OCR engine settings.
type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // default "eng"
	// PSM 1 runs automatic page segmentation with orientation detection,
	// the closest analogue to angle classification in detector-style OCR.
	PSM int

	// MinConfidence drops detected lines whose mean word confidence falls
	// below this floor (0..1). Default 0.5.
	MinConfidence float32
}

// Line is one detected text line with its mean word confidence.
type Line struct {
	Text       string
	Confidence float32
}

// Result is the outcome of a single OCR pass.
type Result struct {
	// Text is every surviving line's transcription, in detector-reported
	// order, joined with single spaces and with whitespace runs collapsed.
	Text     string
	Lines    []Line
	Dropped  int // lines rejected by the confidence floor
	Duration time.Duration
}

// Extractor converts a normalized image into a flat text string by shelling
// out to the OCR binary.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 1
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 0.5
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// ExtractText runs OCR over an encoded image. The image is written to a
// temporary file that is removed on every exit path. An empty result is not
// an error here; the caller treats it as a terminal failure.
func (e *Extractor) ExtractText(ctx context.Context, img []byte) (Result, error) {
	start := time.Now()

	tmp, err := os.CreateTemp("", "lentra-ocr-*.png")
	if err != nil {
		return Result{}, fmt.Errorf("create temp image: %w", err)
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()
	if _, err := tmp.Write(img); err != nil {
		_ = tmp.Close()
		return Result{}, fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("close temp image: %w", err)
	}

	args := []string{path, "stdout",
		"-l", e.cfg.Language,
		"--psm", strconv.Itoa(e.cfg.PSM),
		"tsv",
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return Result{}, fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(errb), 512))
	}

	lines, dropped := parseTSV(string(out), e.cfg.MinConfidence)
	texts := make([]string, 0, len(lines))
	for _, ln := range lines {
		texts = append(texts, ln.Text)
	}
	res := Result{
		Text:     CollapseWhitespace(strings.Join(texts, " ")),
		Lines:    lines,
		Dropped:  dropped,
		Duration: time.Since(start),
	}

	e.logger.Info("ocr.extract.done",
		"lines", len(res.Lines),
		"dropped", res.Dropped,
		"bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// parseTSV turns tesseract TSV output into per-line transcriptions with
// mean word confidence, dropping lines below the floor. The conf column is
// -1 for structural rows; word rows carry 0..100.
func parseTSV(tsv string, minConfidence float32) ([]Line, int) {
	type acc struct {
		words []string
		sum   float64
		n     int
	}
	var (
		order []string
		byKey = map[string]*acc{}
	)

	rows := strings.Split(tsv, "\n")
	for i, row := range rows {
		if i == 0 || strings.TrimSpace(row) == "" {
			continue // header or blank
		}
		cols := strings.Split(row, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr, word := cols[10], strings.TrimSpace(cols[11])
		if word == "" || confStr == "-1" {
			continue
		}
		conf, err := strconv.ParseFloat(confStr, 64)
		if err != nil {
			continue
		}
		// block/paragraph/line triple identifies the detected line
		key := cols[2] + "/" + cols[3] + "/" + cols[4]
		a, ok := byKey[key]
		if !ok {
			a = &acc{}
			byKey[key] = a
			order = append(order, key)
		}
		a.words = append(a.words, word)
		a.sum += conf
		a.n++
	}

	var (
		lines   []Line
		dropped int
	)
	for _, key := range order {
		a := byKey[key]
		mean := float32(a.sum/float64(a.n)) / 100.0
		if mean < minConfidence {
			dropped++
			continue
		}
		lines = append(lines, Line{
			Text:       strings.Join(a.words, " "),
			Confidence: mean,
		})
	}
	return lines, dropped
}

// CollapseWhitespace reduces every whitespace/newline run to a single space
// and trims the ends, matching what the prompt templates expect.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
