// Package pipeline coordinates one extraction request: normalize, OCR when
// the text-only provider is selected, classify, then dispatch to the field
// extractor matching the label. Four terminal branches, no loops, no
// retries, no state shared across calls.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Srimathij/lentra/constants"
	"github.com/Srimathij/lentra/internal/classify"
	"github.com/Srimathij/lentra/internal/common"
	"github.com/Srimathij/lentra/internal/imaging"
	"github.com/Srimathij/lentra/internal/llm"
	"github.com/Srimathij/lentra/internal/ocr"
	"github.com/Srimathij/lentra/internal/repository"
)

// Normalizer prepares an image for OCR; best-effort by contract.
type Normalizer interface {
	Normalize(input []byte) []byte
}

// TextExtractor converts an encoded image into flat text.
type TextExtractor interface {
	ExtractText(ctx context.Context, img []byte) (ocr.Result, error)
}

// Result is the tagged outcome of one extraction request. Data holds the
// typed field set for the classified document, or the decoder's failure
// object when the model's output was not parsable.
type Result struct {
	CardType constants.DocumentType `json:"card_type"`
	Data     any                    `json:"data"`
}

// Config holds behavior flags for the processor.
type Config struct {
	// Provider selects the extraction path: gemini sends the image
	// directly to the multimodal model, groq runs OCR and sends text.
	Provider string
	// DebugDir receives input/normalized snapshots; empty disables.
	DebugDir string
	// SkipNormalize bypasses image preprocessing.
	SkipNormalize bool
}

// Processor owns no state across calls; every invocation is independent
// and idempotent given identical image bytes and model responses.
type Processor struct {
	Logger     *slog.Logger
	Cfg        Config
	Normalizer Normalizer
	OCR        TextExtractor
	Vision     llm.VisionGenerator
	Text       llm.TextGenerator
	Classifier *classify.Classifier
	Jobs       repository.JobRepository // optional; nil disables job history
}

func NewProcessor(logger *slog.Logger, cfg Config, n Normalizer, tx TextExtractor, vision llm.VisionGenerator, text llm.TextGenerator, cls *classify.Classifier, jobs repository.JobRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Provider == "" {
		cfg.Provider = common.ProviderGemini
	}
	return &Processor{
		Logger:     logger,
		Cfg:        cfg,
		Normalizer: n,
		OCR:        tx,
		Vision:     vision,
		Text:       text,
		Classifier: cls,
		Jobs:       jobs,
	}
}

// Process runs the full classify-then-extract flow for one image.
func (p *Processor) Process(ctx context.Context, image []byte) (res Result, err error) {
	jobID := uuid.New()
	start := time.Now()
	p.recordStart(ctx, jobID)
	defer func() {
		// Orchestrator boundary: an unexpected panic anywhere below is
		// converted to a generic error payload; the serving process must
		// never crash on a request.
		if r := recover(); r != nil {
			p.Logger.Error("processor.panic", "job_id", jobID, "panic", r)
			res, err = Result{}, common.NewAppError(common.CodeInternal, "Unexpected error",
				fmt.Errorf("%w: panic: %v", common.ErrInternal, r))
		}
		p.recordFinish(ctx, jobID, res, err, time.Since(start))
	}()

	if len(image) == 0 {
		return Result{}, common.NewAppError(common.CodeNoImage, "No image provided", common.ErrInvalidInput)
	}

	imaging.SaveSnapshot(p.Logger, p.Cfg.DebugDir, "input_image", image)

	working, ocrText, err := p.prepare(ctx, image)
	if err != nil {
		return Result{}, err
	}

	label, err := p.classify(ctx, working, ocrText)
	if err != nil {
		return Result{}, err
	}
	if label == constants.Unknown {
		return Result{}, common.NewAppError(common.CodeUnknownDocument, "Invalid Card Type", nil)
	}

	data, err := p.extract(ctx, label, working, ocrText)
	if err != nil {
		return Result{}, err
	}

	p.Logger.Info("processor.ok", "job_id", jobID, "card_type", label,
		"elapsed_ms", time.Since(start).Milliseconds())
	return Result{CardType: label, Data: data}, nil
}

// Classify runs only the preprocessing and classification stages.
func (p *Processor) Classify(ctx context.Context, image []byte) (constants.DocumentType, error) {
	if len(image) == 0 {
		return constants.Unknown, common.NewAppError(common.CodeNoImage, "No image provided", common.ErrInvalidInput)
	}
	working, ocrText, err := p.prepare(ctx, image)
	if err != nil {
		return constants.Unknown, err
	}
	return p.classify(ctx, working, ocrText)
}

// prepare normalizes the image and, on the text path, runs OCR. Empty OCR
// output is terminal: reported, never retried.
func (p *Processor) prepare(ctx context.Context, image []byte) ([]byte, string, error) {
	working := image
	if !p.Cfg.SkipNormalize && p.Normalizer != nil {
		working = p.Normalizer.Normalize(image)
		imaging.SaveSnapshot(p.Logger, p.Cfg.DebugDir, "enhanced_image", working)
	}

	if p.Cfg.Provider != common.ProviderGroq {
		return working, "", nil
	}

	r, err := p.OCR.ExtractText(ctx, working)
	if err != nil {
		return nil, "", common.NewAppError(common.CodeOCRFailure, "OCR returned no readable text. Please check image quality.", err)
	}
	if r.Text == "" {
		return nil, "", common.NewAppError(common.CodeOCRFailure, "OCR returned no readable text. Please check image quality.", common.ErrOCREmpty)
	}
	return working, r.Text, nil
}

func (p *Processor) classify(ctx context.Context, working []byte, ocrText string) (constants.DocumentType, error) {
	if p.Cfg.Provider == common.ProviderGroq {
		return p.Classifier.ClassifyText(ctx, ocrText)
	}
	return p.Classifier.ClassifyImage(ctx, working, http.DetectContentType(working))
}

func (p *Processor) extract(ctx context.Context, label constants.DocumentType, working []byte, ocrText string) (any, error) {
	switch label {
	case constants.AadhaarCard:
		return extractAs[llm.AadhaarFields](p, ctx, label, working, ocrText)
	case constants.PANCard:
		return extractAs[llm.PANFields](p, ctx, label, working, ocrText)
	case constants.UdyamCertificate:
		return extractAs[llm.UdyamFields](p, ctx, label, working, ocrText)
	default:
		return nil, common.NewAppError(common.CodeUnknownDocument, "Invalid Card Type", nil)
	}
}

// extractAs prompts the configured provider for one document type and
// decodes the reply into its typed field set. A decode failure comes back
// as data, not as an error: the classification already succeeded, and card
// type and field data are independently fallible.
func extractAs[T any](p *Processor, ctx context.Context, label constants.DocumentType, working []byte, ocrText string) (any, error) {
	var (
		raw string
		err error
	)
	if p.Cfg.Provider == common.ProviderGroq {
		prompt, ok := llm.ExtractionTextPrompt(label, ocrText)
		if !ok {
			return nil, common.NewAppError(common.CodeUnknownDocument, "Invalid Card Type", nil)
		}
		raw, err = p.Text.GenerateText(ctx, llm.SystemPrompt, prompt)
	} else {
		prompt, ok := llm.ExtractionPrompt(label)
		if !ok {
			return nil, common.NewAppError(common.CodeUnknownDocument, "Invalid Card Type", nil)
		}
		raw, err = p.Vision.GenerateVision(ctx, prompt, working, http.DetectContentType(working))
	}
	if err != nil {
		return nil, err
	}

	var out T
	if pf := llm.DecodeInto(raw, &out); pf != nil {
		p.Logger.Warn("processor.extract.parse_failed",
			"code", common.CodeResponseParse, "card_type", label, "details", pf.Details)
		return pf, nil
	}
	return out, nil
}

func (p *Processor) recordStart(ctx context.Context, jobID uuid.UUID) {
	if p.Jobs == nil {
		return
	}
	if err := p.Jobs.Start(ctx, jobID, time.Now()); err != nil {
		p.Logger.Warn("processor.job_start_failed", "job_id", jobID, "error", err)
	}
}

func (p *Processor) recordFinish(ctx context.Context, jobID uuid.UUID, res Result, err error, dur time.Duration) {
	if p.Jobs == nil {
		return
	}
	status := constants.JobStatusOK
	errMsg := ""
	switch {
	case err == nil:
		// Parse failures travel as data with a successful result; the job
		// log still notes them under their taxonomy code.
		if pf, ok := res.Data.(*llm.ParseFailure); ok {
			errMsg = common.CodeResponseParse + ": " + pf.Message
		}
	case common.CodeOf(err) == common.CodeUnknownDocument:
		status, errMsg = constants.JobStatusRejected, common.MessageOf(err)
	default:
		status, errMsg = constants.JobStatusFailed, common.MessageOf(err)
	}
	if ferr := p.Jobs.Finish(ctx, jobID, string(res.CardType), status, dur, errMsg); ferr != nil {
		p.Logger.Warn("processor.job_finish_failed", "job_id", jobID, "error", ferr)
	}
}
