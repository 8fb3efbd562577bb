package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Srimathij/lentra/constants"
	"github.com/Srimathij/lentra/internal/common"
	"github.com/Srimathij/lentra/internal/pipeline"
)

// Extractor is the handler's view of the processing pipeline.
type Extractor interface {
	Process(ctx context.Context, image []byte) (pipeline.Result, error)
	Classify(ctx context.Context, image []byte) (constants.DocumentType, error)
}

// Exporter produces the job-history workbook. Nil when job history is off.
type Exporter interface {
	ExportJobsXLSX(ctx context.Context, limit int) ([]byte, error)
}

type Handler struct {
	MaxUploadBytes int64
	Pipeline       Extractor
	Export         Exporter
	Logger         *slog.Logger
}

func NewHandler(p Extractor, ex Exporter, maxUploadBytes int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{MaxUploadBytes: maxUploadBytes, Pipeline: p, Export: ex, Logger: logger}
}

type base64Request struct {
	Image string `json:"image"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ExtractDocument handles POST /extract: classify the uploaded image and
// extract its fields. The image arrives either as a multipart "file" part
// or as a JSON body with a base64 "image" field.
func (h *Handler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := common.WithRequestID(r.Context(), uuid.New().String())

	image, err := h.readImage(w, r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	res, err := h.Pipeline.Process(ctx, image)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	h.Logger.Info("http.extract.ok",
		"req_id", common.RequestIDFromContext(ctx),
		"card_type", res.CardType,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, res)
}

// ClassifyDocument handles POST /classify: label only, no field extraction.
func (h *Handler) ClassifyDocument(w http.ResponseWriter, r *http.Request) {
	ctx := common.WithRequestID(r.Context(), uuid.New().String())

	image, err := h.readImage(w, r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	label, err := h.Pipeline.Classify(ctx, image)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]constants.DocumentType{"card_type": label})
}

// ExportJobs handles GET /jobs/export: the job log as an XLSX download.
func (h *Handler) ExportJobs(w http.ResponseWriter, r *http.Request) {
	if h.Export == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "job history is not enabled"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	out, err := h.Export.ExportJobsXLSX(r.Context(), limit)
	if err != nil {
		h.Logger.Error("http.export.failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Unexpected error"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extract_jobs.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readImage pulls the image bytes out of the request, multipart or JSON.
func (h *Handler) readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		return h.readMultipart(r)
	case strings.HasPrefix(ct, "application/json"):
		return h.readBase64(r)
	default:
		return nil, common.NewAppError(common.CodeNoImage, "No image provided", fmt.Errorf("unsupported content type %q", ct))
	}
}

func (h *Handler) readMultipart(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		return nil, common.NewAppError(common.CodeNoImage, "No image provided", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, common.NewAppError(common.CodeNoImage, "No image provided", err)
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		return nil, common.NewAppError(common.CodeNoImage,
			fmt.Sprintf("unsupported file type %q", filepath.Ext(header.Filename)), common.ErrInvalidInput)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, common.NewAppError(common.CodeNoImage, "No image provided", err)
	}
	return data, nil
}

func (h *Handler) readBase64(r *http.Request) ([]byte, error) {
	var req base64Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, common.NewAppError(common.CodeNoImage, "No image provided", err)
	}
	payload := strings.TrimSpace(req.Image)
	if payload == "" {
		return nil, common.NewAppError(common.CodeNoImage, "No image provided", common.ErrInvalidInput)
	}
	// Accept data URLs: keep everything after the first comma.
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, common.NewAppError(common.CodeNoImage, "image must be base64 encoded", err)
	}
	return data, nil
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	status := statusForCode(code)
	h.Logger.Warn("http.request_failed",
		"req_id", common.RequestIDFromContext(ctx),
		"code", code,
		"status", status,
		"error", err,
	)
	h.writeJSON(w, status, errorResponse{Error: common.MessageOf(err)})
}

func statusForCode(code string) int {
	switch code {
	case common.CodeNoImage, common.CodeOCRFailure, common.CodeUnknownDocument:
		return http.StatusBadRequest
	case common.CodeModelCall:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("http.write_failed", "error", err)
	}
}
