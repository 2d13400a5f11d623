package jobs

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/laurel/pkg/handlers"
	"github.com/JaimeStill/laurel/pkg/routes"
)

// Handler provides HTTP endpoints for evaluation submission and job tracking.
type Handler struct {
	mgr           *Manager
	logger        *slog.Logger
	maxUploadSize int64
}

// SubmitRequest is the JSON body for text-only submissions.
type SubmitRequest struct {
	EssayText      string `json:"essay_text"`
	DisclosureText string `json:"disclosure_text"`
	Filename       string `json:"filename"`
}

// SweepResponse reports the result of an explicit sweep.
type SweepResponse struct {
	PurgedCount int `json:"purged_count"`
}

// NewHandler creates a Handler with the given manager, logger, and upload size limit.
func NewHandler(mgr *Manager, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		mgr:           mgr,
		logger:        logger.With("handler", "evaluations"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for evaluation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/evaluations",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Submit},
			{Method: "GET", Pattern: "/jobs/{id}", Handler: h.Poll},
			{Method: "POST", Pattern: "/jobs/sweep", Handler: h.Sweep},
			{Method: "GET", Pattern: "/jobs/stats", Handler: h.Stats},
		},
	}
}

// Submit accepts an essay for evaluation as either a JSON body or a
// multipart form with an optional source document. Cache hits return
// the stored evaluation immediately with 200; otherwise the queued job
// is returned with 202.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.parseSubmission(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.mgr.Submit(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	status := http.StatusAccepted
	if result.CacheHit {
		status = http.StatusOK
	}

	handlers.RespondJSON(w, status, result)
}

// Poll returns the current snapshot of a job by its UUID path parameter.
func (h *Handler) Poll(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrJobNotFound)
		return
	}

	job, err := h.mgr.Poll(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, job)
}

// Sweep removes finished jobs older than the retention window.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{PurgedCount: h.mgr.Sweep()})
}

// Stats returns counts of tracked jobs by status.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.mgr.Stats())
}

func (h *Handler) parseSubmission(r *http.Request) (SubmitCommand, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.parseMultipart(r)
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return SubmitCommand{}, ErrInvalidInput
	}

	return SubmitCommand{
		EssayText:      req.EssayText,
		DisclosureText: req.DisclosureText,
		Filename:       req.Filename,
	}, nil
}

func (h *Handler) parseMultipart(r *http.Request) (SubmitCommand, error) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return SubmitCommand{}, ErrInvalidInput
	}

	cmd := SubmitCommand{
		EssayText:      r.FormValue("essay_text"),
		DisclosureText: r.FormValue("disclosure_text"),
	}

	file, header, err := r.FormFile("source")
	if err != nil {
		if err == http.ErrMissingFile {
			return cmd, nil
		}
		return SubmitCommand{}, ErrInvalidInput
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return SubmitCommand{}, ErrInvalidInput
	}

	cmd.Filename = header.Filename
	cmd.SourceContentType = detectContentType(header.Header.Get("Content-Type"), data)
	cmd.SourceData = data
	return cmd, nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
