package handlers

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/logfields"
	"git.home.luguber.info/inful/policygen/internal/render"
	"git.home.luguber.info/inful/policygen/internal/server/responses"
	"git.home.luguber.info/inful/policygen/internal/service"
	"git.home.luguber.info/inful/policygen/internal/validation"
)

const (
	msgGenerateFailed = "Error generating privacy policy. Please try again."
	msgDownloadFailed = "Error generating downloadable policy. Please try again."
)

// PolicyService is the part of service.PolicyService used by the API.
type PolicyService interface {
	Preview(ctx context.Context, req *validation.PolicyRequest) (string, error)
	Download(ctx context.Context, req *validation.PolicyRequest) (*render.Artifact, error)
	FormOptions() service.FormOptions
}

// PolicyHandlers serves the questionnaire endpoints.
type PolicyHandlers struct {
	svc          PolicyService
	errorAdapter *errors.HTTPErrorAdapter
}

// NewPolicyHandlers creates policy handlers backed by svc.
func NewPolicyHandlers(svc PolicyService, adapter *errors.HTTPErrorAdapter) *PolicyHandlers {
	if adapter == nil {
		adapter = errors.NewHTTPErrorAdapter(slog.Default())
	}
	return &PolicyHandlers{svc: svc, errorAdapter: adapter}
}

// HandleGenerate validates the posted settings and returns the policy text.
func (h *PolicyHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	text, err := h.svc.Preview(r.Context(), req)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, clientError(err, msgGenerateFailed))
		return
	}

	if err := writeJSON(w, http.StatusOK, responses.GenerateResponse{Success: true, PolicyText: text}); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, msgGenerateFailed).Build())
	}
}

// HandleDownload renders the posted settings as an attachment.
func (h *PolicyHandlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	art, err := h.svc.Download(r.Context(), req)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, clientError(err, msgDownloadFailed))
		return
	}

	etag := strconv.Quote(art.Fingerprint)
	w.Header().Set("Content-Type", art.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Body)))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(art.Body); err != nil {
		slog.Error("failed writing policy download", logfields.Format(string(art.Format)), logfields.Error(err))
	}
}

// HandleOptions lists the questionnaire choices.
func (h *PolicyHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	resp := responses.OptionsResponse{Success: true, Options: h.svc.FormOptions()}
	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, "failed to write options response").Build())
	}
}
