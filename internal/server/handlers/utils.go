package handlers

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/logfields"
	"git.home.luguber.info/inful/policygen/internal/validation"
)

// writeJSON serializes the provided value to JSON and writes it with the given
// status code. Encoding is performed into an intermediate buffer so that we
// don't send partial responses if serialization fails.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed writing JSON response body", logfields.Error(err))
		return err
	}
	return nil
}

// writeJSONPretty pretty prints when ?pretty=1 or ?pretty=true is given.
func writeJSONPretty(w http.ResponseWriter, r *http.Request, status int, v any) error {
	if p := r.URL.Query().Get("pretty"); p == "1" || p == "true" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			if _, werr := w.Write(append(b, '\n')); werr != nil {
				slog.Error("failed writing pretty JSON", logfields.Error(werr))
				return werr
			}
			return nil
		}
		slog.Warn("pretty JSON marshal failed, falling back to standard encode", logfields.Error(err))
	}
	return writeJSON(w, status, v)
}

// decodeRequest reads a JSON policy request. Unknown fields are ignored, as
// the questionnaire posts extra UI state.
func decodeRequest(r *http.Request) (*validation.PolicyRequest, error) {
	var req validation.PolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.ValidationError("Validation error: request body too large").
				WithContext("limit", maxErr.Limit).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryValidation, "Validation error: request body must be a JSON object").
			Build()
	}
	return &req, nil
}

// clientError passes validation and not-found errors through and replaces
// anything else with a generic internal error carrying message.
func clientError(err error, message string) error {
	switch errors.GetCategory(err) {
	case errors.CategoryValidation, errors.CategoryNotFound:
		return err
	default:
		return errors.WrapError(err, errors.CategoryInternal, message).Build()
	}
}
