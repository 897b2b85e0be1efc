package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"uprala/internal/validate"
	"uprala/pkg/types"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// writeError maps the error's sentinel onto a status code. Anything
// unrecognised is logged and answered with a generic 500.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *types.ValidationError

	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Fields: verr.Fields})
	case errors.Is(err, types.ErrValidation):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrConflict):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		s.requestLogger(r).WithError(err).Error("request failed")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reads a single JSON object into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return types.NewValidationError("request body is empty", nil)
		case errors.As(err, &maxErr):
			return types.NewValidationError(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), nil)
		default:
			return types.NewValidationError("malformed JSON body", nil)
		}
	}

	return validate.Struct(dst)
}

// decodeQuery fills a filter struct from the URL query using its form tags.
func decodeQuery(r *http.Request, dst any) error {
	if err := decoder.Decode(dst, r.URL.Query()); err != nil {
		return types.NewValidationError("invalid query parameters", nil)
	}
	return nil
}
