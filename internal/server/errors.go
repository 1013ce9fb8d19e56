package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/history"
	"github.com/matzehuels/thrackle/pkg/observability"
)

type errorResponse struct {
	Code    errors.Code `json:"code,omitempty"`
	Kind    errors.Kind `json:"kind"`
	Message string      `json:"message"`
}

func statusOf(err error) int {
	if stderrors.Is(err, history.ErrNotFound) {
		return http.StatusNotFound
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	switch errors.GetKind(err) {
	case errors.KindUserInput:
		return http.StatusBadRequest
	case errors.KindPrecondition:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	resp := errorResponse{
		Code:    errors.GetCode(err),
		Kind:    errors.GetKind(err),
		Message: errors.UserMessage(err),
	}
	if status == http.StatusNotFound {
		resp.Kind = errors.KindUserInput
	}
	if status == http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request error", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body")
	}
	return nil
}
