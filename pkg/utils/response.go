package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"uptime-monitor/pkg/apperror"

	"github.com/rs/zerolog/log"
)

// Envelope is the body of every api response. Data is set on success,
// Error on failure. RequestID is left out when no request id middleware ran.
type Envelope[T any] struct {
	Success   bool       `json:"success"`
	RequestID string     `json:"request_id,omitempty"`
	Message   string     `json:"message,omitempty"`
	Data      T          `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind    apperror.Kind `json:"kind"` // invalid_input, not_found, ...
	Message string        `json:"message,omitempty"`
}

func WriteJSON[T any](w http.ResponseWriter, status int, reqID string, message string, data T) {
	write(w, status, Envelope[T]{
		Success:   true,
		RequestID: reqID,
		Message:   message,
		Data:      data,
	})
}

// FromAppError writes err with the status of its kind. Errors that are not
// *apperror.Error never leak their text.
func FromAppError(w http.ResponseWriter, reqID string, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		WriteError(w, http.StatusInternalServerError, reqID, apperror.Internal, "internal server error")
		return
	}

	WriteError(w, apperror.GetHTTPStatus(appErr.Kind), reqID, appErr.Kind, appErr.Message)
}

func WriteError(w http.ResponseWriter, status int, reqID string, kind apperror.Kind, message string) {
	write(w, status, Envelope[*struct{}]{
		Success:   false,
		RequestID: reqID,
		Error:     &ErrorBody{Kind: kind, Message: message},
	})
}

func write[T any](w http.ResponseWriter, status int, body Envelope[T]) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().
			Err(err).
			Str("request_id", body.RequestID).
			Int("status", status).
			Msg("failed to encode response")
	}
}
