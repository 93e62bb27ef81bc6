package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Handler struct {
	service *Service
	logger  *zerolog.Logger
}

func NewHandler(service *Service, logger *zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) CreateMonitor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	// decode request body
	var req CreateMonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, describeDecodeError(err))
		return
	}

	spec, err := NewSpec(req.Url, req.IntervalSeconds, req.Tags)
	if err != nil {
		h.writeError(w, reqID, err)
		return
	}

	m, err := h.service.CreateMonitor(ctx, spec)
	if err != nil {
		h.writeError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reqID, utils.MonitorCreated, m)
}

func (h *Handler) ListMonitors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	monitors, err := h.service.ListMonitors(ctx)
	if err != nil {
		h.writeError(w, reqID, err)
		return
	}
	if monitors == nil {
		monitors = []Monitor{}
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.MonitorsListed, ListMonitorsResponse{Items: monitors})
}

func (h *Handler) GetMonitor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	monitorID := chi.URLParam(r, "monitorID")

	details, err := h.service.GetMonitor(ctx, monitorID)
	if err != nil {
		h.writeError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.MonitorRetrieved, details)
}

func (h *Handler) DeleteMonitor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	monitorID := chi.URLParam(r, "monitorID")

	if err := h.service.DeleteMonitor(ctx, monitorID); err != nil {
		h.writeError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.MonitorDeleted, DeleteMonitorResponse{Deleted: true})
}

func (h *Handler) writeError(w http.ResponseWriter, reqID string, err error) {
	if apperror.HTTPStatus(err) >= http.StatusInternalServerError {
		h.logger.Error().
			Err(err).
			Str("request_id", reqID).
			Msg("monitor request failed")
	}
	utils.FromAppError(w, reqID, err)
}

// describeDecodeError names the offending field when the body is valid JSON
// of the wrong shape.
func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be %s, got %s", typeErr.Field, jsonTypeName(typeErr.Type), typeErr.Value)
	}
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}
	return "request body must be a JSON object"
}

func jsonTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array of " + strings.TrimPrefix(jsonTypeName(t.Elem()), "a ") + "s"
	default:
		return "a " + t.String()
	}
}
