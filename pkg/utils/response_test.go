package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"uptime-monitor/pkg/apperror"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v (%q)", err, rec.Body.String())
	}
	return body
}

func TestWriteJSON_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, "req-1", MonitorCreated, map[string]string{"id": "m-1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["request_id"] != "req-1" || body["message"] != MonitorCreated {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("success body must not carry error: %v", body)
	}
}

func TestWriteJSON_OmitsEmptyRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, "", MonitorsListed, []string{})

	if _, ok := decodeBody(t, rec)["request_id"]; ok {
		t.Fatalf("empty request id should be omitted: %s", rec.Body.String())
	}
}

func TestFromAppError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
	}{
		{
			name:    "not found",
			err:     apperror.New(apperror.NotFound, "service.monitor.get", nil).WithMessage(MonitorNotFound),
			status:  http.StatusNotFound,
			kind:    "not_found",
			message: MonitorNotFound,
		},
		{
			name:    "wrapped storage error",
			err:     fmt.Errorf("list: %w", apperror.New(apperror.StorageUnavailable, "store.redis.list_monitors", errors.New("refused")).WithMessage("storage unavailable")),
			status:  http.StatusServiceUnavailable,
			kind:    "storage_unavailable",
			message: "storage unavailable",
		},
		{
			name:    "plain error is hidden",
			err:     errors.New("secret detail"),
			status:  http.StatusInternalServerError,
			kind:    "internal",
			message: "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromAppError(rec, "req-2", tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			body := decodeBody(t, rec)
			if body["success"] != false {
				t.Fatalf("success should be false: %v", body)
			}
			if _, ok := body["data"]; ok {
				t.Fatalf("error body must not carry data: %v", body)
			}
			errBody, _ := body["error"].(map[string]any)
			if errBody["kind"] != tc.kind || errBody["message"] != tc.message {
				t.Fatalf("error = %v, want %s/%q", errBody, tc.kind, tc.message)
			}
		})
	}
}
