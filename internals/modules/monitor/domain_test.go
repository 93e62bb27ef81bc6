package monitor

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
	"uptime-monitor/pkg/apperror"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func TestNewSpec_DefaultsAndValidation(t *testing.T) {
	cases := []struct {
		name     string
		url      string
		interval *int
		wantErr  bool
		wantIntv int
	}{
		{"default interval", "https://example.com", nil, false, 30},
		{"lower bound", "http://example.com/health", intPtr(5), false, 5},
		{"upper bound", "https://example.com", intPtr(3600), false, 3600},
		{"below bound", "https://example.com", intPtr(4), true, 0},
		{"above bound", "https://example.com", intPtr(3601), true, 0},
		{"explicit zero", "https://example.com", intPtr(0), true, 0},
		{"empty url", "", nil, true, 0},
		{"relative url", "/health", nil, true, 0},
		{"no scheme", "example.com", nil, true, 0},
		{"ftp scheme", "ftp://example.com", nil, true, 0},
		{"no host", "https://", nil, true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := NewSpec(c.url, c.interval, nil)
			if c.wantErr {
				if err == nil {
					t.Fatalf("want error for url=%q interval=%v", c.url, c.interval)
				}
				if !apperror.IsKind(err, apperror.InvalidInput) {
					t.Fatalf("want invalid_input, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSpec: %v", err)
			}
			if spec.IntervalSeconds != c.wantIntv {
				t.Fatalf("interval=%d want %d", spec.IntervalSeconds, c.wantIntv)
			}
			if spec.Tags == nil || len(spec.Tags) != 0 {
				t.Fatalf("want empty non-nil tags, got %#v", spec.Tags)
			}
		})
	}
}

func TestNewSpec_MessageNamesField(t *testing.T) {
	_, err := NewSpec("https://example.com", intPtr(1), nil)
	var appErr *apperror.Error
	if !asAppError(err, &appErr) {
		t.Fatalf("want *apperror.Error, got %v", err)
	}
	if !strings.Contains(appErr.Message, "interval_seconds") {
		t.Fatalf("message should name interval_seconds, got %q", appErr.Message)
	}
}

func TestNewMonitor_AssignsIdentity(t *testing.T) {
	spec, err := NewSpec("https://example.com", nil, []string{"prod", "api"})
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	a, err := NewMonitor(spec)
	if err != nil {
		t.Fatalf("NewMonitor: %v", err)
	}
	b, _ := NewMonitor(spec)

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("want distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() || a.CreatedAt.Location() != time.UTC {
		t.Fatalf("created_at should be stamped in UTC, got %v", a.CreatedAt)
	}

	spec.Tags[0] = "mutated"
	if a.Tags[0] != "prod" {
		t.Fatalf("monitor must not share the spec's tag slice")
	}
}

func TestMonitor_JSONRoundTrip(t *testing.T) {
	cases := []Monitor{
		{
			ID:              "7c3c9a4e-0000-4000-8000-000000000001",
			URL:             "https://example.com/health",
			IntervalSeconds: 60,
			Tags:            []string{"b", "a", "c"},
			CreatedAt:       time.Date(2025, 8, 18, 12, 0, 0, 123456789, time.UTC),
		},
		{
			ID:              "7c3c9a4e-0000-4000-8000-000000000002",
			URL:             "http://example.org",
			IntervalSeconds: 30,
			Tags:            []string{},
			CreatedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
	for _, want := range cases {
		b, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := DecodeMonitor(b)
		if err != nil {
			t.Fatalf("decode %s: %v", b, err)
		}
		if got.ID != want.ID || got.URL != want.URL || got.IntervalSeconds != want.IntervalSeconds ||
			!reflect.DeepEqual(got.Tags, want.Tags) || !got.CreatedAt.Equal(want.CreatedAt) {
			t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
		}
	}
}

func TestMonitor_EmptyTagsSerializeAsArray(t *testing.T) {
	b, err := json.Marshal(Monitor{ID: "x", URL: "https://example.com", IntervalSeconds: 30})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"tags":[]`) {
		t.Fatalf("want tags as empty array, got %s", b)
	}
}

func TestCheckResult_JSONRoundTrip(t *testing.T) {
	checkedAt := time.Date(2025, 8, 18, 12, 0, 1, 500000000, time.UTC)
	cases := []CheckResult{
		{MonitorID: "m1", URL: "https://example.com", OK: true, StatusCode: intPtr(200), LatencyMs: 12.5, CheckedAt: checkedAt},
		{MonitorID: "m1", URL: "https://example.com", OK: false, StatusCode: intPtr(500), LatencyMs: 3, CheckedAt: checkedAt},
		{MonitorID: "m2", URL: "https://example.invalid", OK: false, LatencyMs: 1000.25, CheckedAt: checkedAt, Error: strPtr("dial tcp: lookup example.invalid: no such host")},
	}
	for _, want := range cases {
		b, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := DecodeCheckResult(b)
		if err != nil {
			t.Fatalf("decode %s: %v", b, err)
		}
		if got.MonitorID != want.MonitorID || got.URL != want.URL || got.OK != want.OK ||
			!reflect.DeepEqual(got.StatusCode, want.StatusCode) || !reflect.DeepEqual(got.Error, want.Error) ||
			got.LatencyMs != want.LatencyMs || !got.CheckedAt.Equal(want.CheckedAt) {
			t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
		}
	}
}

func TestCheckResult_AbsentFieldsAreNull(t *testing.T) {
	b, err := json.Marshal(CheckResult{MonitorID: "m1", URL: "https://example.com", LatencyMs: 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"status_code":null`) || !strings.Contains(s, `"error":null`) {
		t.Fatalf("want explicit nulls, got %s", s)
	}
}

func TestDecodeMonitor_ExistingRecordFormat(t *testing.T) {
	raw := `{"url":"https://example.com/","interval_seconds":30,"tags":["edge"],` +
		`"id":"2b0e3c44-5c1e-4f7b-9a59-0c8f0b7e4d11","created_at":1718000000.123456}`

	m, err := DecodeMonitor([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeMonitor: %v", err)
	}
	want := time.Unix(1718000000, 123456000).UTC()
	if !m.CreatedAt.Equal(want) {
		t.Fatalf("created_at=%v want %v", m.CreatedAt, want)
	}
	if len(m.Tags) != 1 || m.Tags[0] != "edge" {
		t.Fatalf("unexpected tags %v", m.Tags)
	}
}

func TestDecodeCheckResult_ExistingRecordFormat(t *testing.T) {
	raw := `{"monitor_id":"m1","url":"https://example.com/","ok":false,"status_code":null,` +
		`"latency_ms":5001.2,"checked_at":1718000000.5,"error":"timed out"}`

	r, err := DecodeCheckResult([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeCheckResult: %v", err)
	}
	if r.StatusCode != nil || r.Error == nil || *r.Error != "timed out" {
		t.Fatalf("unexpected optionals: %+v", r)
	}
	if !r.CheckedAt.Equal(time.Unix(1718000000, 500000000)) {
		t.Fatalf("checked_at=%v", r.CheckedAt)
	}
}

func TestDecodeMonitor_RejectsCorruptRecords(t *testing.T) {
	cases := []string{
		`not json`,
		`{"url":"https://example.com","interval_seconds":30,"tags":[],"created_at":1}`,
		`{"id":"x","url":"nope","interval_seconds":30,"tags":[],"created_at":1}`,
		`{"id":"x","url":"https://example.com","interval_seconds":1,"tags":[],"created_at":1}`,
	}
	for _, raw := range cases {
		if _, err := DecodeMonitor([]byte(raw)); !apperror.IsKind(err, apperror.Internal) {
			t.Fatalf("DecodeMonitor(%s) = %v, want internal error", raw, err)
		}
	}
}

func TestEpochSeconds(t *testing.T) {
	cases := []time.Time{
		time.Unix(0, 0).UTC(),
		time.Unix(1718000000, 1).UTC(),
		time.Unix(1718000000, 999999999).UTC(),
		time.Unix(-2, 500000000).UTC(),
	}
	for _, want := range cases {
		b, err := epochSeconds(want).MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got epochSeconds
		if err := got.UnmarshalJSON(b); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if !time.Time(got).Equal(want) {
			t.Fatalf("%s decoded to %v, want %v", b, time.Time(got), want)
		}
	}
}

func asAppError(err error, target **apperror.Error) bool {
	e, ok := err.(*apperror.Error)
	if ok {
		*target = e
	}
	return ok
}
