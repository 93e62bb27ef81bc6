package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
	"uptime-monitor/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultIntervalSeconds = 30
	MinIntervalSeconds     = 5
	MaxIntervalSeconds     = 3600
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names, so messages read "interval_seconds" not "IntervalSeconds"
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MonitorSpec is the client supplied part of a Monitor.
type MonitorSpec struct {
	URL             string   `json:"url" validate:"required,url"`
	IntervalSeconds int      `json:"interval_seconds" validate:"gte=5,lte=3600"`
	Tags            []string `json:"tags"`
}

// NewSpec builds a validated spec. A nil interval means the default.
func NewSpec(rawURL string, intervalSeconds *int, tags []string) (MonitorSpec, error) {
	spec := MonitorSpec{
		URL:             strings.TrimSpace(rawURL),
		IntervalSeconds: DefaultIntervalSeconds,
		Tags:            copyTags(tags),
	}
	if intervalSeconds != nil {
		spec.IntervalSeconds = *intervalSeconds
	}
	if err := spec.Validate(); err != nil {
		return MonitorSpec{}, err
	}
	return spec, nil
}

func (s MonitorSpec) Validate() error {
	const op string = "domain.monitor.validate"

	if err := validate.Struct(s); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return apperror.Invalid(op, formatValidationErrors(ve))
		}
		return apperror.Invalid(op, err.Error())
	}
	if err := checkHTTPURL(s.URL); err != nil {
		return apperror.Invalid(op, err.Error())
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("url: %v", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("url: scheme must be http or https")
	}
	if u.Hostname() == "" {
		return fmt.Errorf("url: host is required")
	}
	return nil
}

func formatValidationErrors(ve validator.ValidationErrors) string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+": is required")
		case "url":
			msgs = append(msgs, fe.Field()+": must be an absolute URL")
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s: must be between %d and %d", fe.Field(), MinIntervalSeconds, MaxIntervalSeconds))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// Monitor is a registered check target. It never changes after creation.
type Monitor struct {
	ID              string
	URL             string
	IntervalSeconds int
	Tags            []string
	CreatedAt       time.Time
}

// NewMonitor assigns a fresh id and creation time to a validated spec.
func NewMonitor(spec MonitorSpec) (Monitor, error) {
	if err := spec.Validate(); err != nil {
		return Monitor{}, err
	}
	return Monitor{
		ID:              uuid.NewString(),
		URL:             spec.URL,
		IntervalSeconds: spec.IntervalSeconds,
		Tags:            copyTags(spec.Tags),
		CreatedAt:       time.Now().UTC().Round(0),
	}, nil
}

func (m Monitor) Spec() MonitorSpec {
	return MonitorSpec{URL: m.URL, IntervalSeconds: m.IntervalSeconds, Tags: m.Tags}
}

type monitorJSON struct {
	ID              string       `json:"id"`
	URL             string       `json:"url"`
	IntervalSeconds int          `json:"interval_seconds"`
	Tags            []string     `json:"tags"`
	CreatedAt       epochSeconds `json:"created_at"`
}

func (m Monitor) MarshalJSON() ([]byte, error) {
	return json.Marshal(monitorJSON{
		ID:              m.ID,
		URL:             m.URL,
		IntervalSeconds: m.IntervalSeconds,
		Tags:            copyTags(m.Tags),
		CreatedAt:       epochSeconds(m.CreatedAt),
	})
}

func (m *Monitor) UnmarshalJSON(b []byte) error {
	var raw monitorJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = Monitor{
		ID:              raw.ID,
		URL:             raw.URL,
		IntervalSeconds: raw.IntervalSeconds,
		Tags:            copyTags(raw.Tags),
		CreatedAt:       time.Time(raw.CreatedAt),
	}
	return nil
}

// DecodeMonitor parses and re-validates a stored monitor record.
func DecodeMonitor(b []byte) (Monitor, error) {
	const op string = "domain.monitor.decode"

	var m Monitor
	if err := json.Unmarshal(b, &m); err != nil {
		return Monitor{}, apperror.New(apperror.Internal, op, err).WithMessage("corrupt monitor record")
	}
	if m.ID == "" {
		return Monitor{}, apperror.New(apperror.Internal, op, errors.New("record has no id")).WithMessage("corrupt monitor record")
	}
	if err := m.Spec().Validate(); err != nil {
		return Monitor{}, apperror.New(apperror.Internal, op, err).WithMessage("corrupt monitor record")
	}
	return m, nil
}

// CheckResult is the outcome of one probe. StatusCode is set only when a
// response was received; Error only when the request failed in transport.
type CheckResult struct {
	MonitorID  string    `json:"monitor_id"`
	URL        string    `json:"url"`
	OK         bool      `json:"ok"`
	StatusCode *int      `json:"status_code"`
	LatencyMs  float64   `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at"`
	Error      *string   `json:"error"`
}

type checkResultJSON struct {
	MonitorID  string       `json:"monitor_id"`
	URL        string       `json:"url"`
	OK         bool         `json:"ok"`
	StatusCode *int         `json:"status_code"`
	LatencyMs  *float64     `json:"latency_ms"`
	CheckedAt  epochSeconds `json:"checked_at"`
	Error      *string      `json:"error"`
}

func (r CheckResult) MarshalJSON() ([]byte, error) {
	latency := r.LatencyMs
	return json.Marshal(checkResultJSON{
		MonitorID:  r.MonitorID,
		URL:        r.URL,
		OK:         r.OK,
		StatusCode: r.StatusCode,
		LatencyMs:  &latency,
		CheckedAt:  epochSeconds(r.CheckedAt),
		Error:      r.Error,
	})
}

func (r *CheckResult) UnmarshalJSON(b []byte) error {
	var raw checkResultJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = CheckResult{
		MonitorID:  raw.MonitorID,
		URL:        raw.URL,
		OK:         raw.OK,
		StatusCode: raw.StatusCode,
		CheckedAt:  time.Time(raw.CheckedAt),
		Error:      raw.Error,
	}
	if raw.LatencyMs != nil {
		r.LatencyMs = *raw.LatencyMs
	}
	return nil
}

func DecodeCheckResult(b []byte) (CheckResult, error) {
	const op string = "domain.check_result.decode"

	var r CheckResult
	if err := json.Unmarshal(b, &r); err != nil {
		return CheckResult{}, apperror.New(apperror.Internal, op, err).WithMessage("corrupt result record")
	}
	if r.MonitorID == "" {
		return CheckResult{}, apperror.New(apperror.Internal, op, errors.New("record has no monitor_id")).WithMessage("corrupt result record")
	}
	return r, nil
}

func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
