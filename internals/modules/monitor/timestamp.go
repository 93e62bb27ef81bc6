package monitor

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// epochSeconds is a time serialized as fractional unix seconds, the format
// stored records have always used. Nine fraction digits keep it exact.
type epochSeconds time.Time

func (e epochSeconds) MarshalJSON() ([]byte, error) {
	t := time.Time(e)
	sec, nsec := t.Unix(), int64(t.Nanosecond())
	if sec < 0 && nsec > 0 {
		return fmt.Appendf(nil, "-%d.%09d", -(sec + 1), 1e9-nsec), nil
	}
	return fmt.Appendf(nil, "%d.%09d", sec, nsec), nil
}

func (e *epochSeconds) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*e = epochSeconds(time.Time{})
		return nil
	case b[0] == '"':
		t, err := time.Parse(`"`+time.RFC3339Nano+`"`, string(b))
		if err != nil {
			return err
		}
		*e = epochSeconds(t.UTC())
		return nil
	}

	t, err := parseEpoch(string(b))
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", b, err)
	}
	*e = epochSeconds(t)
	return nil
}

func parseEpoch(s string) (time.Time, error) {
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, err
		}
		sec := math.Floor(f)
		return time.Unix(int64(sec), int64(math.Round((f-sec)*1e9))).UTC(), nil
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	sec, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	var nsec int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		if nsec, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return time.Time{}, err
		}
	}

	if neg {
		return time.Unix(-sec, -nsec).UTC(), nil
	}
	return time.Unix(sec, nsec).UTC(), nil
}
