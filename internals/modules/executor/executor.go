package executor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
	"uptime-monitor/internals/modules/monitor"
	"uptime-monitor/pkg/httpclient"
)

// bodyDrainLimit caps how much of a response body is read so the
// connection can go back to the pool.
const bodyDrainLimit = 64 << 10

const userAgent = "uptime-monitor/1.0"

// Executor performs single, time bounded HTTP probes. It never retries.
type Executor struct {
	httpClient *http.Client
	timeout    time.Duration
}

func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		httpClient: httpclient.NewHttpClient(timeout),
		timeout:    timeout,
	}
}

func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Probe issues one GET against m.URL, following redirects, and always
// returns a result. A received response sets StatusCode, a transport
// failure sets Error.
func (e *Executor) Probe(ctx context.Context, m monitor.Monitor) monitor.CheckResult {
	result := monitor.CheckResult{
		MonitorID: m.ID,
		URL:       m.URL,
	}

	start := time.Now()
	finish := func() {
		result.LatencyMs = float64(time.Since(start)) / float64(time.Millisecond)
		result.CheckedAt = time.Now().UTC().Round(0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL, nil)
	if err != nil {
		// the url passed validation at creation, so this is unexpected
		finish()
		result.Error = describe("invalid request", err)
		return result
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		// DNS err, network err, TLS err and timeouts
		finish()
		result.Error = describe(classifyError(err), err)
		return result
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, bodyDrainLimit))
	resp.Body.Close()
	finish()

	status := resp.StatusCode
	result.StatusCode = &status
	result.OK = status >= 200 && status < 400
	return result
}

func describe(reason string, err error) *string {
	msg := fmt.Sprintf("%s: %v", reason, err)
	return &msg
}

func classifyError(err error) string {

	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns failure"
	}

	var (
		certErr      *tls.CertificateVerificationError
		unknownAuth  x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		recordHdrErr tls.RecordHeaderError
	)
	if errors.As(err, &certErr) || errors.As(err, &unknownAuth) || errors.As(err, &hostnameErr) || errors.As(err, &recordHdrErr) {
		return "tls failure"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network error"
	}

	return "request failed"
}
