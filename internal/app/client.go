package app

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"halfway.meetspot.org/internal/metrics"
)

// latencyTrackingRoundTripper wraps another RoundTripper to record the
// latency of every outgoing HTTP request as a Prometheus histogram, labeled
// by URL, method and status. Instrumenting the transport keeps the places
// client free of metrics code.
type latencyTrackingRoundTripper struct {
	next http.RoundTripper
}

func (rt *latencyTrackingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	// Scheme, host and path only. Query params carry the API key and
	// coordinates, which must not become label values.
	safeURL := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	metrics.OutgoingLatency.WithLabelValues(
		safeURL,
		req.Method,
		status,
	).Observe(duration)

	return resp, err
}

// NewPooledClient returns an HTTP client tuned for the places provider:
// most traffic goes to a single API host, so idle keep-alive connections
// are held long enough to survive gaps between user searches, and dial,
// TLS and overall timeouts are capped so a degraded provider fails fast
// instead of stalling a search. The transport is instrumented with latency
// tracking.
func NewPooledClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	instrumentedTransport := &latencyTrackingRoundTripper{next: transport}

	client := &http.Client{
		Transport: instrumentedTransport,
		Timeout:   10 * time.Second,
	}
	return client
}
