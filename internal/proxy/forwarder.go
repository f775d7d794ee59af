package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/qrgate/qrgate/pkg/logger"
	"github.com/qrgate/qrgate/pkg/metrics"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultRetryCount  = 3
	DefaultBackoffBase = time.Second
)

// Request describes one inbound request to relay upstream. Path must already
// be the rewritten upstream path.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Query  url.Values
	Body   []byte
}

// Response carries the upstream reply verbatim.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// Forwarder relays requests to the upstream API with bounded retries. Only
// transport-level failures are retried; an upstream HTTP error status is a
// response, not a failure.
type Forwarder struct {
	baseURL     string
	credential  string
	timeout     time.Duration
	retryCount  int
	backoffBase time.Duration
	client      *http.Client
}

func NewForwarder(baseURL, credential string, timeout time.Duration, retryCount int) *Forwarder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retryCount <= 0 {
		retryCount = DefaultRetryCount
	}
	return &Forwarder{
		baseURL:     baseURL,
		credential:  credential,
		timeout:     timeout,
		retryCount:  retryCount,
		backoffBase: DefaultBackoffBase,
		client:      &http.Client{},
	}
}

// Forward relays the request and returns the upstream response, whatever its
// status. On transport failure it retries up to the configured attempt count
// with doubling delays, then surfaces the last error.
func (f *Forwarder) Forward(ctx context.Context, req *Request) (*Response, error) {
	target, err := BuildUpstreamURL(f.baseURL, req.Path, req.Query)
	if err != nil {
		return nil, fmt.Errorf("build upstream url: %w", err)
	}

	header := make(http.Header, len(req.Header))
	for k, vs := range req.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	// The client's credential must never reach the upstream; the proxy
	// substitutes its own service-level token.
	header.Del("Authorization")
	if f.credential != "" {
		header.Set("Authorization", "Bearer "+f.credential)
	}

	var lastErr error
	for attempt := 1; attempt <= f.retryCount; attempt++ {
		metrics.UpstreamAttempts.Inc()
		resp, err := f.attempt(ctx, req.Method, target, header, req.Body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if IsTimeout(err) {
			metrics.UpstreamFailures.WithLabelValues("timeout").Inc()
		} else {
			metrics.UpstreamFailures.WithLabelValues("transport").Inc()
		}
		logger.Warnf("upstream request attempt %d/%d failed: %v", attempt, f.retryCount, err)
		if attempt < f.retryCount {
			// exponential backoff: 1s, 2s, 4s, ... A gone client should not
			// hold the handler through the remaining waits.
			timer := time.NewTimer(f.backoffBase << (attempt - 1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, lastErr
			case <-timer.C:
			}
		}
	}
	return nil, lastErr
}

// attempt performs a single upstream call under its own deadline. A timeout
// counts as a retryable transport failure.
func (f *Forwarder) attempt(ctx context.Context, method, target string, header http.Header, body []byte) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var rdr io.Reader
	if len(body) > 0 {
		rdr = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		httpReq.Header[k] = vs
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: respBody, Header: resp.Header}, nil
}

// IsTimeout reports whether the transport failure was timeout-class, so the
// caller can answer 504 instead of 502.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
