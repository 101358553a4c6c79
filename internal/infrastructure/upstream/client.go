// Package upstream implements the single gateway through which the portal
// talks to the remote Alzheimer-detection service. Every call resolves to a
// payload or a normalized, human-readable error; transport and parse
// failures never escape in raw form.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/neurocare-ai/portal/internal/pkg/metrics"
)

// User-facing failure messages. The service-unavailable text is reserved
// for a 404 whose body is not JSON, which is how a missing upstream
// presents through proxies.
const (
	msgServiceUnavailable = "Service not available. Please try again later."
	msgNetworkError       = "Network error occurred. Please check your connection."
	msgGenericError       = "An error occurred"
)

const defaultTimeout = 30 * time.Second

// Error is the normalized failure every gateway call returns. Message is
// safe to show to the user verbatim; Status is the upstream HTTP status,
// or 0 for transport-level failures.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client issues HTTP requests to the detection service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// do performs one request and returns the raw JSON payload on success.
// contentType is empty for body-less requests; multipart callers pass the
// writer's boundary-bearing content type. The bearer token is attached only
// when the caller supplies one.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.log.Error().Err(err).Str("operation", op).Msg("building upstream request failed")
		return nil, &Error{Message: msgNetworkError}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "network_error").Inc()
		c.log.Warn().Err(err).Str("operation", op).Msg("upstream request failed")
		return nil, &Error{Message: msgNetworkError}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "network_error").Inc()
		return nil, &Error{Status: resp.StatusCode, Message: msgNetworkError}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "upstream_error").Inc()
		return nil, normalizeFailure(resp.StatusCode, raw)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(op, "success").Inc()
	if len(raw) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(raw) {
		return nil, &Error{Status: resp.StatusCode, Message: msgNetworkError}
	}
	return raw, nil
}

// doJSON wraps do for JSON request/response exchanges. out may be nil when
// the caller does not care about the payload.
func (c *Client) doJSON(ctx context.Context, op, method, path string, payload any, token string, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			c.log.Error().Err(err).Str("operation", op).Msg("encoding upstream payload failed")
			return &Error{Message: msgGenericError}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	raw, err := c.do(ctx, op, method, path, body, contentType, token)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Message: msgNetworkError}
	}
	return nil
}

// doMultipart posts form fields plus one file. The content type is left to
// the multipart writer so the boundary is set correctly; empty field values
// are omitted.
func (c *Client) doMultipart(ctx context.Context, op, path, token string, fields map[string]string, fileField, filename string, file io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return nil, &Error{Message: msgGenericError}
		}
	}
	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, &Error{Message: msgGenericError}
	}
	if _, err := io.Copy(part, file); err != nil {
		c.log.Error().Err(err).Str("operation", op).Msg("reading upload payload failed")
		return nil, &Error{Message: msgGenericError}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Message: msgGenericError}
	}

	return c.do(ctx, op, http.MethodPost, path, &buf, w.FormDataContentType(), token)
}

// normalizeFailure converts a non-2xx response into the portal's error
// shape. Any body that parses as JSON is probed for the most specific
// message the backend offers; the 404/network copy is reserved for bodies
// that are not JSON at all, which is how a missing upstream presents
// through proxies.
func normalizeFailure(status int, raw []byte) *Error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		if status == http.StatusNotFound {
			return &Error{Status: status, Message: msgServiceUnavailable}
		}
		return &Error{Status: status, Message: msgNetworkError}
	}
	return &Error{Status: status, Message: messageFrom(payload)}
}

// messageFrom probes the error body in priority order: detail, message,
// error. A body that is valid JSON but not an object (a bare array, string
// or number) has no keys to probe and falls straight through to the
// documented generic string.
func messageFrom(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return msgGenericError
	}
	for _, key := range []string{"detail", "message", "error"} {
		value, ok := obj[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case nil:
			// keep probing
		default:
			// Structured validation details (e.g. a list of field errors)
			// are flattened rather than dropped.
			return fmt.Sprintf("%v", v)
		}
	}
	return msgGenericError
}
