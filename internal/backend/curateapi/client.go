// Package curateapi implements the service.Service interface against the Curate REST backend.
package curateapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"curate/internal/auth"
	"curate/internal/config"
	"curate/internal/metrics"
)

const (
	// RequestTimeout is the timeout for each HTTP attempt.
	RequestTimeout = 10 * time.Second

	// RequestIDHeader carries a per-call id, kept across the 401 retry.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.Provider
	log     zerolog.Logger
	metrics *metrics.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout is forced to
// RequestTimeout when unset.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		if clone.Timeout == 0 {
			clone.Timeout = RequestTimeout
		}
		c.http = &clone
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics sets the counters updated on every attempt.
func WithMetrics(m *metrics.Client) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client from configuration.
// Requires a backend URL; the token provider is chosen by auth.FromConfig.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	baseURL, err := cfg.RequireBackend()
	if err != nil {
		return nil, err
	}
	tokens, err := auth.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("auth setup failed: %w", err)
	}
	return NewClient(baseURL, tokens, opts...)
}

// NewClient creates a client for baseURL. tokens may be nil, in which case
// every request is sent without credentials.
func NewClient(baseURL string, tokens auth.Provider, opts ...Option) (*Client, error) {
	base, err := config.NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: RequestTimeout},
		tokens:  tokens,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.NewClient(nil)
	}
	return c, nil
}

// do sends one logical request. A 401 on the first attempt triggers exactly
// one resend with a refreshed token; every other outcome is final.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	c.attachToken(ctx, req, c.currentToken)
	resp, err := c.send(req)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)

		retry, err := cloneRequest(ctx, req)
		if err != nil {
			return err
		}
		c.metrics.Retries.Inc()
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Str("request_id", req.Header.Get(RequestIDHeader)).
			Msg("401 received, retrying with refreshed token")

		c.attachToken(ctx, retry, c.refreshToken)
		resp, err = c.send(retry)
		if err != nil {
			return err
		}
	}

	return c.decode(req, resp, out)
}

// attachToken sets the bearer header from fetch. Token failures never fail
// the request: it goes out without credentials and the backend decides.
func (c *Client) attachToken(ctx context.Context, req *http.Request, fetch func(context.Context) (string, error)) {
	if c.tokens == nil {
		c.metrics.TokenUnavailable.Inc()
		c.log.Warn().Str("path", req.URL.Path).Msg("token provider not initialized; sending request without credentials")
		return
	}
	token, err := fetch(ctx)
	if err != nil {
		c.metrics.TokenUnavailable.Inc()
		c.log.Warn().Err(err).Str("path", req.URL.Path).Msg("failed to get auth token")
		return
	}
	if token == "" {
		c.metrics.TokenUnavailable.Inc()
		c.log.Debug().Str("path", req.URL.Path).Msg("no auth token available")
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

// refreshToken asks the provider for a fresh token, forcing a refresh when
// the provider caches.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	if r, ok := c.tokens.(auth.Refresher); ok {
		return r.RefreshToken(ctx)
	}
	return c.tokens.Token(ctx)
}

// send performs one HTTP attempt.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.metrics.Attempts.WithLabelValues(req.Method, metrics.StatusLabel(status)).Inc()
	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", status).
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Dur("latency", time.Since(start)).
		Msg("attempt")

	if err != nil {
		return nil, &Error{
			Kind:    KindUnreachable,
			Method:  req.Method,
			Path:    req.URL.Path,
			Timeout: isTimeout(err),
			Err:     err,
		}
	}
	return resp, nil
}

// decode consumes resp, filling out on 2xx and returning *Error otherwise.
func (c *Client) decode(req *http.Request, resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Kind:       kindForStatus(resp.StatusCode),
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var payload ErrorPayload
		if len(data) > 0 && json.Unmarshal(data, &payload) == nil {
			apiErr.Payload = &payload
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// cloneRequest copies req for a resend: same method, URL, body and headers,
// minus Authorization.
func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	retry := req.Clone(ctx)
	retry.Header.Del("Authorization")
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		retry.Body = body
	}
	return retry, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
