package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
)

const (
	RequestIDHeader = "X-Request-ID"
	DefaultTimeout  = 15 * time.Second

	maxResponseBytes = 4 << 20
)

// UnauthorizedHandler is called once for every 401 the API returns.
type UnauthorizedHandler func(ctx context.Context)

// Client talks to the GoBarber REST API. It holds the base URL and the default Authorization
// header that every request carries once a session is armed.
type Client struct {
	baseURL string
	http    *http.Client
	auth    authHeader
	log     zerolog.Logger
	metrics *metrics

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
	registerer prometheus.Registerer
}

// WithHTTPClient replaces the underlying http.Client; its Timeout is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithRegisterer registers the request metrics on reg instead of leaving them unregistered.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *clientOptions) { o.registerer = reg }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	o := clientOptions{timeout: DefaultTimeout, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    o.httpClient,
		log:     o.logger,
		metrics: newMetrics(o.registerer),
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken arms the default Authorization header with "Bearer <token>".
func (c *Client) SetToken(token string) {
	c.auth.set(token)
}

// ClearToken removes the default Authorization header.
func (c *Client) ClearToken() {
	c.auth.clear()
}

// Authorization returns the current default Authorization header value, empty when unarmed.
func (c *Client) Authorization() string {
	return c.auth.value()
}

// OnUnauthorized installs the handler the response interceptor calls on a 401. A later call
// replaces the earlier handler.
func (c *Client) OnUnauthorized(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *Client) unauthorizedHandler() UnauthorizedHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

func (c *Client) getJSON(ctx context.Context, route string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, route, query, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, route string, query url.Values, in, out any) error {
	return c.sendJSON(ctx, method, route, query, in, out, false)
}

// doPublic calls an endpoint that needs no session. It never carries the Authorization header,
// so a 401 from it says nothing about the session.
func (c *Client) doPublic(ctx context.Context, method, route string, in, out any) error {
	return c.sendJSON(ctx, method, route, nil, in, out, true)
}

func (c *Client) sendJSON(ctx context.Context, method, route string, query url.Values, in, out any, public bool) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrapf(err, "encode %s %s", method, route)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, route, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, route, out, public)
}

// doMultipart sends a single file under field.
func (c *Client) doMultipart(ctx context.Context, method, route, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return apperrors.Wrapf(err, "create form file")
	}
	if _, err := io.Copy(part, r); err != nil {
		return apperrors.Wrapf(err, "read %s", filename)
	}
	if err := mw.Close(); err != nil {
		return apperrors.Wrapf(err, "close multipart body")
	}

	req, err := c.newRequest(ctx, method, route, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, route, out, false)
}

func (c *Client) newRequest(ctx context.Context, method, route string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + route
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperrors.Wrapf(err, "build %s %s", method, route)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// send performs req and is the single place responses are inspected. Every 401 becomes an
// *Error wrapping ErrUnauthorized; when the request carried credentials it also triggers the
// unauthorized handler.
func (c *Client) send(req *http.Request, route string, out any, public bool) error {
	authed := !public && c.auth.apply(req)
	requestID := req.Header.Get(RequestIDHeader)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(req.Method, route, 0, time.Since(start))
		c.log.Debug().Err(err).Str("method", req.Method).Str("route", route).
			Str("request_id", requestID).Msg("api request failed")
		if req.Context().Err() != nil {
			return apperrors.Wrapf(context.Cause(req.Context()), "%s %s", req.Method, route)
		}
		return apperrors.Wrapf(apperrors.ErrUnavailable, "%s %s: %v", req.Method, route, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	took := time.Since(start)
	c.metrics.observe(req.Method, route, resp.StatusCode, took)
	c.log.Debug().
		Str("method", req.Method).
		Str("route", route).
		Int("status", resp.StatusCode).
		Dur("took", took).
		Bool("authed", authed).
		Str("request_id", requestID).
		Msg("api request")
	if err != nil {
		return apperrors.Wrapf(err, "read %s %s response", req.Method, route)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := newError(req.Method, route, resp.StatusCode, body, public)
		if h := c.unauthorizedHandler(); authed && h != nil {
			h(context.WithoutCancel(req.Context()))
		}
		return apiErr
	}
	if resp.StatusCode >= 400 {
		return newError(req.Method, route, resp.StatusCode, body, public)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrapf(err, "decode %s %s response", req.Method, route)
	}
	return nil
}
