package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/common"
	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// TokenSource yields the bearer credential to attach, or "" for none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// UnauthorizedHook runs after any request answered with 401.
type UnauthorizedHook func(ctx context.Context)

// explicitTokenKey marks requests that carry a caller-supplied credential
// instead of the one from the TokenSource.
type explicitTokenKey struct{}

func hasExplicitToken(ctx context.Context) bool {
	v, _ := ctx.Value(explicitTokenKey{}).(bool)
	return v
}

type HTTPClient struct {
	baseURL string
	rc      *resty.Client
	tokens  TokenSource
	log     logging.Logger

	mu    sync.RWMutex
	hooks []UnauthorizedHook
}

type Option func(*options)

type options struct {
	http *http.Client
	log  logging.Logger
}

// WithHTTPClient replaces the default http.Client (which has no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewHTTPClient validates baseURL and returns a client bound to it. tokens may
// be nil, in which case no Authorization header is ever sent.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	rc := resty.New()
	if o.http != nil {
		rc = resty.NewWithClient(o.http)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     o.log,
	}
	c.rc = rc.
		SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{log: o.log}).
		OnBeforeRequest(c.authorize).
		OnAfterResponse(c.checkUnauthorized)
	return c, nil
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized registers h to run whenever a response has status 401.
func (c *HTTPClient) OnUnauthorized(h UnauthorizedHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, h)
}

// request starts a request bound to ctx. Error bodies are decoded into the
// FastAPI detail envelope whatever content type the server declares.
func (c *HTTPClient) request(ctx context.Context) *resty.Request {
	return c.rc.R().
		SetContext(ctx).
		SetHeader(common.RequestIDHeaderName, uuid.NewString()).
		ForceContentType("application/json").
		SetError(&errorEnvelope{})
}

// send executes req. Non-2xx statuses are returned as *APIError.
func (c *HTTPClient) send(req *resty.Request, method, path string) (*resty.Response, error) {
	ctx := req.Context()
	log := c.log.With("request_id", req.Header.Get(common.RequestIDHeaderName), "method", method, "path", path)

	resp, err := req.Execute(method, path)
	if err != nil {
		if resp != nil && resp.RawResponse != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		log.Warn(ctx, "request failed", "error", err)
		return nil, mapTransportError(err)
	}
	log.Debug(ctx, "request finished", "status", resp.StatusCode(), "duration", resp.Time())

	if !resp.IsSuccess() {
		var detail string
		if env, ok := resp.Error().(*errorEnvelope); ok {
			detail = env.message()
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Detail: detail, Body: resp.Body()}
	}
	return resp, nil
}

func (c *HTTPClient) authorize(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()
	if c.tokens == nil || hasExplicitToken(ctx) {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "stored credential unreadable, sending request without it", "error", err)
		return nil
	}
	if token != "" {
		r.SetAuthScheme(common.BearerScheme).SetAuthToken(token)
	}
	return nil
}

func (c *HTTPClient) checkUnauthorized(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized || hasExplicitToken(resp.Request.Context()) {
		return nil
	}

	c.mu.RLock()
	hooks := append([]UnauthorizedHook(nil), c.hooks...)
	c.mu.RUnlock()

	// Hooks run even if the caller's context is already cancelled.
	ctx := context.WithoutCancel(resp.Request.Context())
	for _, h := range hooks {
		h(ctx)
	}
	return nil
}

// restyLogger routes resty's own diagnostics to the structured logger.
type restyLogger struct {
	log logging.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(context.Background(), "http client", "detail", strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Debug(context.Background(), "http client", "detail", strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(context.Background(), "http client", "detail", strings.TrimSpace(fmt.Sprintf(format, v...)))
}
