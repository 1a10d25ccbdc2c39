// Package http implements the authenticated transport for the PassForge API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/passforge-io/passforge-go/internal/auth"
	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/pkg/passforge"
)

const (
	// Version is the SDK version reported to the API.
	Version = "1.0.0"

	defaultUserAgent = "passforge-go/" + Version
	clientInfoHeader = "X-Client-Info"
)

// Logger is the minimal logging interface used by the client.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs authenticated HTTP calls against one base URL. Each call is
// bounded by the configured timeout and performs exactly one attempt; retry
// policy belongs to the caller.
type Client struct {
	baseURL      string
	keyManager   auth.KeyManager
	httpClient   *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	headers      map[string]string
	timeout      time.Duration
	interceptors *passforge.InterceptorChain
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout sets the per-request bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHeaders sets headers added to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithInterceptors installs an interceptor chain run around every request.
func WithInterceptors(chain *passforge.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new API client for the given base URL. A nil key
// manager sends unauthenticated requests.
func NewClient(baseURL string, keyManager auth.KeyManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 0
	// Never retry, and never let the transport swallow the response on
	// non-2xx statuses; error mapping happens in Do.
	retryClient.CheckRetry = func(_ context.Context, _ *http.Response, _ error) (bool, error) {
		return false, nil
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		keyManager: keyManager,
		httpClient: retryClient,
		userAgent:  defaultUserAgent,
		timeout:    constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request and returns the response. For non-2xx statuses both
// the response and a *passforge.RemoteError are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("%w: request path is empty", passforge.ErrInvalidRequest)
	}

	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	interceptorReq, cached, err := c.runRequestInterceptors(ctx, req, bodyBytes)
	if err != nil {
		return nil, err
	}

	if cached != nil {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.buildRequest(ctx, req, interceptorReq, bodyBytes)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%w after %v", passforge.ErrTimeout, c.timeout)
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         httpReq.URL.String(),
			"status_code": httpResp.StatusCode,
		})
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		remoteErr := passforge.NewRemoteError(httpResp.StatusCode, statusText(httpResp.Status, httpResp.StatusCode), respBody)
		c.runResponseInterceptors(ctx, interceptorReq, response, remoteErr)

		return response, remoteErr
	}

	c.runResponseInterceptors(ctx, interceptorReq, response, nil)

	return response, nil
}

// buildRequest assembles the outgoing HTTP request with all headers applied.
func (c *Client) buildRequest(ctx context.Context, req *Request, interceptorReq *passforge.Request, bodyBytes []byte) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody interface{}
	if bodyBytes != nil {
		rawBody = bodyBytes
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(clientInfoHeader, defaultUserAgent)

	if bodyBytes != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.keyManager != nil {
		key, err := c.keyManager.GetKey(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting API key: %w", err)
		}

		if key != "" {
			httpReq.Header.Set("Authorization", "Bearer "+key)
		}
	}

	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	if interceptorReq != nil {
		for key, values := range interceptorReq.Headers {
			for _, value := range values {
				httpReq.Header.Set(key, value)
			}
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// runRequestInterceptors executes the request side of the chain. When an
// interceptor stored a cached body, a synthetic response is returned and the
// network is skipped.
func (c *Client) runRequestInterceptors(ctx context.Context, req *Request, bodyBytes []byte) (*passforge.Request, *Response, error) {
	if c.interceptors == nil {
		return nil, nil, nil
	}

	path := req.Path
	if len(req.Query) > 0 {
		path += "?" + req.Query.Encode()
	}

	interceptorReq := &passforge.Request{
		Method:   req.Method,
		Path:     path,
		Headers:  make(http.Header),
		Body:     bodyBytes,
		Metadata: make(map[string]interface{}),
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, interceptorReq)
	if err != nil {
		return nil, nil, err
	}

	if data, ok := interceptorReq.Metadata[passforge.CachedResponseMetadataKey].([]byte); ok {
		headers := make(http.Header)
		headers.Set("X-Cache", "HIT")

		return interceptorReq, &Response{
			StatusCode: http.StatusOK,
			Headers:    headers,
			Body:       data,
		}, nil
	}

	return interceptorReq, nil, nil
}

// runResponseInterceptors executes the response side of the chain. Failures
// are logged rather than surfaced; caching and metrics are best effort.
func (c *Client) runResponseInterceptors(ctx context.Context, interceptorReq *passforge.Request, resp *Response, respErr error) {
	if c.interceptors == nil || interceptorReq == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, interceptorReq, &passforge.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Error:      respErr,
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// isTimeout reports whether a transport error was caused by the request bound.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}

	var urlErr *url.Error

	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// statusText extracts the reason phrase from a status line like "404 Not
// Found", falling back to the standard text for the code.
func statusText(status string, code int) string {
	prefix := fmt.Sprintf("%d ", code)
	if strings.HasPrefix(status, prefix) {
		return strings.TrimPrefix(status, prefix)
	}

	return http.StatusText(code)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// PostQuery performs a POST request carrying both query parameters and a JSON
// body, as the bulk generation endpoint requires.
func (c *Client) PostQuery(ctx context.Context, path string, query url.Values, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Query:  query,
		Body:   body,
	})
}
