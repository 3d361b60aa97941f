// client.go
// ---------
// The client.go file contains the core Client struct and its methods.
// This is the main entry point of the SDK for users.
//
// Every call goes through one pipeline: the outgoing JSON body has
// its keys recased camelCase -> snake_case, the incoming JSON body is
// revived (timestamps, decimal strings) and recased snake_case ->
// camelCase before the caller sees it, a 401 fires the shared token
// refresh as a side effect, and failed responses are normalized into
// *APIError when the backend sent its structured shape.
package tradebridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Client struct {
	cfg     Config
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
	metrics *clientMetrics
	exec    *executor
	refresh singleflight.Group
	session session
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithLogger attaches a structured logger. The default is a nop
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying HTTP client. The session
// cookies live in its jar, so the given client should carry one.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithMetrics registers request metrics with the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = newClientMetrics(reg) }
}

func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL not configured: set Config.BaseURL or %s", EnvBaseURL)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		cfg:     cfg,
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: cfg.Timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.exec = &executor{maxRetries: cfg.MaxRetries, baseBackoff: cfg.BaseBackoff, logger: c.logger}
	return c, nil
}

// Do sends one request through the pipeline and returns the
// normalized response. On a non-2xx status both the response and an
// error are returned, so callers can still inspect the body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: encode body: %w", req.Method, req.Endpoint, err)
	}

	reqURL := c.endpointURL(req.Endpoint, req.Query)
	requestID := ulid.Make().String()
	start := time.Now()

	httpResp, raw, err := c.exec.do(ctx, func() (*http.Response, []byte, error) {
		return c.send(ctx, req, reqURL, body, contentType, requestID)
	})
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method), zap.String("endpoint", req.Endpoint),
			zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Endpoint, err)
	}

	c.metrics.observe(req.Method, httpResp.StatusCode, time.Since(start))
	c.logger.Debug("request completed",
		zap.String("method", req.Method), zap.String("endpoint", req.Endpoint),
		zap.String("request_id", requestID), zap.Int("status", httpResp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	headers := make(map[string]string, len(httpResp.Header))
	for k, vals := range httpResp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[0]
		}
	}

	data := raw
	if isJSONContentType(headers["content-type"]) && len(raw) > 0 {
		if recoded, recErr := recodeResponseBody(raw); recErr == nil {
			data = recoded
		}
	}
	res := &Response{StatusCode: httpResp.StatusCode, Headers: headers, Data: data}

	// The refresh is a side effect of seeing the 401; the response
	// still goes back to the caller as-is. The refresh call itself is
	// exempt to avoid feeding back into the interceptor.
	if httpResp.StatusCode == http.StatusUnauthorized && req.Endpoint != refreshEndpoint {
		c.triggerRefresh()
	}

	if len(headers["set-cookie"]) > 0 {
		c.captureSession()
	}

	if httpResp.StatusCode >= 400 {
		generic := &HTTPError{
			StatusCode: httpResp.StatusCode,
			Method:     req.Method,
			Endpoint:   req.Endpoint,
			Body:       raw,
		}
		return res, normalizeError(generic)
	}
	return res, nil
}

func (c *Client) send(ctx context.Context, req *Request, reqURL string, body []byte, contentType, requestID string) (*http.Response, []byte, error) {
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.Method, reqURL, rd)
	if err != nil {
		return nil, nil, err
	}
	for k, v := range req.Headers {
		hr.Header.Set(k, v)
	}
	if contentType != "" {
		hr.Header.Set("Content-Type", contentType)
	}
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set("User-Agent", c.cfg.UserAgent)
	hr.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(hr)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, data, nil
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + apiPrefix + endpoint
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// encodeBody prepares the outgoing payload. JSON bodies are marshaled
// and recased to the wire format; raw bodies (uploads) pass through
// with their declared content type.
func encodeBody(req *Request) ([]byte, string, error) {
	if req.Raw != nil {
		ct := req.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		return req.Raw, ct, nil
	}
	if req.Body == nil {
		return nil, "", nil
	}
	enc, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	tree, err := decodeJSON(enc)
	if err != nil {
		return nil, "", err
	}
	out, err := json.Marshal(CamelToSnakeKeys(tree))
	if err != nil {
		return nil, "", err
	}
	return out, "application/json", nil
}

// recodeResponseBody revives known wire fields and recases all keys
// to camelCase. Revival runs first, against the snake_case names
// actually present in the parsed JSON.
func recodeResponseBody(raw []byte) ([]byte, error) {
	tree, err := decodeJSON(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(SnakeToCamelKeys(ReviveValues(tree)))
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
