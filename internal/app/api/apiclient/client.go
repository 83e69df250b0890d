// Package apiclient is the single fetch client every API slice goes through.
//
// The backend wraps every response in an envelope:
//
//	{ "status": true|false, "message": "...", "data": <payload> }
//
// Do sends one request, unwraps the envelope and converts any failure into
// an *APIError so that handlers can surface a message with ErrorMessage.
// There are no retries.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/metrics"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config configures the client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Metrics   *metrics.Metrics
}

// Client wraps a resty client bound to the backend base URL.
type Client struct {
	r       *resty.Client
	metrics *metrics.Metrics
	log     *zap.Logger
}

// New builds a Client. A zero Timeout defaults to 15s.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "learnadmin"
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)
	return &Client{r: rc, metrics: cfg.Metrics, log: logger}
}

// Request describes one backend call.
type Request struct {
	// Name labels the call in logs and metrics ("courses.list").
	Name   string
	Method string
	// Path may contain {param} placeholders filled from Params.
	Path   string
	Params map[string]string
	Query  url.Values
	Body   any
	Token  string
}

// Envelope is the backend's response wrapper.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do executes req and returns the decoded envelope. Non-2xx responses and
// envelopes with status=false yield *APIError.
func (c *Client) Do(ctx context.Context, req Request) (*Envelope, error) {
	path, err := ExpandPath(req.Path, req.Params)
	if err != nil {
		return nil, err
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	rr := c.r.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())
	if req.Token != "" {
		rr.SetAuthToken(req.Token)
	}
	if len(req.Query) > 0 {
		rr.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		rr.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	start := time.Now()
	resp, err := rr.Execute(method, path)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.ObserveAPI(req.Name, 0, elapsed)
		c.log.Warn("backend request failed",
			zap.String("endpoint", req.Name),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &APIError{Err: err}
	}

	status := resp.StatusCode()
	c.metrics.ObserveAPI(req.Name, status, elapsed)
	c.log.Debug("backend request",
		zap.String("endpoint", req.Name),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed))

	return decode(status, resp.Body())
}

// Raw exposes the underlying resty client for multipart uploads.
func (c *Client) Raw() *resty.Client {
	return c.r
}

func decode(status int, body []byte) (*Envelope, error) {
	var env Envelope
	decodeErr := json.Unmarshal(body, &env)

	if status < 200 || status > 299 {
		e := &APIError{Status: status}
		if decodeErr == nil {
			e.Message = env.Message
			e.Payload = &env
		} else {
			e.Body = strings.TrimSpace(string(body))
		}
		return nil, e.classify()
	}
	if decodeErr != nil {
		return nil, &APIError{Status: status, Err: fmt.Errorf("decode envelope: %w", decodeErr)}
	}
	if !env.Status {
		return nil, &APIError{Status: status, Message: env.Message, Payload: &env}
	}
	return &env, nil
}

// DecodeData unmarshals the envelope's data into out.
func DecodeData(env *Envelope, out any) error {
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// ExpandPath substitutes {name} placeholders with path-escaped values.
// A placeholder without a value, or with an empty value, is an error.
func ExpandPath(path string, params map[string]string) (string, error) {
	var b strings.Builder
	for {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			b.WriteString(path)
			return b.String(), nil
		}
		end := strings.IndexByte(path[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("apiclient: unterminated placeholder in %q", path)
		}
		name := path[open+1 : open+end]
		val := params[name]
		if val == "" {
			return "", fmt.Errorf("apiclient: missing path param %q", name)
		}
		b.WriteString(path[:open])
		b.WriteString(url.PathEscape(val))
		path = path[open+end+1:]
	}
}

// Ping checks that the backend answers at all (any HTTP status counts).
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.r.R().SetContext(ctx).Head("/")
	if err != nil {
		return err
	}
	return nil
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
