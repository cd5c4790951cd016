// Package client talks to the remote summarization service.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"sumai-cli/internal/logger"
	"sumai-cli/pkg/models"
)

const userAgent = "sumai-cli"

// Client performs single, unretried round trips against the summarization endpoint
type Client struct {
	http     *resty.Client
	endpoint string
	log      logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l
		c.http.SetLogger(restyLogger{l})
	}
}

// WithDebug dumps requests and responses through the logger
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.http.SetDebug(debug)
	}
}

type summarizeRequest struct {
	Text    string         `json:"text"`
	Tone    models.Tone    `json:"tone"`
	Length  models.Length  `json:"length"`
	Purpose models.Purpose `json:"purpose"`
}

type summarizeResponse struct {
	Summary *string `json:"summary"`
}

type errorResponse struct {
	Detail any `json:"detail"`
}

// HealthStatus is the body of the service's health route
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Device      string `json:"device"`
	Message     string `json:"message"`
}

// New creates a client for endpoint. timeout bounds every request; zero means no bound.
func New(endpoint string, timeout time.Duration, opts ...Option) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	c := &Client{
		http:     rc,
		endpoint: endpoint,
		log:      logger.GetDefault(),
	}
	c.http.SetLogger(restyLogger{c.log})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestLogger prefers a logger carried by ctx over the client's own
func (c *Client) requestLogger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(logger.LoggerCtxKey).(logger.Logger); ok && l != nil {
		return l
	}
	return c.log
}

// Summarize posts text and opts to the service and returns the summary text.
// Failures are *RequestError values classified by Kind.
func (c *Client) Summarize(ctx context.Context, text string, opts models.Options) (string, error) {
	body, err := json.Marshal(summarizeRequest{
		Text:    text,
		Tone:    opts.Tone,
		Length:  opts.Length,
		Purpose: opts.Purpose,
	})
	if err != nil {
		return "", &RequestError{Kind: KindUnknown, Cause: fmt.Errorf("failed to encode request: %w", err)}
	}

	requestID := uuid.NewString()
	log := c.requestLogger(ctx).With("request_id", requestID)
	log.Debug("sending summarize request",
		"endpoint", c.endpoint,
		"chars", len(text),
		"tone", opts.Tone,
		"length", opts.Length,
		"purpose", opts.Purpose)

	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", requestID).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		log.Warn("summarization service unreachable", "error", err)
		return "", &RequestError{Kind: KindNetwork, Cause: err}
	}

	status := resp.StatusCode()
	log.Debug("summarize response received", "status", status, "elapsed", time.Since(started))

	if !resp.IsSuccess() {
		reqErr := &RequestError{
			Kind:       classifyStatus(status),
			StatusCode: status,
			Detail:     extractDetail(resp.Body()),
		}
		log.Warn("summarize request failed", "status", status, "detail", reqErr.Detail)
		return "", reqErr
	}

	var decoded summarizeResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", &RequestError{Kind: KindUnknown, Cause: fmt.Errorf("invalid response body: %w", err)}
	}
	if decoded.Summary == nil {
		return "", &RequestError{Kind: KindUnknown, Cause: errors.New("response did not contain a summary")}
	}

	return *decoded.Summary, nil
}

// Health queries the service's health route, which lives at /health on the endpoint's host
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	healthURL, err := HealthURL(c.endpoint)
	if err != nil {
		return nil, &RequestError{Kind: KindUnknown, Cause: err}
	}

	resp, err := c.http.R().SetContext(ctx).Get(healthURL)
	if err != nil {
		return nil, &RequestError{Kind: KindNetwork, Cause: err}
	}
	if !resp.IsSuccess() {
		return nil, &RequestError{
			Kind:       classifyStatus(resp.StatusCode()),
			StatusCode: resp.StatusCode(),
			Detail:     extractDetail(resp.Body()),
		}
	}

	var status HealthStatus
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return nil, &RequestError{Kind: KindUnknown, Cause: fmt.Errorf("invalid health body: %w", err)}
	}
	return &status, nil
}

// HealthURL derives the health route from the summarize endpoint
func HealthURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	u.Path = "/health"
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// extractDetail pulls a FastAPI-style {"detail": ...} explanation out of an error body
func extractDetail(body []byte) string {
	var decoded errorResponse
	if len(body) == 0 || json.Unmarshal(body, &decoded) != nil || decoded.Detail == nil {
		return ""
	}
	if s, ok := decoded.Detail.(string); ok {
		return s
	}
	raw, err := json.Marshal(decoded.Detail)
	if err != nil {
		return ""
	}
	return string(raw)
}

// restyLogger routes resty's own diagnostics into our logger
type restyLogger struct {
	l logger.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error(fmt.Sprintf(format, v...)) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn(fmt.Sprintf(format, v...)) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug(fmt.Sprintf(format, v...)) }
