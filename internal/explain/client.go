// Package explain calls an optional narrative-explanation service with a
// finished report and returns free text. Failures here are always
// recoverable: the computed reports are never touched.
package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultPrompt is used when the caller supplies no prompt of its own.
const DefaultPrompt = "Explain this pharmacogenomic drug-risk report in plain language for a clinician."

// Config holds client settings.
type Config struct {
	URL     string        // explanation service endpoint
	Timeout time.Duration // per-request timeout, default 30s
}

// Client posts serialized reports to the explanation service. A circuit
// breaker keeps a misbehaving service from stalling batch runs.
type Client struct {
	url        string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient creates an explanation-service client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "explanation-service",
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}),
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for breaker and request diagnostics.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

type explainRequest struct {
	Report any    `json:"report"`
	Prompt string `json:"prompt"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

// Explain sends the serialized report and prompt to the service and
// returns its free-text explanation. Any failure (network, non-success
// status, open breaker) comes back as a *ServiceError; the report passed
// in is never modified.
func (c *Client) Explain(ctx context.Context, report any, prompt string) (string, error) {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	body, err := json.Marshal(explainRequest{Report: report, Prompt: prompt})
	if err != nil {
		return "", &ServiceError{Message: fmt.Sprintf("encode request: %v", err)}
	}

	text, err := c.breaker.Execute(func() (any, error) {
		return c.post(ctx, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &ServiceError{Message: "explanation service unavailable: circuit open"}
		}
		var serr *ServiceError
		if errors.As(err, &serr) {
			return "", serr
		}
		return "", &ServiceError{Message: err.Error()}
	}

	return text.(string), nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &ServiceError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ServiceError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("explanation service returned non-success status",
			zap.Int("status", resp.StatusCode))
		return "", &ServiceError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("explanation service returned status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ServiceError{Message: fmt.Sprintf("read response: %v", err)}
	}

	var parsed explainResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &ServiceError{Message: fmt.Sprintf("decode response: %v", err)}
	}

	return parsed.Explanation, nil
}

// ServiceError reports an explanation-service failure. It is always
// distinct from analysis errors so callers can keep their reports.
type ServiceError struct {
	Status  int // HTTP status, 0 when the request never completed
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
