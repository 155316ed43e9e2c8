// Package client is a small HTTP client for the medguide JSON API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"medguide/internal/diagnosis"
	"medguide/internal/domain"
	"medguide/internal/service"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("medguide API error: %s (status: %d)", e.Message, e.StatusCode)
}

type errorEnvelope struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// New creates a client. GET requests are retried up to 3 times on transport
// errors and 5xx answers.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(100*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil || r.Request == nil {
				return false
			}
			return r.Request.Method == http.MethodGet && r.StatusCode() >= 500
		})
	return &Client{httpClient: c, logger: logger}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var apiErr errorEnvelope
	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("medguide API call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := apiErr.Message
		if msg == "" {
			msg = resp.Status()
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}

func (c *Client) Health(ctx context.Context) (map[string]string, error) {
	out := map[string]string{}
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMedicines(ctx context.Context) ([]domain.MedicineSummary, error) {
	var out []domain.MedicineSummary
	if err := c.do(ctx, http.MethodGet, "/api/medicines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SymptomCheck posts to /api/symptom-check. Each call adds a log row on the server.
func (c *Client) SymptomCheck(ctx context.Context, req service.SymptomCheckRequest) (*service.SymptomCheckResponse, error) {
	var out service.SymptomCheckResponse
	if err := c.do(ctx, http.MethodPost, "/api/symptom-check", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Recommend(ctx context.Context, req service.RecommendationRequest) (*diagnosis.Recommendation, error) {
	var out diagnosis.Recommendation
	if err := c.do(ctx, http.MethodPost, "/api/recommendations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
