// Package upstream is the typed client for the aggregator's REST API. All
// backend state (items, users, coupons, bookings) is owned by the aggregator;
// this service only orchestrates calls against it.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// GenericErrorMessage is shown when a transport failure leaves us without a
// backend-provided message.
const GenericErrorMessage = "Something went wrong. Please try again."

// APIError carries a non-2xx backend response. Message is the backend's
// {message} field, surfaced verbatim as the user-visible error text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client talks to the aggregator backend.
type Client struct {
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
}

// NewClient creates a new upstream client. No explicit per-call deadline is
// layered on top of the HTTP client's timeout.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		logger:  logger,
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do issues a single request. token, query and body may be zero-valued.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message == "" {
			errBody.Message = GenericErrorMessage
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

// get issues an idempotent GET with a bounded exponential-backoff retry: two
// extra attempts on transport failures and 5xx responses. Non-idempotent
// calls (POST/PATCH) go through do directly and are never retried.
func (c *Client) get(ctx context.Context, path string, query url.Values, token string, out any) error {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, query, token, nil, out)
		if err == nil {
			return nil
		}
		if apiErr, ok := AsAPIError(err); ok {
			if apiErr.StatusCode >= 500 {
				return retry.RetryableError(err)
			}
			return err
		}
		// Transport-level failure.
		return retry.RetryableError(err)
	})
}
