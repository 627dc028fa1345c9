// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// string means the call goes out anonymous.
type TokenSource interface {
	Token() string
}

// Client is the shared HTTP plumbing every resource client is built on. It
// owns the base URL, attaches the session token, throttles outbound calls and
// decodes the backend's response envelope. One request per user action, no
// retries: a failed submission is reported and the drafted input stays intact
// for the user to resubmit.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	tracer     trace.Tracer
}

// NewClient creates a client for the backend at baseURL. tokens may be nil
// for a purely anonymous client.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
		tracer:     otel.Tracer("mediastore/api"),
	}
}

// Do performs one request against the backend. body (if non-nil) is JSON
// encoded; on a successful envelope the data field is decoded into out (if
// non-nil). A non-ER0000 envelope or a non-2xx status becomes an *APIError;
// anything below that (DNS, refused connection, timeout) is returned wrapped
// as a plain transport error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("%s %s", method, path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	err := c.do(ctx, method, path, body, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{HTTPStatus: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	// The backend reports business failures both through HTTP status and
	// through the envelope's errorCode; either one means rejection.
	if resp.StatusCode >= 400 || !env.OK() {
		return &APIError{Code: env.ErrorCode, Message: env.Message, HTTPStatus: resp.StatusCode}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// Get is shorthand for Do with no request body.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}
