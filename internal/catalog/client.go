package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ClientConfig holds the settings of the remote GraphQL catalog.
type ClientConfig struct {
	Endpoint        string
	TimeoutMs       int
	MaxRetries      int
	RatePerSecond   float64 // 0 disables client-side rate limiting
	Burst           int
	BreakerFailures uint32 // consecutive failures that open the breaker; 0 disables it
	BreakerCooldown time.Duration
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Endpoint:        DefaultEndpoint,
		TimeoutMs:       8000,
		MaxRetries:      1,
		RatePerSecond:   4,
		Burst:           4,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// Client talks to a GraphQL endpoint that exposes one root field per category.
type Client struct {
	cfg      ClientConfig
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	observer Observer
}

var _ Catalog = (*Client)(nil)

// NewClient creates a catalog client for cfg.Endpoint.
func NewClient(cfg ClientConfig, observer Observer) *Client {
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		limiter:  rate.NewLimiter(rate.Inf, 0),
		observer: observerOrNoop(observer),
	}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	if cfg.BreakerFailures > 0 {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "catalog",
			MaxRequests: 1,
			Timeout:     cfg.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailures
			},
			// Caller cancellations say nothing about the endpoint's health.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		})
	}
	return c
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors"`
}

type nameRow struct {
	Name string `json:"name"`
}

// ListNames fetches every name in category.
func (c *Client) ListNames(ctx context.Context, category string) ([]string, error) {
	start := time.Now()
	event := LookupEvent{RequestID: uuid.NewString(), Op: OpListNames, Category: category, Source: "remote"}

	names, attempts, err := c.listNames(ctx, category)
	c.observe(ctx, event, start, attempts, err)
	return names, err
}

func (c *Client) listNames(ctx context.Context, category string) ([]string, int, error) {
	q, err := QueryFor(category)
	if err != nil {
		return nil, 0, err
	}
	var rows []nameRow
	attempts, err := c.query(ctx, gqlRequest{Query: q.AllNames}, q.Field, &rows)
	if err != nil {
		return nil, attempts, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names, attempts, nil
}

// GetDetails fetches the first entry in category named name.
func (c *Client) GetDetails(ctx context.Context, category, name string) (Details, error) {
	start := time.Now()
	event := LookupEvent{RequestID: uuid.NewString(), Op: OpGetDetails, Category: category, Name: name, Source: "remote"}

	d, attempts, err := c.getDetails(ctx, category, name)
	c.observe(ctx, event, start, attempts, err)
	return d, err
}

func (c *Client) getDetails(ctx context.Context, category, name string) (Details, int, error) {
	q, err := QueryFor(category)
	if err != nil {
		return Details{}, 0, err
	}
	var rows []Details
	req := gqlRequest{Query: q.Details, Variables: map[string]any{"name": name}}
	attempts, err := c.query(ctx, req, q.Field, &rows)
	if err != nil {
		return Details{}, attempts, err
	}
	if len(rows) == 0 {
		return Details{}, attempts, fmt.Errorf("%s %q: %w", category, name, ErrNotFound)
	}
	return rows[0], attempts, nil
}

// query runs body with retries and decodes data[field] into out.
// It returns the number of attempts made.
func (c *Client) query(ctx context.Context, body gqlRequest, field string, out any) (int, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 0
	for i := 0; i < 1+c.cfg.MaxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}
		attempts++

		raw, err := c.execute(ctx, body)
		if err == nil {
			if err := decodeField(raw, field, out); err != nil {
				return attempts, err
			}
			return attempts, nil
		}
		lastErr = err

		// Don't retry on cancellation, timeout, an open breaker, or GraphQL errors.
		if ctx.Err() != nil || errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrInvalidResponse) {
			break
		}
	}

	switch {
	case parent.Err() != nil:
		return attempts, parent.Err()
	case ctx.Err() != nil:
		return attempts, ErrTimeout
	case errors.Is(lastErr, ErrCircuitOpen), errors.Is(lastErr, ErrInvalidResponse):
		return attempts, lastErr
	case isConnectionError(lastErr):
		return attempts, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return attempts, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

// execute sends one request through the breaker.
func (c *Client) execute(ctx context.Context, body gqlRequest) (map[string]json.RawMessage, error) {
	if c.breaker == nil {
		return c.doRequest(ctx, body)
	}
	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	if err != nil {
		return nil, err
	}
	return res.(map[string]json.RawMessage), nil
}

func (c *Client) doRequest(ctx context.Context, body gqlRequest) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp gqlResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidResponse, err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(msgs, "; "))
	}
	return resp.Data, nil
}

func decodeField(data map[string]json.RawMessage, field string, out any) error {
	raw, ok := data[field]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("%w: missing field %q", ErrInvalidResponse, field)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrInvalidResponse, field, err)
	}
	return nil
}

func (c *Client) observe(ctx context.Context, event LookupEvent, start time.Time, attempts int, err error) {
	event.LatencyMs = time.Since(start).Milliseconds()
	event.Attempts = attempts
	event.Success = err == nil
	event.ErrorCode = errorCode(err)
	c.observer.OnLookup(ctx, event)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
