// Package resilience provides the shared HTTP transport for Digitransit API
// calls, combining per-provider circuit breaking with bounded retry backoff.
package resilience

import (
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the provider's circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// ClientConfig holds configuration for a provider transport.
type ClientConfig struct {
	// Name identifies the provider (geocoding, routing).
	Name string

	// Timeout is the per-attempt HTTP timeout. Default: 10s.
	Timeout time.Duration

	// MaxRetries bounds retry attempts after the first call. Default: 3.
	MaxRetries uint64

	// InitialInterval is the first backoff delay. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the backoff delay. Default: 5s.
	MaxInterval time.Duration

	// CircuitBreaker configures the breaker. Nil uses defaults for Name.
	CircuitBreaker *CircuitBreakerConfig

	// Registry, when set, receives success/failure records for the
	// provider so the ops status endpoint can report its health.
	Registry *Registry
}

// DefaultClientConfig returns sensible defaults for a named provider.
func DefaultClientConfig(name string) ClientConfig {
	cb := DefaultCircuitBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		CircuitBreaker:  &cb,
	}
}

// Client is an HTTP client that shields a single upstream provider. A
// request is retried on network errors and 5xx responses; once the
// transport gives up the error propagates to the caller unchanged, so
// each logical call stays all-or-nothing.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	config     ClientConfig
}

// NewClient creates a new provider transport.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	cbCfg := cfg.CircuitBreaker
	if cbCfg == nil {
		def := DefaultCircuitBreakerConfig(cfg.Name)
		cbCfg = &def
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    NewCircuitBreaker[*http.Response](*cbCfg),
		config:     cfg,
	}
	if cfg.Registry != nil {
		cfg.Registry.Register(cfg.Name, c)
	}
	return c
}

// Name returns the provider name this client shields.
func (c *Client) Name() string {
	return c.config.Name
}

// Do executes the request through the circuit breaker, retrying transient
// failures with exponential backoff. A 5xx response that survives all
// retries is returned to the caller as-is for status handling.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	operation := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			r, doErr := c.httpClient.Do(req.Clone(ctx))
			if doErr != nil {
				return nil, doErr
			}
			// 5xx counts as a failure so the breaker can trip.
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				lastResp = resp
			}
			return err
		}

		lastResp = resp
		return nil
	}

	err := backoff.Retry(operation, policy)
	if err != nil {
		c.record(err)
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}

	c.record(nil)
	return lastResp, nil
}

func (c *Client) record(err error) {
	if c.config.Registry == nil {
		return
	}
	if err != nil {
		c.config.Registry.RecordFailure(c.config.Name, err)
		return
	}
	c.config.Registry.RecordSuccess(c.config.Name)
}

// ServerError represents an HTTP 5xx response from the provider.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// State returns the current circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// Counts returns the current circuit breaker counts.
func (c *Client) Counts() gobreaker.Counts {
	return c.breaker.Counts()
}
