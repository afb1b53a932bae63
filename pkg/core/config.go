package core

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// ProductionURL is the Asterdex futures REST endpoint.
const ProductionURL = "https://fapi.asterdex.com"

// Config contains all configuration for a futures client. Credentials are
// optional; public endpoints work without them.
type Config struct {
	BaseURL     string       `json:"base_url" validate:"required,url"`
	Credentials *Credentials `json:"credentials,omitempty"`

	// Timeout is the wall-clock bound on a single call.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	// RecvWindow is sent as the recvWindow parameter of signed requests
	// when positive; zero omits it so the exchange applies its default.
	RecvWindow time.Duration `json:"recv_window" validate:"min=0"`

	// TradingEnabled gates state-changing endpoints (leverage change,
	// order placement). Off by default so a misconfigured demo cannot
	// place live orders.
	TradingEnabled bool `json:"trading_enabled"`

	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=1"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=1ms"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout"`
}

// DefaultConfig returns a Config with sensible defaults: production base
// URL, 10s timeout, trading disabled, 2400 weight-units/min rate limit, and
// a 5-failure/2-success/30s circuit breaker.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: ProductionURL,
		Timeout: 10 * time.Second,

		RateLimitRequests: 2400,
		RateLimitPeriod:   time.Minute,

		CircuitBreakerEnabled:          true,
		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

var validate = validator.New()

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithTimeout sets the per-call timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRecvWindow sets the recvWindow tolerance and returns the config for chaining.
func (c *Config) WithRecvWindow(window time.Duration) *Config {
	c.RecvWindow = window
	return c
}

// WithTrading enables or disables trading endpoints and returns the config
// for chaining.
func (c *Config) WithTrading(enabled bool) *Config {
	c.TradingEnabled = enabled
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}
