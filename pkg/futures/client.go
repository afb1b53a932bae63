package futures

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"asterdex/internal/circuitbreaker"
	"asterdex/internal/ratelimit"
	"asterdex/internal/transport"
	"asterdex/pkg/core"
)

// Client is the public API surface for the Asterdex futures REST API.
// Credentials are immutable after construction; each operation performs at
// most one blocking network call.
type Client struct {
	config    *core.Config
	protocol  *Protocol
	transport transport.Transport
	limiter   *ratelimit.Limiter
	breaker   *circuitbreaker.Breaker
	validator *validator.Validate
	logger    zerolog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds construction options for the Client.
type Options struct {
	Transport transport.Transport
	Logger    zerolog.Logger
}

// WithTransport substitutes the transport realization. The curl-backed
// transport and the native HTTP transport are interchangeable here.
func WithTransport(t transport.Transport) Option {
	return func(o *Options) {
		o.Transport = t
	}
}

// WithLogger sets the logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// New creates a Client from the given configuration. The default transport
// is the native HTTP client bounded by config.Timeout.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.Transport == nil {
		options.Transport = transport.NewHTTPTransport(config.Timeout,
			transport.WithHTTPLogger(options.Logger))
	}

	var rl *ratelimit.Limiter
	if config.RateLimitRequests > 0 {
		rl = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	}

	var cb *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		cb = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		})
	}

	return &Client{
		config:    config,
		protocol:  NewProtocol(config.RecvWindow),
		transport: options.Transport,
		limiter:   rl,
		breaker:   cb,
		validator: validator.New(),
		logger:    options.Logger,
	}, nil
}

// Close releases transport resources if the transport holds any.
func (c *Client) Close() error {
	if closer, ok := c.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// GetServerTime retrieves the exchange server time. Public endpoint.
func (c *Client) GetServerTime(ctx context.Context) (*ServerTime, error) {
	req, err := c.protocol.BuildRequest(OpServerTime, core.NewParams())
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var st ServerTime
	if err := c.do(ctx, req, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetKlines retrieves candlestick data. Public endpoint. Interval defaults
// to "1m" and limit to 500 when zero-valued.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error) {
	params := core.NewParams().Set("symbol", symbol)
	if interval != "" {
		params.Set("interval", interval)
	}
	if limit > 0 {
		params.SetInt("limit", limit)
	}

	req, err := c.protocol.BuildRequest(OpKlines, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var klines []Kline
	if err := c.do(ctx, req, &klines); err != nil {
		return nil, err
	}
	return klines, nil
}

// GetAccountInfo retrieves account balances and positions. Signed endpoint.
func (c *Client) GetAccountInfo(ctx context.Context) (*Account, error) {
	req, err := c.protocol.BuildRequest(OpAccountInfo, core.NewParams())
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var account Account
	if err := c.do(ctx, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetPositionRisk retrieves position risk, optionally filtered by symbol
// (empty string returns all positions). Signed endpoint.
func (c *Client) GetPositionRisk(ctx context.Context, symbol string) ([]PositionRisk, error) {
	params := core.NewParams()
	if symbol != "" {
		params.Set("symbol", symbol)
	}

	req, err := c.protocol.BuildRequest(OpPositionRisk, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var positions []PositionRisk
	if err := c.do(ctx, req, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// ChangeLeverage sets the initial leverage for a symbol. Signed trading
// endpoint, refused unless trading is enabled in the configuration.
func (c *Client) ChangeLeverage(ctx context.Context, symbol string, leverage int) (*LeverageResponse, error) {
	params := core.NewParams().
		Set("symbol", symbol).
		SetInt("leverage", leverage)

	req, err := c.protocol.BuildRequest(OpChangeLeverage, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var resp LeverageResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaceOrder submits a new order. Signed trading endpoint, refused unless
// trading is enabled in the configuration.
func (c *Client) PlaceOrder(ctx context.Context, order *OrderRequest) (*Order, error) {
	if err := c.validator.Struct(order); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	params := core.NewParams().
		Set("symbol", order.Symbol).
		Set("side", order.Side.String()).
		Set("type", order.Type.String()).
		Set("quantity", order.Quantity.Text('f'))

	if order.Price != nil {
		params.Set("price", order.Price.Text('f'))
	}
	if order.Type == TypeLimit {
		params.Set("timeInForce", order.TimeInForce.String())
	}
	if order.ReduceOnly {
		params.Set("reduceOnly", strconv.FormatBool(order.ReduceOnly))
	}
	if order.ClientOrderID != "" {
		params.Set("newClientOrderId", order.ClientOrderID)
	}

	req, err := c.protocol.BuildRequest(OpPlaceOrder, params)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var placed Order
	if err := c.do(ctx, req, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}

// do runs the full pipeline for one request: pre-flight gates, signing,
// pacing, dispatch, and decoding. Pre-flight failures return before any
// transport activity.
func (c *Client) do(ctx context.Context, req *core.Request, v any) error {
	if req.Trading && !c.config.TradingEnabled {
		return core.NewConfigurationError(core.ErrTradingDisabled)
	}

	if req.Signed {
		if err := c.protocol.SignRequest(req, c.config.Credentials); err != nil {
			return err
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, req.Weight); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	if c.breaker != nil && !c.breaker.Allow() {
		return core.NewError(core.ErrorTypeTransport, core.ErrCircuitBreakerOpen.Error())
	}

	url := c.config.BaseURL + req.Path
	body := ""
	if encoded := req.Query.Encode(); encoded != "" {
		if req.Method == http.MethodGet {
			url += "?" + encoded
		} else {
			body = encoded
		}
	}

	resp, err := c.transport.Execute(ctx, req.Method, url, req.Headers, body)
	if c.breaker != nil {
		c.breaker.Record(err == nil)
	}
	if err != nil {
		return err
	}

	return c.protocol.ParseResponse(resp, v)
}
