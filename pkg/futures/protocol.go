package futures

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"asterdex/internal/signer"
	"asterdex/internal/transport"
	"asterdex/pkg/core"
)

// apiKeyHeader identifies the account independently of the signature.
// The API key is never a signed parameter.
const apiKeyHeader = "X-MBX-APIKEY"

// Protocol builds, signs, and parses Asterdex futures API requests. The
// zero recvWindow omits the parameter so the exchange applies its default.
type Protocol struct {
	recvWindow time.Duration
	now        func() time.Time
}

// NewProtocol creates a Protocol with the given recvWindow tolerance.
func NewProtocol(recvWindow time.Duration) *Protocol {
	return &Protocol{
		recvWindow: recvWindow,
		now:        time.Now,
	}
}

// BuildRequest constructs the request for the given operation. It validates
// required parameters and sets path, method, weight, and auth flags.
func (p *Protocol) BuildRequest(op Operation, params *core.Params) (*core.Request, error) {
	switch op {
	case OpServerTime:
		return p.buildServerTimeRequest(), nil
	case OpKlines:
		return p.buildKlinesRequest(params)
	case OpAccountInfo:
		return p.buildAccountInfoRequest(), nil
	case OpPositionRisk:
		return p.buildPositionRiskRequest(params), nil
	case OpChangeLeverage:
		return p.buildChangeLeverageRequest(params)
	case OpPlaceOrder:
		return p.buildPlaceOrderRequest(params)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

// SignRequest injects timestamp and optional recvWindow, signs the
// canonical query string, and appends the signature as the final parameter.
// After this call the parameter set must not be mutated: the transmitted
// bytes have to match the signed bytes exactly.
func (p *Protocol) SignRequest(req *core.Request, creds *core.Credentials) error {
	if !creds.Complete() {
		return core.NewConfigurationError(core.ErrNoCredentials)
	}

	req.SetQuery("timestamp", strconv.FormatInt(p.now().UnixMilli(), 10))
	if p.recvWindow > 0 {
		req.SetQuery("recvWindow", strconv.FormatInt(p.recvWindow.Milliseconds(), 10))
	}

	payload := req.Query.Encode()
	req.SetQuery("signature", signer.Sign(creds.SecretKey, payload))
	req.SetHeader(apiKeyHeader, creds.APIKey)

	return nil
}

// ParseResponse decodes a transport response into v. Exchange-reported
// failures become API errors carrying the {code, msg} pair; invalid JSON on
// a success status becomes a decode error preserving the raw body.
func (p *Protocol) ParseResponse(resp *transport.Response, v any) error {
	if resp == nil {
		return core.NewError(core.ErrorTypeTransport, "nil response")
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := sonic.Unmarshal(resp.Body, &apiErr); err == nil && apiErr.Code != 0 {
			return core.NewAPIError(resp.StatusCode, apiErr.Code, apiErr.Msg)
		}
		return core.NewAPIError(resp.StatusCode, 0, string(resp.Body))
	}

	if err := sonic.Unmarshal(resp.Body, v); err != nil {
		return core.NewDecodeError(resp.Body, err)
	}
	return nil
}

func (p *Protocol) buildServerTimeRequest() *core.Request {
	return core.NewRequest(http.MethodGet, "/fapi/v1/time")
}

func (p *Protocol) buildKlinesRequest(params *core.Params) (*core.Request, error) {
	symbol, err := requiredParam(params, "symbol")
	if err != nil {
		return nil, err
	}

	interval, ok := params.Get("interval")
	if !ok || interval == "" {
		interval = "1m"
	}
	limit := 500
	if raw, ok := params.Get("limit"); ok {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	req := core.NewRequest(http.MethodGet, "/fapi/v1/klines")
	req.SetQuery("symbol", symbol)
	req.SetQuery("interval", interval)
	req.SetQuery("limit", strconv.Itoa(limit))
	req.SetWeight(klinesWeight(limit))

	return req, nil
}

func klinesWeight(limit int) int {
	switch {
	case limit < 100:
		return 1
	case limit < 500:
		return 2
	case limit <= 1000:
		return 5
	default:
		return 10
	}
}

func (p *Protocol) buildAccountInfoRequest() *core.Request {
	req := core.NewRequest(http.MethodGet, "/fapi/v2/account")
	req.SetSigned(true)
	req.SetWeight(5)
	return req
}

func (p *Protocol) buildPositionRiskRequest(params *core.Params) *core.Request {
	req := core.NewRequest(http.MethodGet, "/fapi/v2/positionRisk")
	req.SetSigned(true)
	req.SetWeight(5)

	if symbol, ok := params.Get("symbol"); ok && symbol != "" {
		req.SetQuery("symbol", symbol)
	}

	return req
}

func (p *Protocol) buildChangeLeverageRequest(params *core.Params) (*core.Request, error) {
	symbol, err := requiredParam(params, "symbol")
	if err != nil {
		return nil, err
	}
	leverageRaw, err := requiredParam(params, "leverage")
	if err != nil {
		return nil, err
	}
	leverage, err := strconv.Atoi(leverageRaw)
	if err != nil || leverage < 1 || leverage > 125 {
		return nil, fmt.Errorf("leverage must be an integer between 1 and 125, got %q", leverageRaw)
	}

	req := core.NewRequest(http.MethodPost, "/fapi/v1/leverage")
	req.SetQuery("symbol", symbol)
	req.SetQuery("leverage", strconv.Itoa(leverage))
	req.SetSigned(true)
	req.SetTrading(true)

	return req, nil
}

func (p *Protocol) buildPlaceOrderRequest(params *core.Params) (*core.Request, error) {
	symbol, err := requiredParam(params, "symbol")
	if err != nil {
		return nil, err
	}
	side, err := requiredParam(params, "side")
	if err != nil {
		return nil, err
	}
	orderType, err := requiredParam(params, "type")
	if err != nil {
		return nil, err
	}
	quantity, err := requiredParam(params, "quantity")
	if err != nil {
		return nil, err
	}

	req := core.NewRequest(http.MethodPost, "/fapi/v1/order")
	req.SetQuery("symbol", symbol)
	req.SetQuery("side", side)
	req.SetQuery("type", orderType)
	req.SetQuery("quantity", quantity)
	req.SetSigned(true)
	req.SetTrading(true)

	price, hasPrice := params.Get("price")
	if orderType == TypeLimit.String() {
		if !hasPrice || price == "" {
			return nil, fmt.Errorf("price is required for %s orders", TypeLimit)
		}
		tif, ok := params.Get("timeInForce")
		if !ok || tif == "" {
			tif = GTC.String()
		}
		req.SetQuery("price", price)
		req.SetQuery("timeInForce", tif)
	} else if hasPrice && price != "" {
		req.SetQuery("price", price)
	}

	if reduceOnly, ok := params.Get("reduceOnly"); ok && reduceOnly != "" {
		req.SetQuery("reduceOnly", reduceOnly)
	}
	if clientOrderID, ok := params.Get("newClientOrderId"); ok && clientOrderID != "" {
		req.SetQuery("newClientOrderId", clientOrderID)
	}

	return req, nil
}

func requiredParam(params *core.Params, key string) (string, error) {
	val, ok := params.Get(key)
	if !ok || val == "" {
		return "", fmt.Errorf("missing required parameter: %s", key)
	}
	return val, nil
}

type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
