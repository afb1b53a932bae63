package futures

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// Side represents the direction of an order.
type Side int

const (
	// SideBuy indicates an order to purchase the asset.
	SideBuy Side = iota
	// SideSell indicates an order to sell the asset.
	SideSell
)

// String returns the wire representation ("BUY" or "SELL").
func (s Side) String() string {
	return [...]string{"BUY", "SELL"}[s]
}

// OrderType represents how an order executes.
type OrderType int

const (
	// TypeMarket executes immediately at the best available price.
	TypeMarket OrderType = iota
	// TypeLimit executes at the specified price or better.
	TypeLimit
	// TypeStop triggers a limit order when the stop price is reached.
	TypeStop
	// TypeStopMarket triggers a market order when the stop price is reached.
	TypeStopMarket
	// TypeTakeProfit triggers a limit order at the profit target.
	TypeTakeProfit
	// TypeTakeProfitMarket triggers a market order at the profit target.
	TypeTakeProfitMarket
)

// String returns the wire representation of the order type.
func (t OrderType) String() string {
	return [...]string{"MARKET", "LIMIT", "STOP", "STOP_MARKET", "TAKE_PROFIT", "TAKE_PROFIT_MARKET"}[t]
}

// TimeInForce represents how long an order remains active.
type TimeInForce int

const (
	// GTC keeps the order active until cancelled.
	GTC TimeInForce = iota
	// IOC fills what it can immediately and cancels the rest.
	IOC
	// FOK fills completely immediately or cancels.
	FOK
)

// String returns the wire representation of the time in force.
func (t TimeInForce) String() string {
	return [...]string{"GTC", "IOC", "FOK"}[t]
}

// OrderRequest describes a new order to place. Quantity is required; Price
// and TimeInForce are required for limit orders.
type OrderRequest struct {
	Symbol        string       `json:"symbol" validate:"required"`
	Side          Side         `json:"side"`
	Type          OrderType    `json:"type"`
	Quantity      *apd.Decimal `json:"quantity" validate:"required"`
	Price         *apd.Decimal `json:"price,omitempty"`
	TimeInForce   TimeInForce  `json:"time_in_force"`
	ReduceOnly    bool         `json:"reduce_only"`
	ClientOrderID string       `json:"client_order_id,omitempty"`
}

// ServerTime is the exchange clock reading.
type ServerTime struct {
	ServerTime int64 `json:"serverTime"`
}

// AccountAsset is a single asset entry in the account response.
type AccountAsset struct {
	Asset            string      `json:"asset"`
	WalletBalance    apd.Decimal `json:"walletBalance"`
	UnrealizedProfit apd.Decimal `json:"unrealizedProfit"`
	MarginBalance    apd.Decimal `json:"marginBalance"`
	AvailableBalance apd.Decimal `json:"availableBalance"`
}

// AccountPosition is a position entry in the account response.
type AccountPosition struct {
	Symbol           string      `json:"symbol"`
	PositionAmt      apd.Decimal `json:"positionAmt"`
	EntryPrice       apd.Decimal `json:"entryPrice"`
	UnrealizedProfit apd.Decimal `json:"unrealizedProfit"`
	Leverage         apd.Decimal `json:"leverage"`
	Isolated         bool        `json:"isolated"`
	PositionSide     string      `json:"positionSide"`
}

// Account is the full account information response.
type Account struct {
	FeeTier               int               `json:"feeTier"`
	CanTrade              bool              `json:"canTrade"`
	CanDeposit            bool              `json:"canDeposit"`
	CanWithdraw           bool              `json:"canWithdraw"`
	UpdateTime            int64             `json:"updateTime"`
	TotalWalletBalance    apd.Decimal       `json:"totalWalletBalance"`
	TotalUnrealizedProfit apd.Decimal       `json:"totalUnrealizedProfit"`
	TotalMarginBalance    apd.Decimal       `json:"totalMarginBalance"`
	AvailableBalance      apd.Decimal       `json:"availableBalance"`
	Assets                []AccountAsset    `json:"assets"`
	Positions             []AccountPosition `json:"positions"`
}

// PositionRisk describes the risk state of one position.
type PositionRisk struct {
	Symbol           string      `json:"symbol"`
	PositionAmt      apd.Decimal `json:"positionAmt"`
	EntryPrice       apd.Decimal `json:"entryPrice"`
	MarkPrice        apd.Decimal `json:"markPrice"`
	UnRealizedProfit apd.Decimal `json:"unRealizedProfit"`
	LiquidationPrice apd.Decimal `json:"liquidationPrice"`
	Leverage         apd.Decimal `json:"leverage"`
	MarginType       string      `json:"marginType"`
	PositionSide     string      `json:"positionSide"`
	UpdateTime       int64       `json:"updateTime"`
}

// LeverageResponse confirms a leverage change.
type LeverageResponse struct {
	Symbol           string `json:"symbol"`
	Leverage         int    `json:"leverage"`
	MaxNotionalValue string `json:"maxNotionalValue"`
}

// Order is the exchange's view of a placed order.
type Order struct {
	Symbol        string      `json:"symbol"`
	OrderID       int64       `json:"orderId"`
	ClientOrderID string      `json:"clientOrderId"`
	Price         apd.Decimal `json:"price"`
	OrigQty       apd.Decimal `json:"origQty"`
	ExecutedQty   apd.Decimal `json:"executedQty"`
	AvgPrice      apd.Decimal `json:"avgPrice"`
	CumQuote      apd.Decimal `json:"cumQuote"`
	Status        string      `json:"status"`
	Type          string      `json:"type"`
	Side          string      `json:"side"`
	TimeInForce   string      `json:"timeInForce"`
	PositionSide  string      `json:"positionSide"`
	ReduceOnly    bool        `json:"reduceOnly"`
	UpdateTime    int64       `json:"updateTime"`
}

// Kline is a single candlestick. The exchange transmits klines as
// positional JSON arrays mixing numbers and decimal strings.
type Kline struct {
	OpenTime         int64
	Open             apd.Decimal
	High             apd.Decimal
	Low              apd.Decimal
	Close            apd.Decimal
	Volume           apd.Decimal
	CloseTime        int64
	QuoteVolume      apd.Decimal
	Trades           int64
	TakerBuyVolume   apd.Decimal
	TakerBuyQuoteVol apd.Decimal
}

// UnmarshalJSON decodes the positional array form.
func (k *Kline) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 11 {
		return fmt.Errorf("kline: expected at least 11 fields, got %d", len(raw))
	}

	var err error
	if k.OpenTime, err = klineInt(raw[0]); err != nil {
		return fmt.Errorf("kline open time: %w", err)
	}
	if err = klineDecimal(raw[1], &k.Open); err != nil {
		return fmt.Errorf("kline open: %w", err)
	}
	if err = klineDecimal(raw[2], &k.High); err != nil {
		return fmt.Errorf("kline high: %w", err)
	}
	if err = klineDecimal(raw[3], &k.Low); err != nil {
		return fmt.Errorf("kline low: %w", err)
	}
	if err = klineDecimal(raw[4], &k.Close); err != nil {
		return fmt.Errorf("kline close: %w", err)
	}
	if err = klineDecimal(raw[5], &k.Volume); err != nil {
		return fmt.Errorf("kline volume: %w", err)
	}
	if k.CloseTime, err = klineInt(raw[6]); err != nil {
		return fmt.Errorf("kline close time: %w", err)
	}
	if err = klineDecimal(raw[7], &k.QuoteVolume); err != nil {
		return fmt.Errorf("kline quote volume: %w", err)
	}
	if k.Trades, err = klineInt(raw[8]); err != nil {
		return fmt.Errorf("kline trades: %w", err)
	}
	if err = klineDecimal(raw[9], &k.TakerBuyVolume); err != nil {
		return fmt.Errorf("kline taker buy volume: %w", err)
	}
	if err = klineDecimal(raw[10], &k.TakerBuyQuoteVol); err != nil {
		return fmt.Errorf("kline taker buy quote volume: %w", err)
	}
	return nil
}

func klineInt(v any) (int64, error) {
	switch val := v.(type) {
	case float64:
		return int64(val), nil
	case int64:
		return val, nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func klineDecimal(v any, dst *apd.Decimal) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("unexpected type %T", v)
	}
	if _, _, err := dst.SetString(s); err != nil {
		return err
	}
	return nil
}
