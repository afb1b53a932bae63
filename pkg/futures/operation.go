package futures

// Operation represents a supported API action.
type Operation int

// Operation constants define all supported endpoints.
const (
	// OpServerTime retrieves the exchange server time. Public.
	OpServerTime Operation = iota
	// OpKlines retrieves candlestick data. Public.
	OpKlines
	// OpAccountInfo retrieves account balances and positions. Signed.
	OpAccountInfo
	// OpPositionRisk retrieves position risk for open positions. Signed.
	OpPositionRisk
	// OpChangeLeverage sets the initial leverage for a symbol. Signed,
	// trading-gated.
	OpChangeLeverage
	// OpPlaceOrder submits a new order. Signed, trading-gated.
	OpPlaceOrder
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	names := [...]string{
		"SERVER_TIME",
		"KLINES",
		"ACCOUNT_INFO",
		"POSITION_RISK",
		"CHANGE_LEVERAGE",
		"PLACE_ORDER",
	}
	if o < 0 || int(o) >= len(names) {
		return "UNKNOWN"
	}
	return names[o]
}
