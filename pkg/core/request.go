package core

// Request is a protocol-level HTTP request before transport dispatch. Query
// holds the ordered parameter set; for POST endpoints it is transmitted as a
// form-encoded body instead of a query string, using the same encoding.
type Request struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   *Params           `json:"query,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	// Weight is the request's cost against the exchange rate limit.
	Weight int `json:"weight"`
	// Signed marks endpoints requiring a signature and API-key header.
	Signed bool `json:"signed"`
	// Trading marks state-changing endpoints gated behind the trading
	// opt-in.
	Trading bool `json:"trading"`
}

// NewRequest creates a request with an empty ordered parameter set and
// weight 1.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Query:   NewParams(),
		Headers: make(map[string]string),
		Weight:  1,
	}
}

// SetQuery adds or replaces a query parameter, preserving insertion order.
func (r *Request) SetQuery(key, value string) *Request {
	r.Query.Set(key, value)
	return r
}

// SetHeader sets a request header.
func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// SetWeight sets the rate-limit weight.
func (r *Request) SetWeight(weight int) *Request {
	r.Weight = weight
	return r
}

// SetSigned marks the request as requiring authentication.
func (r *Request) SetSigned(signed bool) *Request {
	r.Signed = signed
	return r
}

// SetTrading marks the request as a trading action.
func (r *Request) SetTrading(trading bool) *Request {
	r.Trading = trading
	return r
}
