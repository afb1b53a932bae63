package core

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is an ordered collection of request parameters. Unlike url.Values,
// encoding preserves insertion order, which matters because the canonical
// string used for signing must be byte-identical to the string sent on the
// wire.
type Params struct {
	pairs []pair
}

type pair struct {
	key   string
	value string
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{}
}

// Set stores the value for key. If the key already exists its value is
// replaced in place, keeping the original position.
func (p *Params) Set(key, value string) *Params {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			p.pairs[i].value = value
			return p
		}
	}
	p.pairs = append(p.pairs, pair{key: key, value: value})
	return p
}

// SetInt stores an integer value for key.
func (p *Params) SetInt(key string, value int) *Params {
	return p.Set(key, strconv.Itoa(value))
}

// SetInt64 stores a 64-bit integer value for key.
func (p *Params) SetInt64(key string, value int64) *Params {
	return p.Set(key, strconv.FormatInt(value, 10))
}

// Get returns the value for key and whether it is present.
func (p *Params) Get(key string) (string, bool) {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			return p.pairs[i].value, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.pairs)
}

// Keys returns the parameter keys in insertion order.
func (p *Params) Keys() []string {
	keys := make([]string, len(p.pairs))
	for i := range p.pairs {
		keys[i] = p.pairs[i].key
	}
	return keys
}

// Clone returns an independent copy of the parameter set.
func (p *Params) Clone() *Params {
	clone := &Params{pairs: make([]pair, len(p.pairs))}
	copy(clone.pairs, p.pairs)
	return clone
}

// Encode serializes the parameters as key=value pairs joined by "&" in
// insertion order, percent-escaping keys and values the same way
// url.Values.Encode does.
func (p *Params) Encode() string {
	if len(p.pairs) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := range p.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.pairs[i].key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.pairs[i].value))
	}
	return sb.String()
}

// String returns the encoded form.
func (p *Params) String() string {
	return p.Encode()
}
