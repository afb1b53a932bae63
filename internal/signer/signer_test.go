package signer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Vector from the exchange API documentation for signed endpoint examples.
const (
	docSecret  = "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j"
	docPayload = "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559"
	docDigest  = "c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71"
)

func TestSign_KnownVector(t *testing.T) {
	assert.Equal(t, docDigest, Sign(docSecret, docPayload))
}

func TestSign_ClassicHMACVector(t *testing.T) {
	got := Sign("key", "The quick brown fox jumps over the lazy dog")
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", got)
}

func TestSign_Deterministic(t *testing.T) {
	first := Sign(docSecret, docPayload)
	second := Sign(docSecret, docPayload)

	assert.Equal(t, first, second)
}

func TestSign_SingleCharacterChange(t *testing.T) {
	base := Sign(docSecret, docPayload)
	changed := Sign(docSecret, docPayload[:len(docPayload)-1]+"8")

	assert.NotEqual(t, base, changed)
}

func TestSign_LowercaseHex(t *testing.T) {
	digest := Sign("secret", "payload")

	assert.Len(t, digest, 64)
	for _, c := range digest {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'),
			"digest must be lowercase hex, got %q", c)
	}
}

func TestSign_EmptyPayload(t *testing.T) {
	assert.Len(t, Sign("secret", ""), 64)
}
