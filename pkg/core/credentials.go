package core

// Placeholder values shipped in example configs. Treated the same as missing
// credentials so a copy-pasted template fails before any network call.
const (
	placeholderAPIKey    = "YOUR_API_KEY"
	placeholderSecretKey = "YOUR_SECRET_KEY"
)

// Credentials holds API authentication material for the exchange. The value
// is immutable after construction and safe for concurrent reads. It is never
// logged; use MaskKey when a key must appear in diagnostics.
type Credentials struct {
	// APIKey is the public key identifier, transmitted in the
	// X-MBX-APIKEY header of signed requests.
	APIKey string `json:"api_key"`
	// SecretKey is the private key used for HMAC signing. It never leaves
	// the process.
	SecretKey string `json:"secret_key"`
}

// Complete reports whether both keys are present and are not the placeholder
// values from the example configs.
func (c *Credentials) Complete() bool {
	if c == nil {
		return false
	}
	if c.APIKey == "" || c.SecretKey == "" {
		return false
	}
	return c.APIKey != placeholderAPIKey && c.SecretKey != placeholderSecretKey
}

// MaskKey returns a redacted form of an API key suitable for logging.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
