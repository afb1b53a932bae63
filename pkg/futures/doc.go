// Package futures implements the Asterdex futures REST API client.
// It provides request signing, authenticated dispatch, and typed response
// decoding for public and signed endpoints.
//
// The package includes:
//   - Protocol: endpoint table, request building, signing injection, and
//     response parsing
//   - Client: the public API surface with rate limiting and a circuit
//     breaker around every call
//
// Example usage:
//
//	client, err := futures.New(core.DefaultConfig())
//	st, err := client.GetServerTime(ctx)
package futures
