// Package api implements the HTTP client for the cityreport backend.
//
// It is built from three layers:
//
//   - Normalize converts every raw outcome (response body, HTTP status,
//     or transport error) into one canonical Envelope. It never fails.
//   - authTransport is the request pipeline: it attaches the bearer token
//     from the token store, and on a 401 coordinates a single token
//     refresh across all in-flight requests before retrying exactly once.
//   - HTTPClient exposes typed methods per endpoint and maps failed
//     envelopes onto the error taxonomy (ErrUnauthorized, ErrUnavailable,
//     ErrMalformedPayload, *APIError).
//
// Tokens are opaque strings; their expiry is only ever discovered through
// a 401 response.
package api
