// Package httpclient is the single request pipeline used by every API facade.
//
// # Overview
//
// A Client resolves paths against one base URL, encodes JSON bodies, applies
// a fixed per-request timeout (RequestTimeout) and runs each request through
// an ordered list of interceptors before it reaches the transport:
//
//	RequestID → BearerToken → Logging → Classify → HTTPDoer
//
// BearerToken attaches the current access token read from a tokens.Provider.
// Classify turns transport failures and non-2xx responses into *APIError
// values, logs and counts them, and hands them back unchanged. Nothing in the
// pipeline retries a request or refreshes credentials on 401.
//
// # Error Handling
//
// Every failure is an *APIError whose Kind is matched by errors.Is against
// the sentinels ErrUnauthorized, ErrNotFound, ErrServer, ErrUnavailable,
// ErrTimeout, ErrValidation and ErrUnexpectedStatus.
package httpclient
