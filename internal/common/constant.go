// Package common contains shared constants and small helpers used across the
// Tutor Stack client.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// BearerScheme precedes the access token in the Authorization header.
	BearerScheme = "Bearer"
	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)

// Durable storage keys of the session.
const (
	TokenStorageKey    = "auth_token"
	IdentityStorageKey = "user"
)

// DefaultAPIBaseURL is used when no base address is configured.
const DefaultAPIBaseURL = "http://localhost:8000"
