package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Auth
const (
	BearerPrefix      = "Bearer "
	MinPasswordLength = 6
	DefaultTokenTTL   = time.Hour
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// HeaderRequestID carries the per-request KSUID back to the client.
const HeaderRequestID = "X-Request-ID"
