// Package common contains shared constants and sentinel errors used across
// Stockly client components.
package common

const (
	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"

	// BearerPrefix is prepended to the access token in the Authorization header.
	BearerPrefix = "Bearer "
)

// Keys inside the persisted credentials document. They mirror the storage
// keys the web and mobile clients use so a credentials dump stays readable
// across surfaces.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	UserInfoKey     = "stockly_user_info"
)
