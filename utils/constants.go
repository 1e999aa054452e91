// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// CredentialTokenKey and CredentialIdentityKey name the two persisted session
// slots: the opaque auth token and the JSON identity snapshot. They are always
// written and cleared together.
const (
	CredentialTokenKey    = "authToken"
	CredentialIdentityKey = "userData"
)

// Route paths served by the client-facing application.
const (
	RouteHome              = "/"
	RouteLogin             = "/login"
	RouteRegister          = "/register"
	RouteDashboard         = "/dashboard"
	RouteUserServices      = "/user/services"
	RouteUserMyBookings    = "/user/my-bookings"
	RouteProviderDashboard = "/provider/dashboard"
	RouteAdminDashboard    = "/admin/dashboard"
)
