// Package common contains shared constants and sentinel errors used across
// userdesk components.
package common

// SessionCookieName is the cookie that carries the session token in browsers.
// The entry redirect only checks for its presence.
const SessionCookieName = "auth-token"

// AuthorizationHeaderName carries "Bearer <token>" on API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
