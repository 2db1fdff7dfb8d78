package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the JWT claims issued by the auth provider.
// The claims identify the subject only; tenant membership and role are
// always re-read from the Profile table, never trusted from the token.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email        string                 `json:"email"`
	AppMetadata  map[string]interface{} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	Role         string                 `json:"role"` // "authenticated" or "service_role"
	SessionID    string                 `json:"session_id"`
	IsAnonymous  bool                   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// IsServiceRole reports whether the token carries the elevated service
// credential. Only service-to-service callers hold it; it is the out-of-band
// source of the system-operator capability.
func (c *AccessClaims) IsServiceRole() bool {
	return c.Role == "service_role"
}
