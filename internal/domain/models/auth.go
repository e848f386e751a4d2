package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the JWT claims issued by the auth provider.
type AuthClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated owner.
func (c *AuthClaims) GetUserID() string {
	return c.Subject
}
