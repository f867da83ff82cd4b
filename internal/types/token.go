package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in an identity provider token.
// Only one of the identity fields needs to be populated.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   string   `json:"userId,omitempty"`
	Email    string   `json:"email,omitempty"`
	LoginIDs []string `json:"loginIds,omitempty"`
}

// Identity returns the identity fields carried by the claims. The JWT subject
// stands in for the user id when no explicit userId claim is present.
func (c *TokenClaims) Identity() Identity {
	userID := c.UserID
	if userID == "" {
		userID = c.Subject
	}
	return Identity{
		UserID:   userID,
		Email:    c.Email,
		LoginIDs: c.LoginIDs,
	}
}

// Identity is the authenticated user as reported by the identity provider.
type Identity struct {
	UserID   string
	Email    string
	LoginIDs []string
}
