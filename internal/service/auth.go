package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/recipebox/backend/internal/types"
)

// AuthService validates identity provider tokens. Users are never stored
// locally; the token is the only source of identity.
type AuthService struct {
	jwtSecret []byte
	issuer    string
	audience  string
}

func NewAuthService(jwtSecret, issuer, audience string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		issuer:    issuer,
		audience:  audience,
	}
}

// ValidateToken parses and verifies an HS256 token.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GenerateToken signs claims, filling in issuer, audience and a 24h expiry
// when they are not already set.
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	now := time.Now()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(24 * time.Hour))
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.Issuer == "" {
		claims.Issuer = s.issuer
	}
	if len(claims.Audience) == 0 && s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ResolveOwnerID picks the owner id for an identity: the user id, then the
// email, then the first login id.
func ResolveOwnerID(identity types.Identity) (string, error) {
	candidates := []string{identity.UserID, identity.Email}
	if len(identity.LoginIDs) > 0 {
		candidates = append(candidates, identity.LoginIDs[0])
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c, nil
		}
	}
	return "", ErrNoOwnerIdentity
}
