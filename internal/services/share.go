package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Share kinds: what a token grants access to
const (
	ShareKindRecipe = "recipe"
	ShareKindList   = "list"
)

var ErrInvalidShareToken = errors.New("invalid or expired share token")

// ShareClaims are the claims embedded in a share token
type ShareClaims struct {
	Kind  string `json:"kind"`   // "recipe" or "list"
	RefID string `json:"ref_id"` // recipe ID or grocery-list session ID
	jwt.RegisteredClaims
}

// ShareService issues and verifies signed share links. A share token is a
// plain HS256 JWT: anyone holding the link can view the referenced recipe
// or list until the token expires, and nothing else.
type ShareService struct {
	secret []byte
	expiry time.Duration
}

// NewShareService creates a share service with the given signing secret
func NewShareService(secret string, expiry time.Duration) *ShareService {
	return &ShareService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// IssueToken signs a new share token for the given target
func (s *ShareService) IssueToken(kind, refID string) (string, error) {
	now := time.Now()
	claims := ShareClaims{
		Kind:  kind,
		RefID: refID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a share token
func (s *ShareService) VerifyToken(tokenString string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShareClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidShareToken
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidShareToken
	}
	if claims.Kind != ShareKindRecipe && claims.Kind != ShareKindList {
		return nil, ErrInvalidShareToken
	}
	return claims, nil
}
