// Package auth issues and verifies the signed tokens that identify a
// browsing session.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/decora/storefront/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid session token")
	ErrExpiredToken  = errors.New("session token has expired")
	ErrInvalidClaims = errors.New("invalid session token claims")
)

// TokenType is the only token kind issued
const TokenType = "session"

// Claims carries the session id in the subject
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// SessionID parses the subject
func (c *Claims) SessionID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return id, nil
}

// IssuedToken is returned to the client when a session starts
type IssuedToken struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionTokenService signs session tokens with HS256
type SessionTokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewSessionTokenService creates a token service from session config
func NewSessionTokenService(cfg config.SessionConfig) *SessionTokenService {
	return &SessionTokenService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: cfg.TTL,
		now:        time.Now,
	}
}

// Issue signs a token for sessionID
func (s *SessionTokenService) Issue(sessionID uuid.UUID) (IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   sessionID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: TokenType,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign session token: %w", err)
	}
	return IssuedToken{Token: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// Verify checks signature, issuer, audience and expiry and returns the
// session id.
func (s *SessionTokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != TokenType {
		return uuid.Nil, ErrInvalidClaims
	}
	return claims.SessionID()
}
