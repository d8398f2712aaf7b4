package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims embeds the registered claims plus the role and a type
// discriminator so an access token can never be replayed as a refresh
// token and vice versa.
type TokenClaims struct {
	Role string    `json:"role"`
	Type TokenType `json:"typ"`
	jwt.RegisteredClaims
}

type TokenMaker struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenMaker(cfg JWTConfig) *TokenMaker {
	return &TokenMaker{
		secret:     []byte(cfg.Secret),
		accessTTL:  time.Duration(cfg.AccessExpiryMins) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshExpiryDays) * 24 * time.Hour,
	}
}

func (m *TokenMaker) CreateAccessToken(userID uuid.UUID, role string) (string, time.Time, error) {
	return m.create(userID, role, TokenTypeAccess, m.accessTTL)
}

func (m *TokenMaker) CreateRefreshToken(userID uuid.UUID, role string) (string, time.Time, error) {
	return m.create(userID, role, TokenTypeRefresh, m.refreshTTL)
}

func (m *TokenMaker) create(userID uuid.UUID, role string, typ TokenType, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := TokenClaims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}

	return signed, expiresAt, nil
}

// VerifyToken parses and validates a token of the expected type. Any decode
// error, missing subject, or type mismatch fails closed with ErrInvalidToken.
func (m *TokenMaker) VerifyToken(tokenStr string, want TokenType) (*TokenClaims, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.Type != want {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
