// ================== internal/pkg/token/token.go ==================
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrWrongType    = errors.New("unexpected token type")
)

// Claims carried by both access and refresh tokens. The jti (RegisteredClaims.ID)
// identifies a refresh token on the blacklist.
type Claims struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Config holds signing parameters for token issuance
type Config struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// NewConfig builds a token config from the app-level settings
func NewConfig(secret string, accessExpireHours, refreshExpireDays int) *Config {
	return &Config{
		Secret:        secret,
		AccessExpiry:  time.Duration(accessExpireHours) * time.Hour,
		RefreshExpiry: time.Duration(refreshExpireDays) * 24 * time.Hour,
	}
}

func generate(userID, username, tokenType string, expiry time.Duration, cfg *Config) (string, error) {
	if cfg == nil {
		return "", errors.New("token config is required")
	}

	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// GenerateAccessToken issues a short-lived access token
func GenerateAccessToken(userID, username string, cfg *Config) (string, error) {
	return generate(userID, username, TypeAccess, cfg.AccessExpiry, cfg)
}

// GenerateRefreshToken issues a long-lived refresh token
func GenerateRefreshToken(userID, username string, cfg *Config) (string, error) {
	return generate(userID, username, TypeRefresh, cfg.RefreshExpiry, cfg)
}

// GeneratePair issues the access/refresh token pair returned at login
func GeneratePair(userID, username string, cfg *Config) (access, refresh string, err error) {
	access, err = GenerateAccessToken(userID, username, cfg)
	if err != nil {
		return "", "", err
	}

	refresh, err = GenerateRefreshToken(userID, username, cfg)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// ValidateToken validates signature and expiry and returns the parsed claims
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTokenOfType validates a token and checks the token_type claim,
// so a refresh token cannot authenticate a request and vice versa.
func ValidateTokenOfType(tokenString, secret, tokenType string) (*Claims, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenType {
		return nil, ErrWrongType
	}

	return claims, nil
}
