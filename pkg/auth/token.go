package auth

import (
	"fmt"
	"time"

	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims carried by a dashboard session token.
type AccessClaims struct {
	UserID   int         `json:"uid"`
	Username string      `json:"username"`
	Nivel    enums.Nivel `json:"nivel"`
	jwt.RegisteredClaims
}

// AccessTokenPayload is what callers provide to mint a token.
type AccessTokenPayload struct {
	UserID   int
	Username string
	Nivel    enums.Nivel
}

// GenerateAccessToken signs a token for the given user.
func GenerateAccessToken(cfg config.JWTConfig, payload AccessTokenPayload) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}

	now := time.Now()
	claims := AccessClaims{
		UserID:   payload.UserID,
		Username: payload.Username,
		Nivel:    payload.Nivel,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   fmt.Sprintf("%d", payload.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiration())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseAccessToken verifies the signature and expiry and returns the claims.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
