// Package auth issues and validates the bearer tokens returned by
// register/login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/revand/jobpilot/internal/utils"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenIssuer(secret string, lifetime time.Duration) *TokenIssuer {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), lifetime: lifetime}
}

func (t *TokenIssuer) Issue(userID, email string) (string, error) {
	const op = "TokenIssuer.Issue"

	if len(t.secret) == 0 {
		return "", utils.E(utils.CodeInternal, op, "JWT_SECRET is not set", nil)
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
		UserID: userID,
		Email:  email,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(t.secret)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return signed, nil
}

// Validate returns the claims of a well-formed, unexpired token. The
// caller is still responsible for checking the user id resolves.
func (t *TokenIssuer) Validate(raw string) (*Claims, error) {
	const op = "TokenIssuer.Validate"

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(tk *jwt.Token) (any, error) {
		if tk.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || tok == nil || !tok.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.E(utils.CodeUnauthorized, op, "token expired", err)
		}
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid token", err)
	}

	if claims.UserID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid token", nil)
	}
	return claims, nil
}
