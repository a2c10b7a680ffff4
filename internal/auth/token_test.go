package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revand/jobpilot/internal/utils"
)

func TestIssueAndValidate(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue("user-1", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	past := time.Now().UTC().Add(-time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
		UserID: "user-1",
		Email:  "a@x.com",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Contains(t, err.Error(), "token expired")
}

func TestValidateMalformedToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Validate(raw)
		require.Error(t, err, "token %q must not validate", raw)
		assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Validate(token)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestDefaultLifetime(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)

	token, err := issuer.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 24*time.Hour, lifetime)
}

func TestIssueRequiresSecret(t *testing.T) {
	issuer := NewTokenIssuer("", time.Hour)

	_, err := issuer.Issue("user-1", "a@x.com")
	require.Error(t, err)
}
