package jwt

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, "user-1", "cuentas-test", 5)
	require.NoError(t, err)

	userID, err := Parse(secret, "cuentas-test", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	userID, err = Parse(secret, "", tok)
	require.NoError(t, err, "sin issuer configurado no se valida el emisor")
	assert.Equal(t, "user-1", userID)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := Generate(secret, "user-1", "cuentas-test", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", "", tok)
	assert.Error(t, err)

	_, err = Parse(secret, "otro-emisor", tok)
	assert.Error(t, err)

	expired, err := Generate(secret, "user-1", "", -1)
	require.NoError(t, err)
	_, err = Parse(secret, "", expired)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)

	_, err = Generate("", "user-1", "", 5)
	assert.Error(t, err)
	_, err = Parse("", "", tok)
	assert.Error(t, err)
}

func TestParse_SubjectComoRespaldo(t *testing.T) {
	claims := gojwt.RegisteredClaims{Subject: "user-sub"}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	userID, err := Parse(secret, "", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-sub", userID)

	empty, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{}).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = Parse(secret, "", empty)
	assert.Error(t, err)
}
