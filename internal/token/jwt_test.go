package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	sid := uuid.New()

	tok, err := j.GenerateSessionToken(sid)
	require.NoError(t, err)
	got, err := j.ParseSessionToken(tok)
	require.NoError(t, err)
	require.Equal(t, sid, got)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret", time.Hour).GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	j.now = func() time.Time { return issued }

	tok, err := j.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	secret := "secret"
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		SessionID:        uuid.New(),
		TokenType:        "access",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWT(secret, time.Hour).ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		SessionID: uuid.New(),
		TokenType: typeSession,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_NilSession(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	tok, err := j.GenerateSessionToken(uuid.Nil)
	require.NoError(t, err)
	_, err = j.ParseSessionToken(tok)
	require.Error(t, err)
}
