package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken(7, "admin", "admin")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour).GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsNonHMAC(t *testing.T) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, &Claims{UserID: 1, Role: "admin"})
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).VerifyToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Garbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
