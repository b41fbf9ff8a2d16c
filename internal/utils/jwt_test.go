package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/utils"
)

// TestNewAccessToken verifies the token parses with the issuing secret
// and carries the subject, display name and a TTL-bound expiry.
func TestNewAccessToken(t *testing.T) {
	access, err := utils.NewAccessToken("test-secret", 42, "Maria", 240)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	require.WithinDuration(t, time.Now().UTC().Add(240*time.Minute), access.Exp, 5*time.Second)

	tok, err := jwt.Parse(access.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.EqualValues(t, 42, claims["sub"])
	require.Equal(t, "Maria", claims["nome"])
	require.EqualValues(t, access.Exp.Unix(), claims["exp"])
}

func TestNewAccessToken_wrongSecretRejected(t *testing.T) {
	access, err := utils.NewAccessToken("test-secret", 7, "João", 60)
	require.NoError(t, err)

	_, err = jwt.Parse(access.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	require.Error(t, err)
}
