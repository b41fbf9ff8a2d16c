package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/travel-booking/internal/utils"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("Segura#123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Segura#123", hash)

	require.True(t, utils.VerifyPassword(hash, "Segura#123"))
	require.False(t, utils.VerifyPassword(hash, "segura#123"))
	require.False(t, utils.VerifyPassword("not-a-hash", "Segura#123"))
}

// TestPasswordIssues verifies one message per violated rule and an
// empty result for a compliant password.
func TestPasswordIssues(t *testing.T) {
	require.Empty(t, utils.PasswordIssues("Segura#123"))

	issues := utils.PasswordIssues("abc")
	require.Contains(t, issues, "senha deve ter no mínimo 8 caracteres")
	require.Contains(t, issues, "senha precisa de letra maiúscula")
	require.Contains(t, issues, "senha precisa de número")
	require.Contains(t, issues, "senha precisa de símbolo")
	require.NotContains(t, issues, "senha precisa de letra minúscula")

	require.Contains(t, utils.PasswordIssues("SENHA#123"), "senha precisa de letra minúscula")
	require.Contains(t, utils.PasswordIssues("Senha#abc"), "senha precisa de número")
	require.Contains(t, utils.PasswordIssues("Senha1234"), "senha precisa de símbolo")
}

func TestNewActivationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := utils.NewActivationCode()
		require.NoError(t, err)
		require.Len(t, code, 8)
		for _, r := range code {
			require.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'), code)
		}
		seen[code] = true
	}
	// 50 draws from a 36^8 space colliding would mean a broken generator.
	require.Greater(t, len(seen), 45)
}
