package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("secret", "60f5a1", "gamer@example.com", time.Minute)
	require.NoError(t, err)

	c, err := ParseToken("secret", tok)
	require.NoError(t, err)
	require.Equal(t, "60f5a1", c.UID)
	require.Equal(t, "gamer@example.com", c.Email)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := MakeToken("secret", "60f5a1", "gamer@example.com", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("not-the-secret", tok)
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tok, err := MakeToken("secret", "60f5a1", "gamer@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", tok)
	require.Error(t, err)
}

func TestVerificationCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', code)
		}
		seen[code] = true
	}
	require.Greater(t, len(seen), 1, "codes should not be constant")
}

func TestCodeHashCompare(t *testing.T) {
	hash, err := HashCode("123456")
	require.NoError(t, err)
	require.True(t, CheckCode(hash, "123456"))
	require.False(t, CheckCode(hash, "654321"))
}

func TestPasswordHashCompare(t *testing.T) {
	hash, err := HashPassword("pass1234")
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "pass1234"))
	require.False(t, CheckPassword(hash, "pass12345"))
}
