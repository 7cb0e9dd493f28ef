package oauth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	k := NewKakao("id", "secret", "http://localhost/cb", "state-key")

	st := k.MakeState("nonce-123")
	require.True(t, k.VerifyState(st))
}

func TestStateTamperRejected(t *testing.T) {
	k := NewKakao("id", "secret", "http://localhost/cb", "state-key")

	st := k.MakeState("nonce-123")
	require.False(t, k.VerifyState("evil-"+st))
	require.False(t, k.VerifyState("no-dot-here"))

	other := NewKakao("id", "secret", "http://localhost/cb", "different-key")
	require.False(t, other.VerifyState(st))
}
