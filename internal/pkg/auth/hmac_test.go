package auth

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACVerifier_RoundTrip(t *testing.T) {
	v := NewHMACVerifier("secret", "jobfinder")

	tok, err := v.Issue("user_1", "u1@example.com", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "user_1", Email: "u1@example.com"}, id)
}

func TestHMACVerifier_Rejects(t *testing.T) {
	ctx := context.Background()
	v := NewHMACVerifier("secret", "jobfinder")

	_, err := v.Verify(ctx, "  ")
	require.ErrorIs(t, err, ErrTokenMissing)

	_, err = v.Verify(ctx, "not-a-jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)

	other, err := NewHMACVerifier("other", "jobfinder").Issue("user_1", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	require.ErrorIs(t, err, ErrTokenInvalid)

	wrongIssuer, err := NewHMACVerifier("secret", "elsewhere").Issue("user_1", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, wrongIssuer)
	require.ErrorIs(t, err, ErrTokenInvalid)

	past := NewHMACVerifier("secret", "jobfinder")
	past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := past.Issue("user_1", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, expired)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACVerifier_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "user_1",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACVerifier("secret", "").Verify(context.Background(), raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACVerifier_RequiresSubject(t *testing.T) {
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewHMACVerifier("secret", "").Verify(context.Background(), raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
