package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserJWTRoundTrip(t *testing.T) {
	key := []byte("super secret key")

	token, err := GenerateUserJWT(123, time.Hour, key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token, key)
	require.NoError(t, err)
	require.Equal(t, int64(123), claims.ID)
}

func TestValidateUserJWT_Expired(t *testing.T) {
	key := []byte("super secret key")

	token, err := GenerateUserJWT(123, -time.Minute, key)
	require.NoError(t, err)

	_, err = ValidateUserJWT(token, key)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateUserJWT_WrongKey(t *testing.T) {
	token, err := GenerateUserJWT(123, time.Hour, []byte("super secret key"))
	require.NoError(t, err)

	_, err = ValidateUserJWT(token, []byte("another key"))
	require.Error(t, err)
}
