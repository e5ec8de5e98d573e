package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/libman-service/pkg/auth"
)

func TestToken_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := auth.Config{Secret: "test-secret", TTL: time.Hour}

	token, err := auth.NewToken(cfg, "64f1c0ffee0000000000beef", auth.RoleReader)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token, cfg.Secret)
	require.NoError(t, err)
	require.Equal(t, "64f1c0ffee0000000000beef", claims.Subject)
	require.Equal(t, auth.RoleReader, claims.Role)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, time.Now().Add(cfg.TTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_Errors(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name    string
		token   func(t *testing.T) string
		secret  string
		wantErr error
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				token, err := auth.NewToken(auth.Config{Secret: "test-secret", TTL: -time.Hour}, "sub", auth.RoleReader)
				require.NoError(t, err)
				return token
			},
			secret:  "test-secret",
			wantErr: auth.ErrTokenExpired,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				token, err := auth.NewToken(auth.Config{Secret: "other-secret", TTL: time.Hour}, "sub", auth.RoleReader)
				require.NoError(t, err)
				return token
			},
			secret:  "test-secret",
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "garbage",
			token: func(t *testing.T) string {
				return "not.a.jwt"
			},
			secret:  "test-secret",
			wantErr: auth.ErrInvalidToken,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := auth.ParseToken(tt.token(t), tt.secret)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, claims)
		})
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	require.True(t, auth.CheckPassword("secret", hash))
	require.False(t, auth.CheckPassword("nope", hash))
	require.False(t, auth.CheckPassword("secret", "not-a-hash"))
}
