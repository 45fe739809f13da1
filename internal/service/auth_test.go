package service_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "cook")

	first, err := f.svc.Auth.Login(f.ctx, "COOK@example.com", "password123")
	require.NoError(t, err)
	assert.Len(t, first.AuthToken, 40)

	second, err := f.svc.Auth.Login(f.ctx, "cook@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, first.AuthToken, second.AuthToken, "a user keeps a single token")

	resolved, err := f.svc.Auth.Authenticate(f.ctx, first.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.user(t, "cook")

	cases := map[string]struct{ email, password string }{
		"wrong password": {"cook@example.com", "password124"},
		"unknown email":  {"nobody@example.com", "password123"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Auth.Login(f.ctx, tc.email, tc.password)
			httpErr := httpError(t, err, http.StatusBadRequest)
			assert.Equal(t, "INVALID_CREDENTIALS", httpErr.Code)
		})
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	f := newFixture(t)
	f.user(t, "cook")

	token, err := f.svc.Auth.Login(f.ctx, "cook@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, f.svc.Auth.Logout(f.ctx, token.AuthToken))

	_, err = f.svc.Auth.Authenticate(f.ctx, token.AuthToken)
	httpError(t, err, http.StatusUnauthorized)

	renewed, err := f.svc.Auth.Login(f.ctx, "cook@example.com", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, token.AuthToken, renewed.AuthToken)
}

func TestAuthenticateUnknownToken(t *testing.T) {
	f := newFixture(t)

	for _, key := range []string{"", "deadbeef"} {
		_, err := f.svc.Auth.Authenticate(f.ctx, key)
		httpError(t, err, http.StatusUnauthorized)
	}
}
