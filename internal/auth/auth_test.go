package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtutor/labtutor/internal/config"
)

const testSecret = "test-secret-0123456789-0123456789"

func newTestAuthenticator(t *testing.T, ttl time.Duration) *Authenticator {
	t.Helper()

	a, err := New([]config.User{
		{Username: "trainer1", Password: "trainer-pass", Role: "trainer"},
		{Username: "learner1", Password: "learner-pass", Role: "learner"},
	}, testSecret, ttl)
	require.NoError(t, err)
	return a
}

func TestNewRejectsUnknownRole(t *testing.T) {
	_, err := New([]config.User{
		{Username: "u", Password: "p", Role: "admin"},
	}, testSecret, time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"u"`)
}

func TestAuthenticate(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	p, err := a.Authenticate("trainer1", "trainer-pass")
	require.NoError(t, err)
	assert.Equal(t, "trainer1", p.Username)
	assert.Equal(t, RoleTrainer, p.Role)

	p, err = a.Authenticate("learner1", "learner-pass")
	require.NoError(t, err)
	assert.Equal(t, RoleLearner, p.Role)
}

func TestAuthenticateRejections(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "trainer1", "wrong"},
		{"unknown user", "nobody", "trainer-pass"},
		{"empty password", "trainer1", ""},
		{"swapped credentials", "learner1", "trainer-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	token, err := a.IssueToken(Principal{Username: "trainer1", Role: RoleTrainer})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	p, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "trainer1", p.Username)
	assert.Equal(t, RoleTrainer, p.Role)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	token, err := a.IssueToken(Principal{Username: "learner1", Role: RoleLearner})
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = a.VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsOtherSecret(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	other, err := New([]config.User{
		{Username: "trainer1", Password: "trainer-pass", Role: "trainer"},
	}, "another-secret-another-secret-another", time.Hour)
	require.NoError(t, err)

	token, err := other.IssueToken(Principal{Username: "trainer1", Role: RoleTrainer})
	require.NoError(t, err)

	_, err = a.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	a := newTestAuthenticator(t, -time.Minute)

	token, err := a.IssueToken(Principal{Username: "learner1", Role: RoleLearner})
	require.NoError(t, err)

	_, err = a.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	a := newTestAuthenticator(t, time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := a.VerifyToken(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token=%q", bad)
	}
}
