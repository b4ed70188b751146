package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardwatch/internal/model"
)

var testCreds = []model.Credential{
	{Email: "a@hospital.org", Password: "x"},
	{Email: "nurse@hospital.org", Password: "secret"},
}

func TestAuthenticateExactMatch(t *testing.T) {
	assert.True(t, Authenticate("a@hospital.org", "x", testCreds))
	assert.False(t, Authenticate("a@hospital.org", "y", testCreds))
	assert.False(t, Authenticate("b@hospital.org", "x", testCreds))
	assert.False(t, Authenticate("A@hospital.org", "x", testCreds), "email comparison is case-sensitive")
}

func TestAuthenticateTrimsWhitespace(t *testing.T) {
	assert.True(t, Authenticate("  a@hospital.org  ", " x ", testCreds))
	assert.True(t, Authenticate("a@hospital.org\n", "x\t", testCreds))
}

func TestAuthenticateEmptyCollection(t *testing.T) {
	assert.False(t, Authenticate("a@hospital.org", "x", nil))
	assert.False(t, Authenticate("", "", nil))
}

func TestDomainAllowed(t *testing.T) {
	assert.True(t, DomainAllowed("a@hospital.org", "@hospital.org"))
	assert.False(t, DomainAllowed("a@other.com", "@hospital.org"))
	assert.True(t, DomainAllowed(" a@hospital.org ", "@hospital.org"), "surrounding whitespace is trimmed")
	assert.True(t, DomainAllowed("anyone@anywhere", ""))
}

func TestLoginSuccess(t *testing.T) {
	session, err := Login("a@hospital.org", "x", testCreds, "@hospital.org")
	require.NoError(t, err)
	assert.Equal(t, model.Session{Authenticated: true, Email: "a@hospital.org"}, session)
}

func TestLoginDomainRejectedBeforeCredentialCheck(t *testing.T) {
	// Valid credentials must not rescue a rejected domain; the domain check
	// runs first and short-circuits.
	creds := []model.Credential{{Email: "a@other.com", Password: "x"}}
	session, err := Login("a@other.com", "x", creds, "@hospital.org")
	assert.True(t, errors.Is(err, ErrDomainRejected))
	assert.Equal(t, model.Session{}, session)
}

func TestLoginInvalidCredentials(t *testing.T) {
	session, err := Login("a@hospital.org", "wrong", testCreds, "@hospital.org")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	assert.False(t, session.Authenticated)
}

func TestLogoutIdempotent(t *testing.T) {
	s := model.Session{Authenticated: true, Email: "a@hospital.org"}
	once := Logout(s)
	twice := Logout(once)
	assert.Equal(t, model.Session{}, once)
	assert.Equal(t, once, twice)
}
