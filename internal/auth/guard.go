package auth

import (
	"errors"
	"strings"

	"wardwatch/internal/model"
)

var (
	ErrDomainRejected     = errors.New("email is not from an authorized domain")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Authenticate reports whether the trimmed inputs exactly match a stored
// credential. It is a pure predicate: the credential collection is never
// mutated and no normalization beyond whitespace trimming is applied.
func Authenticate(email, password string, creds []model.Credential) bool {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	for _, c := range creds {
		if c.Email == email && c.Password == password {
			return true
		}
	}
	return false
}

// DomainAllowed reports whether the email carries the required suffix.
// An empty suffix allows every email.
func DomainAllowed(email, requiredSuffix string) bool {
	return strings.HasSuffix(strings.TrimSpace(email), requiredSuffix)
}

// Login checks the domain before touching the credential collection, so a
// rejected domain never reveals whether the credentials would have matched.
func Login(email, password string, creds []model.Credential, requiredSuffix string) (model.Session, error) {
	if !DomainAllowed(email, requiredSuffix) {
		return model.Session{}, ErrDomainRejected
	}
	if !Authenticate(email, password, creds) {
		return model.Session{}, ErrInvalidCredentials
	}
	return model.Session{Authenticated: true, Email: strings.TrimSpace(email)}, nil
}

// Logout returns the unauthenticated session regardless of input.
func Logout(model.Session) model.Session {
	return model.Session{}
}
