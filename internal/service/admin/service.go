package admin

import (
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when username/password do not match
// the configured constants. Deliberately generic; there is no lockout.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service checks admin credentials against a single configured account.
// When a bcrypt hash is configured it takes precedence over the plain
// password.
type Service struct {
	username     string
	password     string
	passwordHash string
	sessionTTL   time.Duration
}

func New(username, password, passwordHash string, sessionTTL time.Duration) *Service {
	return &Service{
		username:     username,
		password:     password,
		passwordHash: passwordHash,
		sessionTTL:   sessionTTL,
	}
}

// Login validates the credential pair.
func (s *Service) Login(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	passOK := false
	if s.passwordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// SessionTTLSeconds exposes the session lifetime for the cookie MaxAge.
func (s *Service) SessionTTLSeconds() int {
	return int(s.sessionTTL.Seconds())
}
