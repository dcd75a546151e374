package auth

import (
	"crypto/subtle"

	"bakkal-backend/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator decides whether a login attempt is valid. The application
// ships with a single static admin; keeping the check behind an interface
// means a future deployment can plug in a real user store without touching
// the handlers.
type Authenticator interface {
	Authenticate(username, password string) bool
}

// StaticAdmin authenticates exactly one account from configuration. When a
// bcrypt hash is configured it wins over the plain-text password.
type StaticAdmin struct {
	Username     string
	Password     string
	PasswordHash string
}

func (a StaticAdmin) Authenticate(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) != 1 {
		return false
	}
	if a.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
}

func FromConfig(cfg *config.Config) Authenticator {
	return StaticAdmin{
		Username:     cfg.AdminUser,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}
}
