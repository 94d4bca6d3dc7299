package password

import (
	"golang.org/x/crypto/bcrypt"

	"pena.web.id/penablog/pkg/apperror"
)

// Hash returns a bcrypt hash of the plaintext password.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare checks a plaintext password against its stored hash.
// The error is intentionally generic so callers cannot leak whether the
// account exists or the password was wrong.
func Compare(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return apperror.Forbidden("invalid username or password")
	}
	return nil
}
