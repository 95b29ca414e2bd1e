package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a login attempt against a stored credential hash.
// Hashing lives in the user store, which knows the configured bcrypt cost;
// verification only needs the hash, so the login path depends on this
// narrower interface.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword, and an
	// error otherwise.
	Compare(hashedPassword, password string) error
}

type bcryptVerifier struct{}

// NewBcryptVerifier returns the bcrypt-backed PasswordVerifier used for
// real logins.
func NewBcryptVerifier() PasswordVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
