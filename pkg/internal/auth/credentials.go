// Package auth is the credential collaborator. The core trusts the
// username identity it yields and treats credential refs as opaque.
package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashCredential derives the opaque credential ref stored on an account.
func HashCredential(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyCredential reports whether the password matches the stored ref.
func VerifyCredential(credentialRef, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credentialRef), []byte(password)) == nil
}

// NewResetToken mints a one-time password reset token.
func NewResetToken() string {
	return uuid.NewString()
}
