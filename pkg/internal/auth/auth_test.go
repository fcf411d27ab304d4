package auth

import (
	"testing"

	"github.com/spf13/viper"
)

func TestCredentialRoundTrip(t *testing.T) {
	ref, err := HashCredential("hunter22")
	if err != nil {
		t.Fatalf("HashCredential() error = %v", err)
	}
	if ref == "hunter22" {
		t.Error("credential ref should not be the plain password")
	}
	if !VerifyCredential(ref, "hunter22") {
		t.Error("VerifyCredential() should accept the original password")
	}
	if VerifyCredential(ref, "hunter23") {
		t.Error("VerifyCredential() should reject a wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	viper.Set("security.jwt_secret", "unit-test-secret")
	defer viper.Set("security.jwt_secret", "")

	token, err := NewToken("mat")
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}

	username, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if username != "mat" {
		t.Errorf("ParseToken() = %q, want mat", username)
	}

	if _, err := ParseToken(token + "x"); err == nil {
		t.Error("ParseToken() should reject a tampered token")
	}
}

func TestResetTokensAreUnique(t *testing.T) {
	if NewResetToken() == NewResetToken() {
		t.Error("reset tokens should not repeat")
	}
}
