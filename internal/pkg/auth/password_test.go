// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/your-org/storefront-backend/internal/config"
)

func testPasswordManager() *PasswordManager {
	return NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: 4}, // Minimum cost keeps tests fast
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	p := testPasswordManager()

	hash, err := p.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := p.VerifyPassword("secret123", hash); err != nil {
		t.Fatalf("correct password should verify: %v", err)
	}
	if err := p.VerifyPassword("wrong-password", hash); err == nil {
		t.Fatal("wrong password must not verify")
	}
}

func TestValidatePasswordLength(t *testing.T) {
	p := testPasswordManager()

	if err := p.ValidatePassword("short"); err == nil {
		t.Fatal("password under 6 characters should be rejected")
	}
	if err := p.ValidatePassword("secret"); err != nil {
		t.Fatalf("6 character password should be accepted: %v", err)
	}
	if err := p.ValidatePassword(strings.Repeat("a", 73)); err == nil {
		t.Fatal("password over 72 bytes should be rejected")
	}
	if err := p.ValidatePassword(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72 byte password should be accepted: %v", err)
	}
}

func TestHashPasswordRejectsInvalid(t *testing.T) {
	p := testPasswordManager()

	if _, err := p.HashPassword("abc"); err == nil {
		t.Fatal("HashPassword should reject passwords that fail validation")
	}
}
