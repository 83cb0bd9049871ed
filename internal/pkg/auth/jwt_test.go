// internal/pkg/auth/jwt_test.go
package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront Backend"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough-123",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateAccessToken(42, "alice", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned error: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("user ID mismatch: got %d want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Fatalf("username mismatch: got %q want alice", claims.Username)
	}
	if !claims.IsAdmin {
		t.Fatal("admin claim lost in round trip")
	}
	if claims.TokenType != "access" {
		t.Fatalf("token type mismatch: got %q want access", claims.TokenType)
	}
}

func TestRefreshTokenDropsAdminClaim(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateRefreshToken(42, "alice")
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	claims, err := manager.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken returned error: %v", err)
	}

	if claims.IsAdmin {
		t.Fatal("refresh token must not carry the admin claim")
	}
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	refresh, err := manager.GenerateRefreshToken(1, "bob")
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}
	if _, err := manager.ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token must not validate as access token")
	}

	access, err := manager.GenerateAccessToken(1, "bob", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	if _, err := manager.ValidateRefreshToken(access); err == nil {
		t.Fatal("access token must not validate as refresh token")
	}
}

func TestTokenSignedWithDifferentSecretRejected(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.JWT.Secret = "another-secret-key-that-is-long-enough"
	other := NewJWTManager(otherCfg)

	token, err := other.GenerateAccessToken(1, "mallory", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateAccessToken(1, "carol", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if got := ExtractTokenFromHeader("Bearer abc.def.ghi"); got != "abc.def.ghi" {
		t.Fatalf("extraction mismatch: got %q", got)
	}
	if got := ExtractTokenFromHeader("abc.def.ghi"); got != "" {
		t.Fatalf("missing Bearer prefix should yield empty, got %q", got)
	}
	if got := ExtractTokenFromHeader(""); got != "" {
		t.Fatalf("empty header should yield empty, got %q", got)
	}
	if got := ExtractTokenFromHeader("Bearer"); got != "" {
		t.Fatalf("bare Bearer should yield empty, got %q", got)
	}
}

func TestGeneratedTokenShape(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateAccessToken(1, "dave", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected compact JWS with 3 segments, got %d", len(parts))
	}
}
