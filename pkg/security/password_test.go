package security

import (
	"testing"

	"github.com/habistudio/habi-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Small parameters keep the test fast; production values come from env.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("tindahan123", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	ok, err := VerifyPassword("tindahan123", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching password to verify")
	}

	ok, err = VerifyPassword("wrong-password", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "not-an-argon2id-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestConstantTimeEquals(t *testing.T) {
	if !ConstantTimeEquals("admin123", "admin123") {
		t.Fatalf("equal strings must compare true")
	}
	if ConstantTimeEquals("admin123", "admin124") {
		t.Fatalf("different strings must compare false")
	}
}
