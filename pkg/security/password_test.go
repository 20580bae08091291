package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/geoshop/geoshop-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Small parameters keep the test fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword(testPasswordConfig(), "s3cret-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", hash)
	}
	if err := VerifyPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("verify password: %v", err)
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword(testPasswordConfig(), "correct")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := VerifyPassword(hash, "incorrect"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	if err := VerifyPassword("not-a-hash", "pw"); err == nil {
		t.Fatal("expected malformed hash error")
	}
	if err := VerifyPassword("$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "pw"); err == nil {
		t.Fatal("expected wrong algorithm to fail")
	}
}

func TestHashProducesUniqueSalts(t *testing.T) {
	cfg := testPasswordConfig()
	a, err := HashPassword(cfg, "same-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	b, err := HashPassword(cfg, "same-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestHashRequiresPassword(t *testing.T) {
	if _, err := HashPassword(testPasswordConfig(), ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
