package utils

import (
	"testing"
	"time"
)

func TestGenerateAndExtractIdentity(t *testing.T) {
	token, err := GenerateToken("acc-1", "doctor", "doc@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	id, role, err := ExtractIdentityFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIdentityFromToken: %v", err)
	}
	if id != "acc-1" {
		t.Errorf("id = %q, want %q", id, "acc-1")
	}
	if role != "doctor" {
		t.Errorf("role = %q, want %q", role, "doctor")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("acc-1", "patient", "p@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ExtractIdentityFromToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("acc-1", "patient", "p@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, _, err := ExtractIdentityFromToken(tampered); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	if HashToken("abc") != HashToken("abc") {
		t.Error("HashToken is not deterministic")
	}
	if HashToken("abc") == HashToken("abd") {
		t.Error("different tokens should not collide")
	}
	if len(HashToken("abc")) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(HashToken("abc")))
	}
}
