package auth

import (
	"testing"
	"time"
)

func testTokens() Tokens {
	return Tokens{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tk := testTokens()
	s, err := tk.GenerateAccess(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id, err := tk.ParseAccess(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 42 {
		t.Errorf("user id = %d, want 42", id)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tk := testTokens()
	tk.AccessTTL = -time.Minute
	s, err := tk.GenerateAccess(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tk.ParseAccess(s); err == nil {
		t.Error("expired token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	tk := testTokens()
	s, _ := tk.GenerateAccess(7)
	other := testTokens()
	other.Secret = "different"
	if _, err := other.ParseAccess(s); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	tk := testTokens()
	if _, err := tk.ParseAccess("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}
