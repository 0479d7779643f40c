package auth

import (
	"errors"
	"testing"
)

func TestSignAndVerifySession(t *testing.T) {
	token, err := SignSession(Session{UserID: 42, Username: "user1"})
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	got, err := VerifySession(token)
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if got.UserID != 42 {
		t.Errorf("UserID = %d, want 42", got.UserID)
	}
	if got.Username != "user1" {
		t.Errorf("Username = %q, want user1", got.Username)
	}
}

func TestSignSessionRequiresUserID(t *testing.T) {
	if _, err := SignSession(Session{Username: "nobody"}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestVerifySessionRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := VerifySession(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifySession(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestVerifySessionRejectsTampering(t *testing.T) {
	token, err := SignSession(Session{UserID: 7, Username: "user2"})
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifySession(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}
