package service

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	got, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got != "user-42" {
		t.Fatalf("parsed user = %q; want user-42", got)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", time.Hour)
	other := NewJWTManager("secret-b", time.Hour)

	token, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.Generate("user-42")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	if _, err := m.Parse("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
