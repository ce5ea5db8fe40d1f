package service

import (
	"errors"
	"testing"
	"time"
)

func TestSession_RoundTrip(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)

	token, err := m.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d; want 7", id)
	}
}

func TestSession_WrongSecret(t *testing.T) {
	token, err := NewSessionManager("secret", time.Hour).Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewSessionManager("other", time.Hour).Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSession_Expired(t *testing.T) {
	m := NewSessionManager("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSession_Garbage(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Parse(token); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("Parse(%q): expected ErrInvalidSession, got %v", token, err)
		}
	}
}
