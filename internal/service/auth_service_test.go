package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"kanban/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthService, *memoryStore, *recordingSink) {
	t.Helper()
	store := newMemoryStore()
	sink := &recordingSink{}
	auth := NewAuthService(memoryUsers{store}, NewAuditServiceWithSink(sink)).WithHashCost(bcrypt.MinCost)
	return auth, store, sink
}

func TestRegister_HashesPassword(t *testing.T) {
	auth, store, _ := newTestAuth(t)

	u, err := auth.Register(context.Background(), "testuser", "testpassword")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	stored := store.users[u.ID]
	if stored.PasswordHash == "testpassword" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), passwordKey("testpassword")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	auth, store, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "testuser", "testpassword"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := auth.Register(ctx, "testuser", "other")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Message, "already taken") {
		t.Fatalf("unexpected message %q", vErr.Message)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(store.users))
	}
}

func TestRegister_RequiredFields(t *testing.T) {
	auth, store, _ := newTestAuth(t)

	cases := []struct {
		username, password, want string
	}{
		{"", "pw", "Username is required."},
		{"name", "", "Password is required."},
	}
	for _, tc := range cases {
		_, err := auth.Register(context.Background(), tc.username, tc.password)
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) || vErr.Message != tc.want {
			t.Fatalf("Register(%q,%q) = %v; want %q", tc.username, tc.password, err, tc.want)
		}
	}
	if len(store.users) != 0 {
		t.Fatalf("expected no users, got %d", len(store.users))
	}
}

func TestLogin(t *testing.T) {
	auth, _, sink := newTestAuth(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "testuser", "testpassword")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
		wantMsg  string
	}{
		{"unknown user", "testuser1", "testpassword", "Incorrect username."},
		{"wrong password", "testuser", "testpassword1", "Incorrect password."},
		{"ok", "testuser", "testpassword", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := auth.Login(ctx, tc.username, tc.password)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("login: %v", err)
				}
				if u.ID != registered.ID {
					t.Fatalf("got user %d; want %d", u.ID, registered.ID)
				}
				return
			}
			var aErr *domain.AuthError
			if !errors.As(err, &aErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if aErr.Message != tc.wantMsg {
				t.Fatalf("message = %q; want %q", aErr.Message, tc.wantMsg)
			}
			if tc.username == "testuser" && aErr.UserID != registered.ID {
				t.Fatalf("UserID = %d; want %d for a known username", aErr.UserID, registered.ID)
			}
			if tc.username != "testuser" && aErr.UserID != 0 {
				t.Fatalf("UserID = %d; want 0 for an unknown username", aErr.UserID)
			}
		})
	}

	if got := sink.actions(); len(got) != 1 || got[0] != domain.AuditActionRegister {
		t.Fatalf("unexpected audit actions %v", got)
	}
}

func TestRegister_LongPassword(t *testing.T) {
	auth, _, _ := newTestAuth(t)
	ctx := context.Background()
	password := strings.Repeat("a", 73)

	if _, err := auth.Register(ctx, "longpw", password); err != nil {
		t.Fatalf("register with %d byte password: %v", len(password), err)
	}
	if _, err := auth.Login(ctx, "longpw", password); err != nil {
		t.Fatalf("login: %v", err)
	}

	// the 73rd byte must still count
	var aErr *domain.AuthError
	if _, err := auth.Login(ctx, "longpw", password[:72]); !errors.As(err, &aErr) {
		t.Fatalf("expected AuthError for truncated password, got %v", err)
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	auth, _, _ := newTestAuth(t)

	if _, err := auth.CurrentUser(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
