package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/crystal-grimoire/backend/internal/model"
)

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc123", "abc123", true},
		{"missing", "", "", false},
		{"no scheme", "abc123", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"empty token", "Bearer ", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			got, err := ExtractToken(r)
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Fatalf("got %q, want %q", got, tc.want)
				}
				return
			}
			if !errors.Is(err, model.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestStaticAuthenticator(t *testing.T) {
	a := NewStaticAuthenticator(map[string]string{"tok-1": "u1"})

	userID, err := a.Authenticate(context.Background(), "tok-1")
	if err != nil || userID != "u1" {
		t.Fatalf("got (%q, %v)", userID, err)
	}
	if _, err := a.Authenticate(context.Background(), "tok-2"); !errors.Is(err, model.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestDevAuthenticator(t *testing.T) {
	a := DevAuthenticator{}

	userID, err := a.Authenticate(context.Background(), "dev-luna")
	if err != nil || userID != "luna" {
		t.Fatalf("got (%q, %v)", userID, err)
	}
	for _, tok := range []string{"luna", "dev-", ""} {
		if _, err := a.Authenticate(context.Background(), tok); !errors.Is(err, model.ErrUnauthenticated) {
			t.Fatalf("token %q: expected ErrUnauthenticated, got %v", tok, err)
		}
	}
}
