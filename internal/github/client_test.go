package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zerolog.Nop())
}

func TestVerifyValidToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "token good-token" {
			t.Errorf("Expected token auth header, got %q", got)
		}
		w.Write([]byte(`{"id": 12345, "login": "octocat"}`))
	})

	out := c.Verify(context.Background(), "good-token")
	if !out.Valid {
		t.Fatalf("Expected valid outcome, got reason %q", out.Reason)
	}
	if out.UserID != 12345 {
		t.Errorf("Expected user ID 12345, got %d", out.UserID)
	}
	if out.Login != "octocat" {
		t.Errorf("Expected login 'octocat', got %q", out.Login)
	}
}

func TestVerifyRejectedToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if out := c.Verify(context.Background(), "bad-token"); out.Valid {
		t.Error("Expected 401 from the API to yield invalid")
	}
}

func TestVerifyMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	if out := c.Verify(context.Background(), "some-token"); out.Valid {
		t.Error("Expected a malformed success body to yield invalid")
	}
}

func TestVerifyEmptyTokenShortCircuits(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if out := c.Verify(context.Background(), "  "); out.Valid {
		t.Error("Expected a blank token to be invalid")
	}
	if called {
		t.Error("Expected no network call for a blank token")
	}
}

func TestVerifyTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable on purpose
	c := NewClient(srv.URL, time.Second, zerolog.Nop())

	if out := c.Verify(context.Background(), "some-token"); out.Valid {
		t.Error("Expected an unreachable verifier to yield invalid")
	}
}
