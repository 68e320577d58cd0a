package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeLimiterStore struct {
	counts map[string]int64
}

func (f *fakeLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func TestAuthRateLimitBlocksAfterLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	store := &fakeLimiterStore{}
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"maria"}`))
		req.RemoteAddr = "203.0.113.7:4242"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first attempt: %d", code)
	}
	if code := send(); code != http.StatusOK {
		t.Fatalf("second attempt: %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("third attempt should be limited, got %d", code)
	}
}

func TestAuthRateLimitPerUsername(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	store := &fakeLimiterStore{}

	var sawBody string
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		sawBody = string(payload)
		w.WriteHeader(http.StatusOK)
	}))

	send := func(username string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"`+username+`"}`))
		req.RemoteAddr = "203.0.113.7:4242"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("maria"); code != http.StatusOK {
		t.Fatalf("first attempt: %d", code)
	}
	// Downstream handlers still see the full body after the peek.
	if !strings.Contains(sawBody, "maria") {
		t.Fatalf("body not restored, handler saw %q", sawBody)
	}
	if code := send("maria"); code != http.StatusTooManyRequests {
		t.Fatalf("second attempt for same username should be limited, got %d", code)
	}
	if code := send("ana"); code != http.StatusOK {
		t.Fatalf("other username must not be limited, got %d", code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, &fakeLimiterStore{}, nil)(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: %d", i, resp.Code)
		}
	}
}
