package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"payroll/internal/transport/http/api"
)

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimitByClientIP(t *testing.T) {
	limited := RateLimit(1, nil)(noContent())

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.RemoteAddr = "203.0.113.10:4444"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.RemoteAddr = "203.0.113.10:5555"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by ip key, got %d", secondRec.Code)
	}
	if secondRec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	other := httptest.NewRequest(http.MethodPost, "/login", nil)
	other.RemoteAddr = "203.0.113.11:5555"
	otherRec := httptest.NewRecorder()
	limited.ServeHTTP(otherRec, other)
	if otherRec.Code != http.StatusNoContent {
		t.Fatalf("expected other client to pass, got %d", otherRec.Code)
	}
}

func TestRateLimitJSONResponse(t *testing.T) {
	limited := RateLimit(1, func(*http.Request) string { return "fixed" })(noContent())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/salaries", nil)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if i == 1 {
			if rec.Code != http.StatusTooManyRequests {
				t.Fatalf("expected throttled response, got %d", rec.Code)
			}
			if rec.Header().Get("Content-Type") != api.ContentType {
				t.Fatalf("expected JSON envelope, got %q", rec.Header().Get("Content-Type"))
			}
		}
	}
}

func TestRateLimitDisabled(t *testing.T) {
	limited := RateLimit(0, nil)(noContent())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected pass, got %d", i+1, rec.Code)
		}
	}
}

func loginRequest(remoteAddr, forwardedFor, username string) *http.Request {
	form := url.Values{"username": {username}, "password": {"guess"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	return req
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	limited := AuthRateLimit(2, nil)(noContent())

	allowed := 0
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest("198.51.100.7:4000", fmt.Sprintf("10.0.%d.%d", i/250, i%250+1), fmt.Sprintf("user%d", i)))
		if rec.Code == http.StatusNoContent {
			allowed++
		}
	}
	if allowed != 2 {
		t.Fatalf("expected 2 requests through for one peer, got %d", allowed)
	}
}

func TestAuthRateLimitByUsername(t *testing.T) {
	limited := AuthRateLimit(2, nil)(noContent())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest(fmt.Sprintf("203.0.113.%d:4000", i+1), "", "Admin"))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third attempt on one account to be throttled, got %v", codes)
	}

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest("203.0.113.50:4000", "", "someone-else"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected other account to pass, got %d", rec.Code)
	}
}

func TestFormFieldOrIPKey(t *testing.T) {
	key := FormFieldOrIPKey("username", nil)
	if got := key(loginRequest("192.0.2.1:1", "", " Admin ")); got != "username:admin" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := key(loginRequest("192.0.2.1:1", "", "")); got != "ip:192.0.2.1" {
		t.Fatalf("unexpected fallback key %q", got)
	}
}

func TestKeyedLimiterEvictsIdleKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewKeyedLimiter(rate.Every(time.Minute/2), 2)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		limiter.Limiter(fmt.Sprintf("key-%d", i))
	}
	if got := limiter.Len(); got != 100 {
		t.Fatalf("expected 100 buckets, got %d", got)
	}

	now = now.Add(30 * time.Second)
	limiter.Limiter("key-0")
	if got := limiter.Len(); got != 100 {
		t.Fatalf("buckets must survive within the idle window, got %d", got)
	}

	now = now.Add(time.Minute)
	limiter.Limiter("fresh")
	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected idle buckets to be dropped, got %d", got)
	}
}
