package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"payroll/internal/requestctx"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "super-secret1" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := CheckPassword(hash, "super-secret1"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestIssueAndParseSession(t *testing.T) {
	session := requestctx.Session{UserID: 42, Username: "alice", IsAdmin: true}
	token, err := IssueSession("test-secret", session, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseSession("test-secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed != session {
		t.Fatalf("session mismatch: %+v", parsed)
	}
}

func TestParseSessionRejects(t *testing.T) {
	valid, err := IssueSession("test-secret", requestctx.Session{Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	expired, err := IssueSession("test-secret", requestctx.Session{Username: "alice"}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "alice"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	tests := map[string]struct {
		secret string
		token  string
	}{
		"wrong secret":   {secret: "other", token: valid},
		"expired":        {secret: "test-secret", token: expired},
		"garbage":        {secret: "test-secret", token: "not-a-token"},
		"unsigned token": {secret: "test-secret", token: none},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseSession(tc.secret, tc.token); !errors.Is(err, ErrInvalidSession) {
				t.Fatalf("expected ErrInvalidSession, got %v", err)
			}
		})
	}
}
