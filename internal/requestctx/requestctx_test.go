package requestctx

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := GetRequestID(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	if IsAuthenticated(context.Background()) {
		t.Fatal("empty context must not be authenticated")
	}

	ctx := WithSession(context.Background(), Session{UserID: 7, Username: "alice", IsAdmin: true})
	session, ok := GetSession(ctx)
	if !ok {
		t.Fatal("expected session in context")
	}
	if session.UserID != 7 || session.Username != "alice" || !session.IsAdmin {
		t.Fatalf("unexpected session: %+v", session)
	}
	if !IsAuthenticated(ctx) {
		t.Fatal("expected authenticated context")
	}
}
