package requestctx

import "context"

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	sessionKey   ctxKey = "session"
)

// Session is the authenticated identity carried by a request. UserID is zero
// for the configured static administrator.
type Session struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func GetSession(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionKey).(Session)
	return session, ok
}

// IsAuthenticated reports whether a session identity is attached to ctx.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := GetSession(ctx)
	return ok
}
