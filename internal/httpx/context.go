package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	usernameKey  contextKey = "username"
	initialsKey  contextKey = "initials"
	requestIDKey contextKey = "requestID"
	accessLogKey contextKey = "accessLog"
)

// accessLogEntry is filled in by inner handlers and read by AccessLogMiddleware after they return.
type accessLogEntry struct {
	initials string
}

// UserFrom retrieves the logged-in username and initials from the request context.
func UserFrom(r *http.Request) (username, initials string) {
	username, _ = r.Context().Value(usernameKey).(string)
	initials, _ = r.Context().Value(initialsKey).(string)
	return username, initials
}

// ContextWithUser returns a new context carrying the session user.
func ContextWithUser(ctx context.Context, username, initials string) context.Context {
	if entry, ok := ctx.Value(accessLogKey).(*accessLogEntry); ok {
		entry.initials = initials
	}
	ctx = context.WithValue(ctx, usernameKey, username)
	return context.WithValue(ctx, initialsKey, initials)
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
