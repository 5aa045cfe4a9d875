package utils

import (
	"context"
	"time"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

// SessionData is the session view handed to middleware by a SessionFetcher.
// UserType is whatever role was resolved at login time ("customer" or
// "companion"); it is not re-verified per request.
type SessionData struct {
	UserID    string
	UserType  string
	ExpiresAt time.Time
}
