package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the current person's ID
	UserIDKey ContextKey = "user_id"
)

// UserContext resolves the acting person from the X-User-ID header.
// There is no real authentication layer; the header stands in for one
// so clients can act as different people.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		personIDStr := r.Header.Get("X-User-ID")
		if personIDStr != "" {
			if personID, err := strconv.ParseInt(personIDStr, 10, 64); err == nil && personID > 0 {
				ctx := context.WithValue(r.Context(), UserIDKey, personID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		// Default to person 1 if no header provided
		ctx := context.WithValue(r.Context(), UserIDKey, int64(1))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the current person's ID from the request context
func GetUserID(ctx context.Context) (int64, bool) {
	personID, ok := ctx.Value(UserIDKey).(int64)
	return personID, ok
}
