package middleware

import (
	"context"
	"net/http"

	"github.com/itemboard/backend/internal/auth"
)

// Identity is the verified session identity made available to handlers.
type Identity struct {
	UserID   string
	Email    string
	FullName string
}

type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a context carrying the verified identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the verified identity set by RequireAuth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuth verifies the session cookie and injects the caller's identity
// into the request context. A missing, malformed, or expired token always
// yields the same generic 401. The check is pure cookie parsing plus
// signature verification; it never touches the data store.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}

			claims, err := auth.VerifyToken(secret, cookie.Value)
			if err != nil {
				http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:   claims.Subject,
				Email:    claims.Email,
				FullName: claims.FullName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
