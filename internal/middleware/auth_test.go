package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itemboard/backend/internal/auth"
)

var testSecret = []byte("test-secret")

func protected(t *testing.T) (http.Handler, *Identity) {
	t.Helper()
	var seen Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		require.True(t, ok, "identity missing from context")
		seen = id
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(testSecret)(next), &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	handler, seen := protected(t)

	tok, err := auth.NewToken(testSecret, "user-1", "a@x.com", "A")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Identity{UserID: "user-1", Email: "a@x.com", FullName: "A"}, *seen)
}

func TestRequireAuth_Unauthenticated(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredRaw, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	otherSecret, err := auth.NewToken([]byte("other-secret"), "user-1", "a@x.com", "A")
	require.NoError(t, err)

	cases := map[string]string{
		"no cookie":     "",
		"garbage":       "not.a.jwt",
		"expired":       expiredRaw,
		"bad signature": otherSecret,
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			handler, _ := protected(t)
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			if value != "" {
				req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: value})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Always the same generic body, never the failure reason.
			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
		})
	}
}
