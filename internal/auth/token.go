package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenTTL is the fixed session lifetime. There is no server-side
	// revocation; a token stays valid until this expires.
	TokenTTL = 7 * 24 * time.Hour

	// CookieName carries the session token on every request.
	CookieName = "auth_token"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload: the registered claims plus the
// identity fields handlers need without a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewToken mints a signed HS256 session token for the given user.
func NewToken(secret []byte, userID, email, fullName string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Email:    email,
		FullName: fullName,
	})
	return token.SignedString(secret)
}

// VerifyToken checks signature and expiry and returns the embedded claims.
// Any failure collapses into ErrInvalidToken; callers must not surface a
// more specific reason to the client.
func VerifyToken(secret []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetSessionCookie attaches the session token as an HTTP-only cookie.
// Secure is set only for production deployments so local development over
// plain HTTP keeps working.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie client-side. The token
// itself remains valid until its expiry.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
