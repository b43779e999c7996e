package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/itemboard/backend/internal/models"
	"github.com/itemboard/backend/internal/store"
)

// UserStore defines the persistence the auth handlers need.
type UserStore interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds the auth-related HTTP handlers.
type Handler struct {
	users        UserStore
	secret       []byte
	secureCookie bool
}

func NewHandler(users UserStore, secret []byte, secureCookie bool) *Handler {
	return &Handler{users: users, secret: secret, secureCookie: secureCookie}
}

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"Invalid request body"}`, http.StatusBadRequest)
		return
	}
	fullName := strings.TrimSpace(req.FullName)
	email := NormalizeEmail(req.Email)
	if fullName == "" || email == "" || req.Password == "" {
		http.Error(w, `{"message":"Missing required fields"}`, http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		http.Error(w, `{"message":"Server error"}`, http.StatusInternalServerError)
		return
	}

	if _, err := h.users.Create(r.Context(), fullName, email, hash); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			http.Error(w, `{"message":"Email already registered"}`, http.StatusConflict)
			return
		}
		log.Printf("register: create user: %v", err)
		http.Error(w, `{"message":"Server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "User registered"})
}

// Login verifies credentials and sets the session cookie. Unknown email and
// wrong password take the same path out so the two are indistinguishable.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"message":"Invalid request body"}`, http.StatusBadRequest)
		return
	}
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		http.Error(w, `{"message":"Missing credentials"}`, http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("login: find user: %v", err)
			http.Error(w, `{"message":"Server error"}`, http.StatusInternalServerError)
			return
		}
		http.Error(w, `{"message":"Invalid email or password"}`, http.StatusUnauthorized)
		return
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		http.Error(w, `{"message":"Invalid email or password"}`, http.StatusUnauthorized)
		return
	}

	token, err := NewToken(h.secret, user.ID.Hex(), user.Email, user.FullName)
	if err != nil {
		log.Printf("login: mint token: %v", err)
		http.Error(w, `{"message":"Server error"}`, http.StatusInternalServerError)
		return
	}
	SetSessionCookie(w, token, h.secureCookie)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Login successful"})
}

// Logout clears the session cookie. The token itself is not revoked
// server-side; it simply ages out.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}
