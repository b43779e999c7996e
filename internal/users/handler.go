package users

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/itemboard/backend/internal/auth"
	"github.com/itemboard/backend/internal/middleware"
	"github.com/itemboard/backend/internal/models"
	"github.com/itemboard/backend/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// UserStore defines the account persistence the profile handlers need.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, fullName, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// UserInfoStore defines persistence for the information extension.
type UserInfoStore interface {
	GetByUser(ctx context.Context, userID string) (*models.UserInformation, error)
	Upsert(ctx context.Context, userID string, req models.UserInformationRequest) (*models.UserInformation, error)
}

// Handler holds the profile and credential management handlers. The target
// account always comes from the verified session, never from the body.
type Handler struct {
	users UserStore
	info  UserInfoStore
}

func NewHandler(users UserStore, info UserInfoStore) *Handler {
	return &Handler{users: users, info: info}
}

// UpdateProfile changes the caller's name and email.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFrom(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	fullName := strings.TrimSpace(req.FullName)
	email := auth.NormalizeEmail(req.Email)
	if fullName == "" || email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "All fields are required"})
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), caller.UserID, fullName, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
			return
		}
		// A unique-index collision on the new email lands here too and
		// surfaces as a plain 500, matching the dashboard's behavior.
		log.Printf("update profile %s: %v", caller.UserID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update profile"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated",
		"user":    map[string]string{"fullName": user.FullName, "email": user.Email},
	})
}

// ChangePassword verifies the current password before storing the digest of
// the new one. Outstanding session tokens stay valid afterwards; the token
// carries no password state to check against.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFrom(r.Context())

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.Current == "" || req.NewPass == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "All fields are required"})
		return
	}

	user, err := h.users.GetByID(r.Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
			return
		}
		log.Printf("change password: load user %s: %v", caller.UserID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to change password"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Current) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPass)
	if err != nil {
		log.Printf("change password: hash: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to change password"})
		return
	}
	if err := h.users.UpdatePassword(r.Context(), caller.UserID, hash); err != nil {
		log.Printf("change password: update %s: %v", caller.UserID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to change password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// GetInformation returns the caller's extension record; userInfo is null
// until the first PATCH creates it.
func (h *Handler) GetInformation(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFrom(r.Context())

	info, err := h.info.GetByUser(r.Context(), caller.UserID)
	if err != nil {
		log.Printf("get user information %s: %v", caller.UserID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch user info"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"userInfo": info})
}

// UpdateInformation upserts the caller's extension record, creating it on
// the first write.
func (h *Handler) UpdateInformation(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFrom(r.Context())

	var req models.UserInformationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	info, err := h.info.Upsert(r.Context(), caller.UserID, req)
	if err != nil {
		log.Printf("update user information %s: %v", caller.UserID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update user info"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "User information updated", "userInfo": info})
}
