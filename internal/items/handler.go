package items

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/itemboard/backend/internal/middleware"
	"github.com/itemboard/backend/internal/models"
	"github.com/itemboard/backend/internal/store"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ItemStore defines the persistence the item handlers need.
type ItemStore interface {
	Insert(ctx context.Context, userID, title, description string) (*models.Item, error)
	ListByUser(ctx context.Context, userID string) ([]models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Update(ctx context.Context, id string, upd models.UpdateItemRequest) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

// Handler holds the item HTTP handlers. Every route is mounted behind
// RequireAuth, so the identity is always present in the context.
type Handler struct {
	items ItemStore
}

func NewHandler(items ItemStore) *Handler {
	return &Handler{items: items}
}

// List returns the caller's items, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFrom(r.Context())

	items, err := h.items.ListByUser(r.Context(), caller.UserID)
	if err != nil {
		log.Printf("list items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Create persists a new item owned by the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFrom(r.Context())

	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing fields"})
		return
	}

	item, err := h.items.Insert(r.Context(), caller.UserID, title, description)
	if err != nil {
		log.Printf("create item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Item created", "item": item})
}

// Get returns a single item after the ownership check.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"item": item})
}

// Update applies a partial update. Omitted fields keep their stored value;
// an empty body returns the record unchanged.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.Title == nil && req.Description == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Item updated", "item": item})
		return
	}

	updated, err := h.items.Update(r.Context(), item.ID.Hex(), req)
	if err != nil {
		log.Printf("update item %s: %v", item.ID.Hex(), err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Item updated", "item": updated})
}

// Delete removes an item.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.items.Delete(r.Context(), item.ID.Hex()); err != nil {
		log.Printf("delete item %s: %v", item.ID.Hex(), err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

// loadOwned validates the id, fetches the item, and runs the ownership
// check, writing the error response itself when any step fails. Existence
// is checked before ownership, so a non-owner probing a valid id sees 403
// where a missing id sees 404. That distinction leaks existence; it matches
// the dashboard's long-standing behavior and is kept deliberately.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Item, bool) {
	caller, _ := middleware.IdentityFrom(r.Context())
	id := chi.URLParam(r, "id")

	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidID):
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid ID"})
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		default:
			log.Printf("load item %s: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		}
		return nil, false
	}
	if item.UserID != caller.UserID {
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden"})
		return nil, false
	}
	return item, true
}
