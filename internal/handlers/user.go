package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/user-api/internal/auth"
	"github.com/crucial707/user-api/internal/middleware"
	"github.com/crucial707/user-api/internal/models"
	"github.com/crucial707/user-api/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo *repo.UserRepo
}

// ==========================
// Create User (name, email, password all required)
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	fields := make(map[string]string)
	if input.Name == "" {
		fields["name"] = "required"
	}
	if input.Email == "" {
		fields["email"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		slog.Error("create user: hash password", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Repo.Create(r.Context(), input.Name, input.Email, hash)
	if err != nil {
		h.storeError(w, r, "create user", err)
		return
	}

	slog.Info("user created", "id", user.ID, "name", user.Name, "by", caller(r))
	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		h.storeError(w, r, "list users", err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// ==========================
// Get User
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Update User (any subset of name, email, password)
// ==========================
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var input struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	patch := models.UserPatch{Name: input.Name, Email: input.Email}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			slog.Error("update user: hash password", "err", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
		patch.PasswordHash = &hash
	}

	user, err := h.Repo.Update(r.Context(), id, patch)
	if err != nil {
		h.storeError(w, r, "update user", err)
		return
	}

	slog.Info("user updated", "id", user.ID, "by", caller(r))
	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Delete User
// ==========================
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, "delete user", err)
		return
	}

	slog.Info("user deleted", "id", id, "by", caller(r))
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// storeError maps repository errors to HTTP status codes.
func (h *UserHandler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, "user not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicate):
		JSONError(w, repo.ErrDuplicate.Error(), http.StatusConflict)
	default:
		slog.Error(op, "path", r.URL.Path, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func caller(r *http.Request) string {
	name, _ := middleware.GetUsername(r.Context())
	return name
}
