package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/user-api/internal/auth"
	"github.com/crucial707/user-api/internal/metrics"
	"github.com/crucial707/user-api/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Tokens   *auth.Tokens
}

// ==========================
// Login (name + password; both failure modes answer the same 401)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByName(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			slog.Info("login failed", "username", input.Username, "reason", "unknown_user")
			metrics.IncLogin("unknown_user")
			JSONError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		slog.Error("login: lookup user", "username", input.Username, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		slog.Info("login failed", "username", input.Username, "reason", "password_mismatch")
		metrics.IncLogin("password_mismatch")
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Issue(user.Name)
	if err != nil {
		slog.Error("login: sign token", "err", err)
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	metrics.IncLogin("success")
	slog.Info("login succeeded", "username", user.Name, "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
