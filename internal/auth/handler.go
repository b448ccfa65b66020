package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/anshgupta/community-board/internal/api"
	"github.com/anshgupta/community-board/internal/models"
	"github.com/anshgupta/community-board/internal/store"
	"github.com/anshgupta/community-board/internal/validation"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, hashedPw, role string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users  UserStore
	tokens *TokenService
	l      *zap.Logger
}

func NewHandler(users UserStore, tokens *TokenService, l *zap.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, l: l}
}

// Register creates a new user. Each validation gate fails the request
// before any later step runs, so a user row is never written without a
// password hash.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !validation.ValidName(req.Name) {
		api.Error(w, http.StatusBadRequest, "Name must be at least 2 characters long")
		return
	}
	if !validation.ValidEmail(req.Email) {
		api.Error(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if !validation.ValidPassword(req.Password) {
		api.Error(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}
	if !validation.ValidRole(req.Role) {
		api.Error(w, http.StatusBadRequest, "Invalid role. Must be admin, moderator, or member")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Friendly duplicate check. Two concurrent registrations can both pass
	// it; the unique constraint on users.email catches the loser below.
	if _, err := h.users.GetUserByEmail(r.Context(), email); err == nil {
		api.Error(w, http.StatusConflict, "User with this email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.l.Error("failed to check existing user", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		h.l.Error("failed to hash password", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Name, email, hashed, req.Role)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			api.Error(w, http.StatusConflict, "User with this email already exists")
			return
		}
		h.l.Error("failed to create user", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
		"message": "Registration successful",
	})
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the identical response so accounts can't be
// enumerated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !validation.ValidEmail(req.Email) {
		api.Error(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.l.Error("failed to look up user", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if !CheckPassword(req.Password, user.Password) {
		api.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		h.l.Error("failed to issue token", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    user,
		"message": "Login successful",
	})
}
