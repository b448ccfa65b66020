package community

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anshgupta/community-board/internal/api"
	"github.com/anshgupta/community-board/internal/middleware"
	"github.com/anshgupta/community-board/internal/models"
	"github.com/anshgupta/community-board/internal/store"
	"github.com/anshgupta/community-board/internal/validation"
)

// maxAvatarBytes caps avatar uploads at 2 MiB.
const maxAvatarBytes = 2 << 20

var avatarContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// Store defines the persistence interface for posts, stats and profiles.
type Store interface {
	CreatePost(ctx context.Context, userID, title, content string) (*models.Post, error)
	ListPosts(ctx context.Context, userID string) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountPostsByUser(ctx context.Context, userID string) (int64, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SetUserAvatar(ctx context.Context, id, avatarURL string) (*models.User, error)
}

// FileStore defines the interface for avatar file storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// Handler holds the community HTTP handlers.
type Handler struct {
	store Store
	files FileStore
	l     *zap.Logger
}

func NewHandler(store Store, files FileStore, l *zap.Logger) *Handler {
	return &Handler{store: store, files: files, l: l}
}

// ListPosts serves the public feed. Auth here is enrichment, not a gate:
// with a valid token, filter=my narrows to the caller's posts and stats
// include a personal count; without one, those options silently fall back
// to the anonymous view.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		userID = claims.UserID
	}

	if r.URL.Query().Get("stats") == "true" {
		h.stats(w, r, userID)
		return
	}

	filter := ""
	if r.URL.Query().Get("filter") == "my" && userID != "" {
		filter = userID
	}

	posts, err := h.store.ListPosts(r.Context(), filter)
	if err != nil {
		h.l.Error("failed to list posts", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"posts":   posts,
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request, userID string) {
	totalPosts, err := h.store.CountPosts(r.Context())
	if err != nil {
		h.l.Error("failed to count posts", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	totalUsers, err := h.store.CountUsers(r.Context())
	if err != nil {
		h.l.Error("failed to count users", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	var userPosts int64
	if userID != "" {
		userPosts, err = h.store.CountPostsByUser(r.Context(), userID)
		if err != nil {
			h.l.Error("failed to count user posts", zap.Error(err))
			api.Error(w, http.StatusInternalServerError, "Failed to fetch stats")
			return
		}
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats": models.Stats{
			TotalPosts: totalPosts,
			TotalUsers: totalUsers,
			UserPosts:  userPosts,
		},
	})
}

// CreatePost creates a post owned by the authenticated user.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !validation.ValidPostTitle(req.Title) {
		api.Error(w, http.StatusBadRequest, "Title must be at least 5 characters long")
		return
	}
	if !validation.ValidPostContent(req.Content) {
		api.Error(w, http.StatusBadRequest, "Content must be at least 20 characters long")
		return
	}

	post, err := h.store.CreatePost(r.Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		h.l.Error("failed to create post", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"post":    post,
		"message": "Post created successfully",
	})
}

// Profile returns the authenticated user's record. A valid token whose
// user row is gone is the orphaned-token case and yields 404.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.l.Error("failed to fetch profile", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// UploadAvatar stores the uploaded image and points the user's avatar_url
// at it.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		api.Error(w, http.StatusBadRequest, "Avatar must be an image up to 2 MB")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Avatar file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Avatar must be an image up to 2 MB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := avatarContentTypes[contentType]
	if !ok {
		api.Error(w, http.StatusBadRequest, "Avatar must be a PNG, JPEG, or WebP image")
		return
	}

	key := fmt.Sprintf("%s/%s%s", claims.UserID, uuid.New().String(), ext)
	if err := h.files.Upload(r.Context(), key, data, contentType); err != nil {
		h.l.Error("failed to upload avatar", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	user, err := h.store.SetUserAvatar(r.Context(), claims.UserID, "/api/avatars/"+key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.l.Error("failed to update avatar url", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
		"message": "Avatar updated successfully",
	})
}

// GetAvatar streams an avatar object publicly.
func (h *Handler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" || strings.Contains(key, "..") || path.Clean(key) != key {
		api.Error(w, http.StatusNotFound, "Avatar not found")
		return
	}

	data, contentType, err := h.files.Download(r.Context(), key)
	if err != nil {
		api.Error(w, http.StatusNotFound, "Avatar not found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
