package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amigos/backend/internal/middleware"
	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

type UserHandler struct {
	users    services.UserService
	profiles services.ProfileService
}

func NewUserHandler(users services.UserService, profiles services.ProfileService) *UserHandler {
	return &UserHandler{users: users, profiles: profiles}
}

// GetCurrent returns the caller's user record together with its profile.
func (h *UserHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[GetCurrent] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load user"))
		return
	}

	profile, err := h.profiles.FindForUser(ctx, userID)
	if err != nil {
		log.Printf("[GetCurrent] user=%s profile error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load user"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.CurrentUser{
		User:    *user,
		Profile: profile,
	}))
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if messages := req.Validate(); len(messages) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(messages))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := h.users.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		if err == services.ErrBadCredentials {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Current password does not match"))
			return
		}
		log.Printf("[ChangePassword] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to change password"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	targetID := chi.URLParam(r, "userId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := h.users.Follow(ctx, userID, targetID); err != nil {
		if err == services.ErrAlreadyFollowing {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Already following this user"))
			return
		}
		log.Printf("[Follow] user=%s target=%s error=%v", userID, targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to follow user"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	targetID := chi.URLParam(r, "userId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := h.users.Unfollow(ctx, userID, targetID); err != nil {
		if err == services.ErrNotFollowing {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Not following this user"))
			return
		}
		log.Printf("[Unfollow] user=%s target=%s error=%v", userID, targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to unfollow user"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *UserHandler) Grant(w http.ResponseWriter, r *http.Request) {
	h.changePermissions(w, r, h.users.Grant)
}

func (h *UserHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	h.changePermissions(w, r, h.users.Revoke)
}

func (h *UserHandler) changePermissions(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, userID string, permissions []string) (*models.User, error)) {
	targetID := chi.URLParam(r, "userId")

	var req models.PermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if messages := req.Validate(); len(messages) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(messages))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	user, err := apply(ctx, targetID, req.Permissions)
	if err != nil {
		log.Printf("[Permissions] target=%s error=%v", targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update permissions"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *UserHandler) Enable(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.users.Enable)
}

func (h *UserHandler) Disable(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.users.Disable)
}

func (h *UserHandler) setStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, userID string) error) {
	targetID := chi.URLParam(r, "userId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := apply(ctx, targetID); err != nil {
		log.Printf("[SetStatus] target=%s error=%v", targetID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update user"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
