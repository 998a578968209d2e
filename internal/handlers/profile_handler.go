package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amigos/backend/internal/middleware"
	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
	users    services.UserService
}

func NewProfileHandler(profiles services.ProfileService, users services.UserService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users}
}

func (h *ProfileHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profiles.FindForUser(ctx, userID)
	if err != nil {
		log.Printf("[GetProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profiles.UpdateBasicInfo(ctx, userID, &req)
	if err != nil {
		if verr, ok := asValidationError(err); ok {
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(verr.Messages))
			return
		}
		log.Printf("[UpdateProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}

// GetFollowing lists the profiles of everyone the caller follows, with
// pictures resolved.
func (h *ProfileHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	following, err := h.users.GetFollowing(ctx, userID)
	if err != nil {
		log.Printf("[GetFollowingProfiles] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profiles"))
		return
	}

	views, err := h.profiles.FindForUsers(ctx, following)
	if err != nil {
		log.Printf("[GetFollowingProfiles] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profiles"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(views))
}

func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	query := r.URL.Query().Get("name")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse([]models.FieldMessage{
			{Path: "name", Message: "Query name is required"},
		}))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	views, err := h.profiles.SearchByName(ctx, query, userID)
	if err != nil {
		log.Printf("[SearchProfiles] user=%s query=%q error=%v", userID, query, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to search profiles"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(views))
}

func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	profile, err := h.profiles.FindByID(ctx, profileID)
	if err != nil {
		log.Printf("[GetProfileByID] profile=%s error=%v", profileID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(profile))
}
