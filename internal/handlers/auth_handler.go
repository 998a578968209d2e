package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

type AuthHandler struct {
	users    services.UserService
	profiles services.ProfileService
	tokens   *services.TokenService
}

func NewAuthHandler(users services.UserService, profiles services.ProfileService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{users: users, profiles: profiles, tokens: tokens}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
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

	user, err := h.users.Register(ctx, &req)
	if err != nil {
		if err == services.ErrLoginTaken {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Login already registered"))
			return
		}
		log.Printf("[Register] login=%s error=%v", req.Login, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
		return
	}

	// Registration pairs every user with a profile seeded from the name.
	if _, err := h.profiles.CreateDefault(ctx, user.ID, user.Name); err != nil {
		log.Printf("[Register] user=%s profile error=%v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
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

	user, err := h.users.Login(ctx, req.Login, req.Password)
	if err != nil {
		if err == services.ErrBadCredentials {
			// Reported generically: the caller never learns whether the
			// login or the password was wrong.
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid login or password"))
			return
		}
		log.Printf("[Login] login=%s error=%v", req.Login, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}
