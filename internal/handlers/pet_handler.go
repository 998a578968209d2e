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

type PetHandler struct {
	pets services.PetService
}

func NewPetHandler(pets services.PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	pets, err := h.pets.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("[ListPets] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load pets"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pets))
}

func (h *PetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "petId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	pet, err := h.pets.GetByID(ctx, petID)
	if err != nil {
		log.Printf("[GetPet] pet=%s error=%v", petID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load pet"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pet))
}

func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.PetRequest
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

	pet, err := h.pets.Create(ctx, userID, &req)
	if err != nil {
		log.Printf("[CreatePet] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create pet"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(pet))
}

func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	petID := chi.URLParam(r, "petId")

	var req models.PetRequest
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

	pet, err := h.pets.Update(ctx, userID, petID, &req)
	if err != nil {
		log.Printf("[UpdatePet] user=%s pet=%s error=%v", userID, petID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update pet"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(pet))
}

func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	petID := chi.URLParam(r, "petId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := h.pets.Delete(ctx, userID, petID); err != nil {
		log.Printf("[DeletePet] user=%s pet=%s error=%v", userID, petID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete pet"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
