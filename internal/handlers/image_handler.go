package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

type ImageHandler struct {
	images services.ImageService
}

func NewImageHandler(images services.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

func (h *ImageHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req models.StoreImageRequest
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

	id, err := h.images.Store(ctx, req.Image)
	if err != nil {
		log.Printf("[StoreImage] error=%v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to store image"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.Image{ID: id}))
}

func (h *ImageHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	data, err := h.images.Fetch(ctx, imageID)
	if err != nil {
		log.Printf("[FetchImage] image=%s error=%v", imageID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load image"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.Image{ID: imageID, Data: data}))
}
