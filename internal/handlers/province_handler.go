package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

type ProvinceHandler struct {
	provinces services.ProvinceService
}

func NewProvinceHandler(provinces services.ProvinceService) *ProvinceHandler {
	return &ProvinceHandler{provinces: provinces}
}

func (h *ProvinceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	provinces, err := h.provinces.List(ctx)
	if err != nil {
		log.Printf("[ListProvinces] error=%v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load provinces"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(provinces))
}

func (h *ProvinceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	provinceID := chi.URLParam(r, "provinceId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	province, err := h.provinces.GetByID(ctx, provinceID)
	if err != nil {
		log.Printf("[GetProvince] province=%s error=%v", provinceID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load province"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(province))
}

func (h *ProvinceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ProvinceRequest
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

	province, err := h.provinces.Create(ctx, req.Name)
	if err != nil {
		log.Printf("[CreateProvince] error=%v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create province"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(province))
}

func (h *ProvinceHandler) Update(w http.ResponseWriter, r *http.Request) {
	provinceID := chi.URLParam(r, "provinceId")

	var req models.ProvinceRequest
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

	province, err := h.provinces.Update(ctx, provinceID, req.Name)
	if err != nil {
		log.Printf("[UpdateProvince] province=%s error=%v", provinceID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update province"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(province))
}

func (h *ProvinceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	provinceID := chi.URLParam(r, "provinceId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := h.provinces.Delete(ctx, provinceID); err != nil {
		log.Printf("[DeleteProvince] province=%s error=%v", provinceID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete province"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
