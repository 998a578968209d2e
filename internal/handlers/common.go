package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/amigos/backend/internal/models"
)

const requestTimeout = 10 * time.Second

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func contextWithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, requestTimeout)
}

// asValidationError unwraps the aggregated field-message error services
// return for store-dependent validation.
func asValidationError(err error) (*models.ValidationError, bool) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
