package services

import (
	"context"
	"errors"

	"github.com/amigos/backend/internal/models"
)

var ErrPetNotFound = errors.New("pet not found")

type PetService interface {
	ListByUser(ctx context.Context, userID string) ([]models.Pet, error)
	GetByID(ctx context.Context, id string) (*models.Pet, error)
	Create(ctx context.Context, userID string, req *models.PetRequest) (*models.Pet, error)
	Update(ctx context.Context, userID, id string, req *models.PetRequest) (*models.Pet, error)
	Delete(ctx context.Context, userID, id string) error
}
