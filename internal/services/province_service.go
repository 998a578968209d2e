package services

import (
	"context"
	"errors"

	"github.com/amigos/backend/internal/models"
)

var ErrProvinceNotFound = errors.New("province not found")

type ProvinceService interface {
	List(ctx context.Context) ([]models.Province, error)
	GetByID(ctx context.Context, id string) (*models.Province, error)
	Create(ctx context.Context, name string) (*models.Province, error)
	Update(ctx context.Context, id, name string) (*models.Province, error)
	Delete(ctx context.Context, id string) error
}
