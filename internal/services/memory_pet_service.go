package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amigos/backend/internal/models"
)

type MemoryPetService struct {
	mu     sync.RWMutex
	pets   map[string]*models.Pet
	images ImageService
}

func NewMemoryPetService(images ImageService) *MemoryPetService {
	return &MemoryPetService{pets: make(map[string]*models.Pet), images: images}
}

func (s *MemoryPetService) ListByUser(_ context.Context, userID string) ([]models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Pet, 0)
	for _, p := range s.pets {
		if p.UserID == userID && p.Status == models.StatusActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryPetService) GetByID(_ context.Context, id string) (*models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.pets[id]
	if !exists || p.Status != models.StatusActive {
		return nil, ErrPetNotFound
	}
	out := *p
	return &out, nil
}

func (s *MemoryPetService) Create(ctx context.Context, userID string, req *models.PetRequest) (*models.Pet, error) {
	pictureID := ""
	if req.Picture != "" {
		id, err := s.images.Store(ctx, req.Picture)
		if err != nil {
			return nil, err
		}
		pictureID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &models.Pet{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		PictureID:   pictureID,
		Status:      models.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	s.pets[p.ID] = p
	out := *p
	return &out, nil
}

func (s *MemoryPetService) Update(ctx context.Context, userID, id string, req *models.PetRequest) (*models.Pet, error) {
	pictureID := ""
	if req.Picture != "" {
		stored, err := s.images.Store(ctx, req.Picture)
		if err != nil {
			return nil, err
		}
		pictureID = stored
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.pets[id]
	if !exists || p.UserID != userID || p.Status != models.StatusActive {
		return nil, ErrPetNotFound
	}
	p.Name = req.Name
	p.Description = req.Description
	if pictureID != "" {
		p.PictureID = pictureID
	}
	out := *p
	return &out, nil
}

func (s *MemoryPetService) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.pets[id]
	if !exists || p.UserID != userID || p.Status != models.StatusActive {
		return ErrPetNotFound
	}
	p.Status = models.StatusDisabled
	return nil
}
