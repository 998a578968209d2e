package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/amigos/backend/internal/models"
)

type MemoryProvinceService struct {
	mu        sync.RWMutex
	provinces map[string]*models.Province
}

func NewMemoryProvinceService() *MemoryProvinceService {
	return &MemoryProvinceService{provinces: make(map[string]*models.Province)}
}

func (s *MemoryProvinceService) List(_ context.Context) ([]models.Province, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Province, 0, len(s.provinces))
	for _, p := range s.provinces {
		if p.Status == models.StatusActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryProvinceService) GetByID(_ context.Context, id string) (*models.Province, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.provinces[id]
	if !exists || p.Status != models.StatusActive {
		return nil, ErrProvinceNotFound
	}
	out := *p
	return &out, nil
}

func (s *MemoryProvinceService) Create(_ context.Context, name string) (*models.Province, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &models.Province{
		ID:     uuid.New().String(),
		Name:   name,
		Status: models.StatusActive,
	}
	s.provinces[p.ID] = p
	out := *p
	return &out, nil
}

func (s *MemoryProvinceService) Update(_ context.Context, id, name string) (*models.Province, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.provinces[id]
	if !exists || p.Status != models.StatusActive {
		return nil, ErrProvinceNotFound
	}
	p.Name = name
	out := *p
	return &out, nil
}

func (s *MemoryProvinceService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.provinces[id]
	if !exists || p.Status != models.StatusActive {
		return ErrProvinceNotFound
	}
	p.Status = models.StatusDisabled
	return nil
}
