package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryImageService keeps image payloads in process memory. Used when no
// MongoDB URI is configured, and by the tests.
type MemoryImageService struct {
	mu     sync.RWMutex
	images map[string]string // imageID -> base64 payload
}

func NewMemoryImageService() *MemoryImageService {
	return &MemoryImageService{images: make(map[string]string)}
}

func (s *MemoryImageService) Store(_ context.Context, data string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.images[id] = data
	return id, nil
}

func (s *MemoryImageService) Fetch(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.images[id]
	if !exists {
		return "", ErrImageNotFound
	}
	return data, nil
}
