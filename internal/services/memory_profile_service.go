package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amigos/backend/internal/models"
)

type MemoryProfileService struct {
	mu        sync.RWMutex
	profiles  map[string]*models.Profile
	users     UserService
	provinces ProvinceService
	images    ImageService
}

func NewMemoryProfileService(users UserService, provinces ProvinceService, images ImageService) *MemoryProfileService {
	return &MemoryProfileService{
		profiles:  make(map[string]*models.Profile),
		users:     users,
		provinces: provinces,
		images:    images,
	}
}

func (s *MemoryProfileService) FindForUser(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.activeByUser(userID); p != nil {
		out := *p
		return &out, nil
	}
	// Zero-value profile; the caller never sees a not-found here.
	return &models.Profile{UserID: userID}, nil
}

func (s *MemoryProfileService) UpdateBasicInfo(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	s.mu.RLock()
	existing := s.activeByUser(userID)
	s.mu.RUnlock()

	messages := req.Validate(existing == nil)
	if req.ProvinceID != "" {
		if _, err := s.provinces.GetByID(ctx, req.ProvinceID); err != nil {
			if err == ErrProvinceNotFound {
				messages = append(messages, models.FieldMessage{Path: "province_id", Message: "Province not found"})
			} else {
				return nil, err
			}
		}
	}
	if len(messages) > 0 {
		return nil, &models.ValidationError{Messages: messages}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	profile := s.activeByUser(userID)
	if profile == nil {
		profile = &models.Profile{
			ID:     uuid.New().String(),
			UserID: userID,
			Status: models.StatusActive,
		}
		s.profiles[profile.ID] = profile
	}

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Email != "" {
		profile.Email = req.Email
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	// Omitting the province clears it.
	profile.ProvinceID = req.ProvinceID
	profile.UpdatedAt = now

	out := *profile
	return &out, nil
}

func (s *MemoryProfileService) FindByID(_ context.Context, id string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.profiles[id]
	if !exists || p.Status != models.StatusActive {
		return nil, ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

func (s *MemoryProfileService) SearchByName(ctx context.Context, query, excludeUserID string) ([]models.ProfileView, error) {
	userIDs, err := s.users.FindIDsByName(ctx, query)
	if err != nil {
		return nil, err
	}
	userMatch := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		userMatch[id] = true
	}

	s.mu.RLock()
	matched := make([]models.Profile, 0)
	q := strings.ToLower(query)
	for _, p := range s.profiles {
		if p.Status != models.StatusActive || p.UserID == excludeUserID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) || userMatch[p.UserID] {
			matched = append(matched, *p)
		}
	}
	s.mu.RUnlock()

	return profilesToViews(ctx, s.images, matched)
}

func (s *MemoryProfileService) FindForUsers(ctx context.Context, userIDs []string) ([]models.ProfileView, error) {
	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}

	s.mu.RLock()
	matched := make([]models.Profile, 0)
	for _, p := range s.profiles {
		if p.Status == models.StatusActive && wanted[p.UserID] {
			matched = append(matched, *p)
		}
	}
	s.mu.RUnlock()

	return profilesToViews(ctx, s.images, matched)
}

func (s *MemoryProfileService) CreateDefault(_ context.Context, userID, name string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.activeByUser(userID); p != nil {
		out := *p
		return &out, nil
	}

	profile := &models.Profile{
		ID:        userID,
		UserID:    userID,
		Name:      name,
		Status:    models.StatusActive,
		UpdatedAt: time.Now().UTC(),
	}
	s.profiles[profile.ID] = profile
	out := *profile
	return &out, nil
}

// activeByUser must be called with the lock held.
func (s *MemoryProfileService) activeByUser(userID string) *models.Profile {
	for _, p := range s.profiles {
		if p.UserID == userID && p.Status == models.StatusActive {
			return p
		}
	}
	return nil
}

