package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amigos/backend/internal/models"
)

type MemoryUserService struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byLogin map[string]string // login -> userID
}

func NewMemoryUserService() *MemoryUserService {
	return &MemoryUserService{
		users:   make(map[string]*models.User),
		byLogin: make(map[string]string),
	}
}

func (s *MemoryUserService) Register(_ context.Context, req *models.RegisterRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byLogin[req.Login]; exists {
		return nil, ErrLoginTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Login:        req.Login,
		Name:         req.Name,
		PasswordHash: string(hashedPassword),
		Permissions:  []string{models.PermissionUser},
		Status:       models.StatusActive,
		Following:    []string{},
		CreatedAt:    time.Now().UTC(),
	}

	s.users[user.ID] = user
	s.byLogin[user.Login] = user.ID

	out := *user
	return &out, nil
}

func (s *MemoryUserService) Login(_ context.Context, login, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byLogin[login]
	if !exists {
		return nil, ErrBadCredentials
	}
	user := s.users[userID]
	if user.Status != models.StatusActive {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	out := *user
	return &out, nil
}

func (s *MemoryUserService) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (s *MemoryUserService) ChangePassword(_ context.Context, userID, currentPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrBadCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	return nil
}

func (s *MemoryUserService) Grant(_ context.Context, userID string, permissions []string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, ErrUserNotFound
	}
	for _, perm := range permissions {
		if !contains(user.Permissions, perm) {
			user.Permissions = append(user.Permissions, perm)
		}
	}
	out := *user
	return &out, nil
}

func (s *MemoryUserService) Revoke(_ context.Context, userID string, permissions []string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, ErrUserNotFound
	}
	kept := make([]string, 0, len(user.Permissions))
	for _, held := range user.Permissions {
		if !contains(permissions, held) {
			kept = append(kept, held)
		}
	}
	user.Permissions = kept
	out := *user
	return &out, nil
}

func (s *MemoryUserService) Enable(_ context.Context, userID string) error {
	return s.setStatus(userID, models.StatusActive)
}

func (s *MemoryUserService) Disable(_ context.Context, userID string) error {
	return s.setStatus(userID, models.StatusDisabled)
}

func (s *MemoryUserService) setStatus(userID string, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return ErrUserNotFound
	}
	user.Status = status
	return nil
}

func (s *MemoryUserService) HasPermission(_ context.Context, userID, permission string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists || user.Status != models.StatusActive {
		return ErrUserNotFound
	}
	if !contains(user.Permissions, permission) {
		return ErrPermissionDenied
	}
	return nil
}

func (s *MemoryUserService) Follow(_ context.Context, callerID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, exists := s.users[callerID]
	if !exists {
		return ErrUserNotFound
	}
	if _, exists := s.users[targetID]; !exists {
		return ErrUserNotFound
	}
	if contains(caller.Following, targetID) {
		return ErrAlreadyFollowing
	}
	caller.Following = append(caller.Following, targetID)
	return nil
}

func (s *MemoryUserService) Unfollow(_ context.Context, callerID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, exists := s.users[callerID]
	if !exists {
		return ErrUserNotFound
	}
	if _, exists := s.users[targetID]; !exists {
		return ErrUserNotFound
	}
	if !contains(caller.Following, targetID) {
		return ErrNotFollowing
	}
	kept := make([]string, 0, len(caller.Following)-1)
	for _, id := range caller.Following {
		if id != targetID {
			kept = append(kept, id)
		}
	}
	caller.Following = kept
	return nil
}

func (s *MemoryUserService) GetFollowing(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, ErrUserNotFound
	}
	out := make([]string, len(user.Following))
	copy(out, user.Following)
	return out, nil
}

func (s *MemoryUserService) FindIDsByName(_ context.Context, query string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	ids := make([]string, 0)
	for _, user := range s.users {
		if user.Status != models.StatusActive {
			continue
		}
		if strings.Contains(strings.ToLower(user.Name), q) {
			ids = append(ids, user.ID)
		}
	}
	return ids, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
