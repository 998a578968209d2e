package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amigos/backend/internal/models"
)

type MemoryPostService struct {
	mu     sync.RWMutex
	posts  map[string]*models.Post
	users  UserService
	images ImageService
}

func NewMemoryPostService(users UserService, images ImageService) *MemoryPostService {
	return &MemoryPostService{
		posts:  make(map[string]*models.Post),
		users:  users,
		images: images,
	}
}

func (s *MemoryPostService) Publish(ctx context.Context, userID string, req *models.PublishPostRequest) (*models.Post, error) {
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

	now := time.Now().UTC()
	post := &models.Post{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		PictureID:   pictureID,
		Likes:       []string{},
		LikeCount:   0,
		PetIDs:      req.PetIDs,
		Status:      models.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if post.PetIDs == nil {
		post.PetIDs = []string{}
	}
	s.posts[post.ID] = post
	out := *post
	return &out, nil
}

func (s *MemoryPostService) Update(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	pictureID := ""
	if req.Picture != nil && *req.Picture != "" {
		id, err := s.images.Store(ctx, *req.Picture)
		if err != nil {
			return nil, err
		}
		pictureID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.activeOwned(userID, postID)
	if post == nil {
		return nil, ErrPostNotFound
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if pictureID != "" {
		post.PictureID = pictureID
	}
	if req.PetIDs != nil {
		post.PetIDs = *req.PetIDs
	}
	post.UpdatedAt = time.Now().UTC()

	out := *post
	return &out, nil
}

func (s *MemoryPostService) Delete(_ context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.activeOwned(userID, postID)
	if post == nil {
		return ErrPostNotFound
	}
	post.Status = models.StatusDisabled
	post.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryPostService) ToggleLike(_ context.Context, userID, postID string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists || post.Status != models.StatusActive {
		return nil, ErrPostNotFound
	}

	liked := false
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			break
		}
	}
	if liked {
		kept := make([]string, 0, len(post.Likes)-1)
		for _, id := range post.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		post.Likes = kept
	} else {
		post.Likes = append(post.Likes, userID)
	}
	// like_count tracks the set cardinality on every toggle.
	post.LikeCount = len(post.Likes)
	post.UpdatedAt = time.Now().UTC()

	out := *post
	return &out, nil
}

func (s *MemoryPostService) FindAllByUser(_ context.Context, userID string) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0)
	for _, p := range s.posts {
		if p.UserID == userID && p.Status == models.StatusActive {
			out = append(out, *p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryPostService) FindFeed(ctx context.Context, userID string) ([]models.Post, error) {
	following, err := s.users.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followed := make(map[string]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0)
	for _, p := range s.posts {
		// The caller's own posts never show in the feed.
		if p.UserID == userID {
			continue
		}
		if followed[p.UserID] && p.Status == models.StatusActive {
			out = append(out, *p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryPostService) FindByLikeAmount(_ context.Context, threshold int) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0)
	for _, p := range s.posts {
		if p.Status == models.StatusActive && p.LikeCount >= threshold {
			out = append(out, *p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryPostService) FindByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.posts[id]
	if !exists || p.Status != models.StatusActive {
		return nil, ErrPostNotFound
	}
	out := *p
	return &out, nil
}

// activeOwned must be called with the lock held.
func (s *MemoryPostService) activeOwned(userID, postID string) *models.Post {
	p, exists := s.posts[postID]
	if !exists || p.UserID != userID || p.Status != models.StatusActive {
		return nil
	}
	return p
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
