package services

import (
	"context"
	"errors"

	"github.com/amigos/backend/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

type PostService interface {
	Publish(ctx context.Context, userID string, req *models.PublishPostRequest) (*models.Post, error)
	Update(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, userID, postID string) error

	// ToggleLike flips the caller's membership in the post's likes set and
	// keeps like_count equal to the set size. Both the like and dislike
	// endpoints dispatch here.
	ToggleLike(ctx context.Context, userID, postID string) (*models.Post, error)

	FindAllByUser(ctx context.Context, userID string) ([]models.Post, error)
	FindFeed(ctx context.Context, userID string) ([]models.Post, error)
	FindByLikeAmount(ctx context.Context, threshold int) ([]models.Post, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
}
