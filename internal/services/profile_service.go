package services

import (
	"context"
	"errors"

	"github.com/amigos/backend/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService interface {
	// FindForUser never fails with not-found: callers get a zero-value
	// profile when none exists yet.
	FindForUser(ctx context.Context, userID string) (*models.Profile, error)

	// UpdateBasicInfo creates the profile on first update, otherwise patches
	// only the supplied non-empty fields. A province reference must resolve
	// to an active province or the whole call is rejected.
	UpdateBasicInfo(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error)

	FindByID(ctx context.Context, id string) (*models.Profile, error)
	SearchByName(ctx context.Context, query, excludeUserID string) ([]models.ProfileView, error)
	FindForUsers(ctx context.Context, userIDs []string) ([]models.ProfileView, error)

	// CreateDefault seeds the profile paired to a fresh registration. The
	// profile takes the user's id.
	CreateDefault(ctx context.Context, userID, name string) (*models.Profile, error)
}

func profilesToViews(ctx context.Context, images ImageService, profiles []models.Profile) ([]models.ProfileView, error) {
	views := make([]models.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		picture, err := resolvePicture(ctx, images, p.PictureID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.ProfileView{
			ID:         p.ID,
			UserID:     p.UserID,
			Name:       p.Name,
			Phone:      p.Phone,
			Email:      p.Email,
			Address:    p.Address,
			ProvinceID: p.ProvinceID,
			Picture:    picture,
		})
	}
	return views, nil
}

// resolvePicture swaps an image reference for its payload, falling back to
// the placeholder when the profile has no picture or the reference dangles.
func resolvePicture(ctx context.Context, images ImageService, pictureID string) (string, error) {
	if pictureID == "" {
		return models.DefaultImageData, nil
	}
	data, err := images.Fetch(ctx, pictureID)
	if err != nil {
		if err == ErrImageNotFound {
			return models.DefaultImageData, nil
		}
		return "", err
	}
	return data, nil
}
