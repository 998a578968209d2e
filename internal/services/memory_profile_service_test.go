package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigos/backend/internal/models"
)

func newProfileFixture(t *testing.T) (*MemoryProfileService, *MemoryUserService, *MemoryProvinceService, *MemoryImageService) {
	t.Helper()
	users := NewMemoryUserService()
	provinces := NewMemoryProvinceService()
	images := NewMemoryImageService()
	return NewMemoryProfileService(users, provinces, images), users, provinces, images
}

func TestFindForUserReturnsZeroValueProfile(t *testing.T) {
	svc, _, _, _ := newProfileFixture(t)

	profile, err := svc.FindForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UserID)
	assert.Empty(t, profile.ID)
	assert.Empty(t, profile.Name)
}

func TestUpdateBasicInfoCreatesLazily(t *testing.T) {
	svc, _, _, _ := newProfileFixture(t)
	ctx := context.Background()

	// Creation requires both name and email, reported together.
	_, err := svc.UpdateBasicInfo(ctx, "u1", &models.UpdateProfileRequest{Phone: "555-0100"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	paths := make([]string, 0, len(verr.Messages))
	for _, m := range verr.Messages {
		paths = append(paths, m.Path)
	}
	assert.ElementsMatch(t, []string{"name", "email"}, paths)

	profile, err := svc.UpdateBasicInfo(ctx, "u1", &models.UpdateProfileRequest{
		Name:  "Ana",
		Email: "ana@x.com",
		Phone: "555-0100",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "u1", profile.UserID)
	assert.Equal(t, "Ana", profile.Name)

	// Subsequent updates patch only supplied fields.
	updated, err := svc.UpdateBasicInfo(ctx, "u1", &models.UpdateProfileRequest{Address: "Main St 1"})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, updated.ID)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "ana@x.com", updated.Email)
	assert.Equal(t, "Main St 1", updated.Address)
}

func TestUpdateBasicInfoUnknownProvince(t *testing.T) {
	svc, _, _, _ := newProfileFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateBasicInfo(ctx, "u1", &models.UpdateProfileRequest{
		Name:       "Ana",
		Email:      "ana@x.com",
		ProvinceID: "missing-province",
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 1)
	assert.Equal(t, "province_id", verr.Messages[0].Path)

	// Nothing was persisted.
	profile, err := svc.FindForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, profile.ID)
}

func TestUpdateBasicInfoProvince(t *testing.T) {
	svc, _, provinces, _ := newProfileFixture(t)
	ctx := context.Background()

	province, err := provinces.Create(ctx, "Buenos Aires")
	require.NoError(t, err)

	profile, err := svc.UpdateBasicInfo(ctx, "u1", &models.UpdateProfileRequest{
		Name:       "Ana",
		Email:      "ana@x.com",
		ProvinceID: province.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, province.ID, profile.ProvinceID)

	// An update without a province clears the reference.
	profile, err = svc.UpdateBasicInfo(ctx, "u1", &models.UpdateProfileRequest{Phone: "555-0100"})
	require.NoError(t, err)
	assert.Empty(t, profile.ProvinceID)
	assert.Equal(t, "555-0100", profile.Phone)
}

func TestCreateDefaultPairsProfileWithUser(t *testing.T) {
	svc, _, _, _ := newProfileFixture(t)
	ctx := context.Background()

	profile, err := svc.CreateDefault(ctx, "u1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "u1", profile.UserID)
	assert.Equal(t, "Ana", profile.Name)

	// Seeding twice keeps the single active profile per user.
	again, err := svc.CreateDefault(ctx, "u1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestSearchByName(t *testing.T) {
	svc, users, _, images := newProfileFixture(t)
	ctx := context.Background()

	ana := registerUser(t, users, "Ana Torres", "ana@x.com")
	bob := registerUser(t, users, "Roberto", "bob@x.com")
	caller := registerUser(t, users, "Caller Torres", "caller@x.com")

	_, err := svc.CreateDefault(ctx, ana.ID, "Anita")
	require.NoError(t, err)
	_, err = svc.CreateDefault(ctx, bob.ID, "El Torres")
	require.NoError(t, err)
	_, err = svc.CreateDefault(ctx, caller.ID, "Caller Torres")
	require.NoError(t, err)

	// "torres" matches Bob by profile name and Ana by user name; the
	// caller's own profile is excluded.
	views, err := svc.SearchByName(ctx, "torres", caller.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	found := map[string]models.ProfileView{}
	for _, v := range views {
		found[v.UserID] = v
	}
	assert.Contains(t, found, ana.ID)
	assert.Contains(t, found, bob.ID)

	// No picture set: the placeholder stands in.
	assert.Equal(t, models.DefaultImageData, found[ana.ID].Picture)

	// A stored picture is resolved to its payload.
	pictureID, err := images.Store(ctx, "bob-picture-data")
	require.NoError(t, err)
	setPicture(t, svc, bob.ID, pictureID)

	views, err = svc.SearchByName(ctx, "el torres", caller.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "bob-picture-data", views[0].Picture)
}

// setPicture reaches into the store; the HTTP surface never sets profile
// pictures directly.
func setPicture(t *testing.T, svc *MemoryProfileService, userID, pictureID string) {
	t.Helper()
	svc.mu.Lock()
	defer svc.mu.Unlock()
	p := svc.activeByUser(userID)
	require.NotNil(t, p)
	p.PictureID = pictureID
}

func TestFindForUsers(t *testing.T) {
	svc, users, _, _ := newProfileFixture(t)
	ctx := context.Background()

	ana := registerUser(t, users, "Ana", "ana@x.com")
	bob := registerUser(t, users, "Bob", "bob@x.com")
	cleo := registerUser(t, users, "Cleo", "cleo@x.com")

	for _, u := range []*models.User{ana, bob, cleo} {
		_, err := svc.CreateDefault(ctx, u.ID, u.Name)
		require.NoError(t, err)
	}

	views, err := svc.FindForUsers(ctx, []string{ana.ID, cleo.ID})
	require.NoError(t, err)
	require.Len(t, views, 2)
	ids := []string{views[0].UserID, views[1].UserID}
	assert.ElementsMatch(t, []string{ana.ID, cleo.ID}, ids)
}
