package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigos/backend/internal/models"
)

func newPostFixture(t *testing.T) (*MemoryPostService, *MemoryUserService, *MemoryImageService) {
	t.Helper()
	users := NewMemoryUserService()
	images := NewMemoryImageService()
	return NewMemoryPostService(users, images), users, images
}

func publishPost(t *testing.T, svc *MemoryPostService, userID, title string) *models.Post {
	t.Helper()
	post, err := svc.Publish(context.Background(), userID, &models.PublishPostRequest{Title: title})
	require.NoError(t, err)
	// Keep creation timestamps strictly ordered for the feed assertions.
	time.Sleep(time.Millisecond)
	return post
}

func TestPublishStoresPicture(t *testing.T) {
	svc, _, images := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Publish(ctx, "u1", &models.PublishPostRequest{
		Title:   "my dog",
		Picture: "base64-payload",
		PetIDs:  []string{"pet-1"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, post.PictureID)
	assert.Equal(t, 0, post.LikeCount)
	assert.Empty(t, post.Likes)
	assert.Equal(t, []string{"pet-1"}, post.PetIDs)

	data, err := images.Fetch(ctx, post.PictureID)
	require.NoError(t, err)
	assert.Equal(t, "base64-payload", data)
}

func TestLikeCountTracksLikesSet(t *testing.T) {
	svc, _, _ := newPostFixture(t)
	ctx := context.Background()

	post := publishPost(t, svc, "owner", "hello")

	callers := []string{"u1", "u2", "u3", "u1", "u2", "u1"}
	for _, caller := range callers {
		updated, err := svc.ToggleLike(ctx, caller, post.ID)
		require.NoError(t, err)
		assert.Equal(t, len(updated.Likes), updated.LikeCount)
	}

	// u1 toggled 3x (liked), u2 2x (off), u3 1x (liked).
	final, err := svc.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u3"}, final.Likes)
	assert.Equal(t, 2, final.LikeCount)
}

func TestDoubleToggleReturnsToOriginalState(t *testing.T) {
	svc, _, _ := newPostFixture(t)
	ctx := context.Background()

	post := publishPost(t, svc, "owner", "hello")

	first, err := svc.ToggleLike(ctx, "u1", post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, first.Likes)
	assert.Equal(t, 1, first.LikeCount)

	second, err := svc.ToggleLike(ctx, "u1", post.ID)
	require.NoError(t, err)
	assert.Empty(t, second.Likes)
	assert.Equal(t, 0, second.LikeCount)
}

func TestToggleLikeMissingPost(t *testing.T) {
	svc, _, _ := newPostFixture(t)

	_, err := svc.ToggleLike(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFeedContainsOnlyFollowedUsersNewestFirst(t *testing.T) {
	svc, users, _ := newPostFixture(t)
	ctx := context.Background()

	ana := registerUser(t, users, "Ana", "ana@x.com")
	bob := registerUser(t, users, "Bob", "bob@x.com")
	cleo := registerUser(t, users, "Cleo", "cleo@x.com")

	require.NoError(t, users.Follow(ctx, ana.ID, bob.ID))
	require.NoError(t, users.Follow(ctx, ana.ID, cleo.ID))

	publishPost(t, svc, ana.ID, "my own post")
	oldest := publishPost(t, svc, bob.ID, "first")
	middle := publishPost(t, svc, cleo.ID, "second")
	newest := publishPost(t, svc, bob.ID, "third")

	feed, err := svc.FindFeed(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, newest.ID, feed[0].ID)
	assert.Equal(t, middle.ID, feed[1].ID)
	assert.Equal(t, oldest.ID, feed[2].ID)

	// Bob follows nobody, so his feed is empty even though Ana posted.
	bobFeed, err := svc.FindFeed(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFeed)
}

func TestFeedExcludesDeletedPosts(t *testing.T) {
	svc, users, _ := newPostFixture(t)
	ctx := context.Background()

	ana := registerUser(t, users, "Ana", "ana@x.com")
	bob := registerUser(t, users, "Bob", "bob@x.com")
	require.NoError(t, users.Follow(ctx, ana.ID, bob.ID))

	kept := publishPost(t, svc, bob.ID, "kept")
	removed := publishPost(t, svc, bob.ID, "removed")
	require.NoError(t, svc.Delete(ctx, bob.ID, removed.ID))

	feed, err := svc.FindFeed(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, kept.ID, feed[0].ID)
}

func TestSoftDelete(t *testing.T) {
	svc, _, _ := newPostFixture(t)
	ctx := context.Background()

	post := publishPost(t, svc, "owner", "hello")

	// Ownership is part of the lookup filter.
	assert.ErrorIs(t, svc.Delete(ctx, "someone-else", post.ID), ErrPostNotFound)

	require.NoError(t, svc.Delete(ctx, "owner", post.ID))

	_, err := svc.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	mine, err := svc.FindAllByUser(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, mine)

	// Deleting twice fails: the post is no longer active.
	assert.ErrorIs(t, svc.Delete(ctx, "owner", post.ID), ErrPostNotFound)
}

func TestUpdatePatchesOnlySuppliedFields(t *testing.T) {
	svc, _, _ := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Publish(ctx, "owner", &models.PublishPostRequest{
		Title:       "original",
		Description: "original description",
	})
	require.NoError(t, err)

	newTitle := "updated"
	updated, err := svc.Update(ctx, "owner", post.ID, &models.UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Title)
	assert.Equal(t, "original description", updated.Description)

	_, err = svc.Update(ctx, "someone-else", post.ID, &models.UpdatePostRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFindByLikeAmount(t *testing.T) {
	svc, _, _ := newPostFixture(t)
	ctx := context.Background()

	quiet := publishPost(t, svc, "owner", "quiet")
	popular := publishPost(t, svc, "owner", "popular")
	for _, caller := range []string{"u1", "u2", "u3"} {
		_, err := svc.ToggleLike(ctx, caller, popular.ID)
		require.NoError(t, err)
	}

	posts, err := svc.FindByLikeAmount(ctx, 2)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, popular.ID, posts[0].ID)

	posts, err = svc.FindByLikeAmount(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	_ = quiet
}
