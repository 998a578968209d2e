package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigos/backend/internal/models"
)

func publishPostHTTP(t *testing.T, router *chi.Mux, token, title string) models.Post {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/v1/posts/", token, models.PublishPostRequest{
		Title: title,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &post))

	// Publications are ordered by creation time; keep timestamps distinct.
	time.Sleep(time.Millisecond)
	return post
}

func listPosts(t *testing.T, router *chi.Mux, token, path string) []models.Post {
	t.Helper()

	rec := doRequest(t, router, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var posts []models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &posts))
	return posts
}

func TestFeedShowsFollowedUsersPosts(t *testing.T) {
	router := newTestRouter(t)

	anaToken, _ := registerUser(t, router, "ana", "ana@example.com", "secret1")
	bobToken, bob := registerUser(t, router, "bob", "bob@example.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/v1/users/"+bob.ID+"/follow", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	publishPostHTTP(t, router, bobToken, "hello")

	feed := listPosts(t, router, anaToken, "/v1/posts/feed")
	require.Len(t, feed, 1)
	assert.Equal(t, "hello", feed[0].Title)
	assert.Equal(t, bob.ID, feed[0].UserID)

	// Following is one-directional.
	assert.Empty(t, listPosts(t, router, bobToken, "/v1/posts/feed"))
}

func TestFeedNewestFirst(t *testing.T) {
	router := newTestRouter(t)

	anaToken, _ := registerUser(t, router, "ana", "ana@example.com", "secret1")
	bobToken, bob := registerUser(t, router, "bob", "bob@example.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/v1/users/"+bob.ID+"/follow", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	publishPostHTTP(t, router, bobToken, "first")
	publishPostHTTP(t, router, bobToken, "second")

	feed := listPosts(t, router, anaToken, "/v1/posts/feed")
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Title)
	assert.Equal(t, "first", feed[1].Title)
}

func TestPublishShortTitleIsRejected(t *testing.T) {
	router := newTestRouter(t)

	token, _ := registerUser(t, router, "ana", "ana@example.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/v1/posts/", token, models.PublishPostRequest{
		Title: "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotEmpty(t, env.Messages)
	assert.Equal(t, "title", env.Messages[0].Path)

	assert.Empty(t, listPosts(t, router, token, "/v1/posts/mine"))
}

func TestLikeDislikeToggle(t *testing.T) {
	router := newTestRouter(t)

	anaToken, ana := registerUser(t, router, "ana", "ana@example.com", "secret1")
	bobToken, _ := registerUser(t, router, "bob", "bob@example.com", "secret1")

	post := publishPostHTTP(t, router, bobToken, "park day")

	rec := doRequest(t, router, http.MethodPost, "/v1/posts/"+post.ID+"/like", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var liked models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &liked))
	assert.Equal(t, 1, liked.LikeCount)
	assert.Contains(t, liked.Likes, ana.ID)

	// Dislike is the same toggle and removes the like again.
	rec = doRequest(t, router, http.MethodPost, "/v1/posts/"+post.ID+"/dislike", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled models.Post
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &toggled))
	assert.Equal(t, 0, toggled.LikeCount)
	assert.NotContains(t, toggled.Likes, ana.ID)
}

func TestDeleteRemovesFromFeed(t *testing.T) {
	router := newTestRouter(t)

	anaToken, _ := registerUser(t, router, "ana", "ana@example.com", "secret1")
	bobToken, bob := registerUser(t, router, "bob", "bob@example.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/v1/users/"+bob.ID+"/follow", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	post := publishPostHTTP(t, router, bobToken, "short lived")

	rec = doRequest(t, router, http.MethodDelete, "/v1/posts/"+post.ID, bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Empty(t, listPosts(t, router, anaToken, "/v1/posts/feed"))
	assert.Empty(t, listPosts(t, router, bobToken, "/v1/posts/mine"))
}

func TestFollowTwiceIsAnError(t *testing.T) {
	router := newTestRouter(t)

	anaToken, _ := registerUser(t, router, "ana", "ana@example.com", "secret1")
	_, bob := registerUser(t, router, "bob", "bob@example.com", "secret1")

	rec := doRequest(t, router, http.MethodPost, "/v1/users/"+bob.ID+"/follow", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/v1/users/"+bob.ID+"/follow", anaToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
