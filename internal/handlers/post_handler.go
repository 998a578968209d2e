package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amigos/backend/internal/middleware"
	"github.com/amigos/backend/internal/models"
	"github.com/amigos/backend/internal/services"
)

type PostHandler struct {
	posts services.PostService
}

func NewPostHandler(posts services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.PublishPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if messages := req.Validate(); len(messages) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(messages))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	post, err := h.posts.Publish(ctx, userID, &req)
	if err != nil {
		log.Printf("[PublishPost] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to publish post"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if messages := req.Validate(); len(messages) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(messages))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	post, err := h.posts.Update(ctx, userID, postID, &req)
	if err != nil {
		log.Printf("[UpdatePost] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := h.posts.Delete(ctx, userID, postID); err != nil {
		log.Printf("[DeletePost] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

// Like and Dislike share the same toggle: whichever is called, the caller's
// membership in the likes set flips.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r)
}

func (h *PostHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r)
}

func (h *PostHandler) toggleLike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	post, err := h.posts.ToggleLike(ctx, userID, postID)
	if err != nil {
		log.Printf("[ToggleLike] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	posts, err := h.posts.FindAllByUser(ctx, userID)
	if err != nil {
		log.Printf("[MyPosts] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load posts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	posts, err := h.posts.FindFeed(ctx, userID)
	if err != nil {
		log.Printf("[Feed] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load feed"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *PostHandler) Popular(w http.ResponseWriter, r *http.Request) {
	threshold := 0
	if raw := r.URL.Query().Get("likes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse([]models.FieldMessage{
				{Path: "likes", Message: "Likes must be a non-negative integer"},
			}))
			return
		}
		threshold = parsed
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	posts, err := h.posts.FindByLikeAmount(ctx, threshold)
	if err != nil {
		log.Printf("[PopularPosts] threshold=%d error=%v", threshold, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load posts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	post, err := h.posts.FindByID(ctx, postID)
	if err != nil {
		log.Printf("[GetPost] post=%s error=%v", postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}
