package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkup/internal/config"
	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
)

// PostHandler groups the post CRUD and like endpoints.
type PostHandler struct {
	postService *service.PostService
	config      *config.Config
}

func NewPostHandler(postService *service.PostService, cfg *config.Config) *PostHandler {
	return &PostHandler{postService: postService, config: cfg}
}

// Create handles POST /api/addpost.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	post, err := h.postService.Create(r.Context(), userID, &req)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "Post created successfully", map[string]interface{}{
		"post": post,
	})
}

// Update handles PUT /api/editpost/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	postID, err := parseObjectID(chi.URLParam(r, "id"), "post id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	post, err := h.postService.Update(r.Context(), userID, postID, &req)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Post updated successfully", map[string]interface{}{
		"post": post,
	})
}

// Delete handles DELETE /api/deletepost/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	postID, err := parseObjectID(chi.URLParam(r, "id"), "post id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	if err := h.postService.Delete(r.Context(), userID, postID); err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Post deleted successfully", nil)
}

// GetView handles GET /api/posts/{id}: the full post with author, like
// count, and comments.
func (h *PostHandler) GetView(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	postID, err := parseObjectID(chi.URLParam(r, "id"), "post id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	view, err := h.postService.GetView(r.Context(), userID, postID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Post fetched successfully", map[string]interface{}{
		"post": view,
	})
}

type toggleLikeBody struct {
	PostID string `json:"postId"`
}

// ToggleLike handles POST /api/togglelike.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var body toggleLikeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	postID, err := parseObjectID(body.PostID, "post id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	post, outcome, err := h.postService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, outcome, map[string]interface{}{
		"post":  post,
		"liked": outcome == service.LikeOutcomeLiked,
	})
}
