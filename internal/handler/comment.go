package handler

import (
	"encoding/json"
	"net/http"

	"linkup/internal/config"
	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
)

// CommentHandler groups the comment endpoints.
type CommentHandler struct {
	commentService *service.CommentService
	config         *config.Config
}

func NewCommentHandler(commentService *service.CommentService, cfg *config.Config) *CommentHandler {
	return &CommentHandler{commentService: commentService, config: cfg}
}

type addCommentBody struct {
	PostID string `json:"postId"`
	Value  string `json:"value"`
}

type editCommentBody struct {
	CommentID string `json:"commentId"`
	Value     string `json:"value"`
}

type deleteCommentBody struct {
	CommentID string `json:"commentId"`
}

// Add handles POST /api/addcomment.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var body addCommentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	postID, err := parseObjectID(body.PostID, "post id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	comment, err := h.commentService.Add(r.Context(), userID, postID, body.Value)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "Comment added successfully", map[string]interface{}{
		"comment": comment,
	})
}

// Edit handles PATCH /api/editcomment.
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var body editCommentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	commentID, err := parseObjectID(body.CommentID, "comment id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	comment, err := h.commentService.Edit(r.Context(), userID, commentID, body.Value)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Comment updated successfully", map[string]interface{}{
		"comment": comment,
	})
}

// Delete handles DELETE /api/deletecomment.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var body deleteCommentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	commentID, err := parseObjectID(body.CommentID, "comment id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	if err := h.commentService.Delete(r.Context(), userID, commentID); err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Comment deleted successfully", nil)
}
