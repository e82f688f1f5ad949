package handler

import (
	"errors"
	"net/http"

	"linkup/internal/config"
	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
)

// MediaHandler groups the image upload endpoints. Uploads are stored in R2;
// the rest of the API only ever handles the returned URL.
type MediaHandler struct {
	mediaService *service.MediaService
	userService  *service.UserService
	config       *config.Config
}

func NewMediaHandler(mediaService *service.MediaService, userService *service.UserService, cfg *config.Config) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		userService:  userService,
		config:       cfg,
	}
}

// maxUploadFormSize allows for multipart framing overhead on top of the
// image size limit.
const maxUploadFormSize = model.MaxImageSizeBytes + 1024*1024

// UploadProfilePicture handles POST /api/uploadavatar. The image is
// normalized to a square JPEG and set as the caller's profile picture.
func (h *MediaHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadFormSize)
	if err := r.ParseMultipartForm(maxUploadFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteAppError(w, model.NewInvalidInput("Content-Type must be multipart/form-data"), h.config.IsDevelopment())
			return
		}
		httputil.WriteAppError(w, model.ErrFileTooLarge, h.config.IsDevelopment())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Image file is required"), h.config.IsDevelopment())
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadProfilePicture(r.Context(), file, header)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	user, err := h.userService.SetProfilePicture(r.Context(), userID, upload.URL)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Profile picture updated successfully", map[string]interface{}{
		"user": user,
		"url":  upload.URL,
	})
}

// UploadPostImage handles POST /api/uploadimage. It returns the stored URL;
// the client passes it back when creating or editing a post.
func (h *MediaHandler) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r, h.config.IsDevelopment()); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadFormSize)
	if err := r.ParseMultipartForm(maxUploadFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteAppError(w, model.NewInvalidInput("Content-Type must be multipart/form-data"), h.config.IsDevelopment())
			return
		}
		httputil.WriteAppError(w, model.ErrFileTooLarge, h.config.IsDevelopment())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Image file is required"), h.config.IsDevelopment())
		return
	}
	defer file.Close()

	upload, err := h.mediaService.UploadPostImage(r.Context(), file, header)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Image uploaded successfully", map[string]interface{}{
		"url": upload.URL,
		"key": upload.Key,
	})
}
