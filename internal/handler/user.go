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

// UserHandler groups the profile and account endpoints.
type UserHandler struct {
	userService *service.UserService
	config      *config.Config
}

func NewUserHandler(userService *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{userService: userService, config: cfg}
}

// GetProfile handles GET /api/profile and GET /api/profile/{id}. Without an
// id it shows the caller's own profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	targetID := userID
	if raw := chi.URLParam(r, "id"); raw != "" {
		parsed, err := parseObjectID(raw, "user id")
		if err != nil {
			httputil.WriteAppError(w, err, h.config.IsDevelopment())
			return
		}
		targetID = parsed
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 9)

	profile, err := h.userService.GetProfile(r.Context(), userID, targetID, page, limit)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Profile fetched successfully", profile)
}

// EditProfile handles PUT /api/editprofile.
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	var edit service.ProfileEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &edit)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Profile updated successfully", map[string]interface{}{
		"user": user,
	})
}

// DeleteUser handles DELETE /api/deleteuser. The account is gone after this
// call even if part of the content cleanup fails; the session cookies are
// cleared alongside.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	summary, err := h.userService.DeleteAccount(r.Context(), userID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	http.SetCookie(w, sessionCookie(h.config, model.AccessTokenCookie, "", -1))
	http.SetCookie(w, sessionCookie(h.config, model.RefreshTokenCookie, "", -1))

	httputil.WriteSuccess(w, http.StatusOK, "User deleted successfully", map[string]interface{}{
		"user": summary,
	})
}

// ShowFriends handles GET /api/showfriends/{id}.
func (h *UserHandler) ShowFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	targetID, err := parseObjectID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	friends, err := h.userService.ShowFriends(r.Context(), userID, targetID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Friends fetched successfully", map[string]interface{}{
		"friends": friends,
	})
}

// ShowFriendRequests handles GET /api/showfriendrequests: the caller's own
// pending incoming requests.
func (h *UserHandler) ShowFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	requests, err := h.userService.ShowFriendRequests(r.Context(), userID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Friend requests fetched successfully", map[string]interface{}{
		"friendRequests": requests,
	})
}
