package handler

import (
	"encoding/json"
	"net/http"

	"linkup/internal/config"
	"linkup/internal/httputil"
	"linkup/internal/model"
	"linkup/internal/service"
)

// AuthHandler groups the session endpoints: register, login, refresh, logout.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	config      *config.Config
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		config:      cfg,
	}
}

// sessionCookie builds one HTTP-only session cookie. Cross-site policy
// depends on the environment: production serves the API from another origin
// than the client, so cookies must be SameSite=None and Secure there.
func sessionCookie(cfg *config.Config, name, value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if !cfg.IsDevelopment() {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: sameSite,
	}
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, pair *model.TokenPair) {
	http.SetCookie(w, sessionCookie(h.config, model.AccessTokenCookie, pair.AccessToken, h.config.AccessTokenMaxAge))
	http.SetCookie(w, sessionCookie(h.config, model.RefreshTokenCookie, pair.RefreshToken, h.config.RefreshTokenMaxAge))
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie(h.config, model.AccessTokenCookie, "", -1))
	http.SetCookie(w, sessionCookie(h.config, model.RefreshTokenCookie, "", -1))
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	pair, err := h.authService.IssueSession(user.ID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}
	h.setSessionCookies(w, pair)

	httputil.WriteSuccess(w, http.StatusCreated, "User registered successfully", map[string]interface{}{
		"user":        user,
		"accessToken": pair.AccessToken,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteAppError(w, model.NewInvalidInput("Invalid request body"), h.config.IsDevelopment())
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	pair, err := h.authService.IssueSession(user.ID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}
	h.setSessionCookies(w, pair)

	httputil.WriteSuccess(w, http.StatusOK, "Login successful", map[string]interface{}{
		"user":        user,
		"accessToken": pair.AccessToken,
	})
}

// Refresh handles POST /api/refreshtoken. The refresh token is read from the
// cookie; on success only the access cookie is replaced, the refresh token
// keeps its original expiry.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(model.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		httputil.WriteAppError(w, model.ErrMissingRefreshToken, h.config.IsDevelopment())
		return
	}

	accessToken, err := h.authService.Refresh(cookie.Value)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	http.SetCookie(w, sessionCookie(h.config, model.AccessTokenCookie, accessToken, h.config.AccessTokenMaxAge))
	httputil.WriteSuccess(w, http.StatusOK, "Token refreshed", map[string]interface{}{
		"accessToken": accessToken,
	})
}

// Logout handles POST /api/logout. Tokens are stateless, so logging out is
// just clearing the cookies; an already-issued token stays valid until its
// expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookies(w)
	httputil.WriteSuccess(w, http.StatusOK, "Logged out successfully", nil)
}
