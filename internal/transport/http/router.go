package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linkup/internal/handler"
	"linkup/internal/httputil"
	"linkup/internal/service"
	authmw "linkup/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes.
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	FriendHandler       *handler.FriendHandler
	PostHandler         *handler.PostHandler
	CommentHandler      *handler.CommentHandler
	NotificationHandler *handler.NotificationHandler
	MediaHandler        *handler.MediaHandler
	AuthService         *service.AuthService
	IsDevelopment       bool
}

// NewRouter creates and configures a new Chi router with all route groups.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	credentialLimiter := authmw.NewIPRateLimiter(10, time.Minute, 5, 10*time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Public routes. The credential endpoints are rate limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(authmw.RateLimit(credentialLimiter))
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})
		r.Post("/refreshtoken", cfg.AuthHandler.Refresh)

		// Protected routes.
		r.Group(func(r chi.Router) {
			r.Use(authmw.Auth(cfg.AuthService, cfg.IsDevelopment))

			r.Post("/logout", cfg.AuthHandler.Logout)

			r.Get("/profile", cfg.UserHandler.GetProfile)
			r.Get("/profile/{id}", cfg.UserHandler.GetProfile)
			r.Put("/editprofile", cfg.UserHandler.EditProfile)
			r.Delete("/deleteuser", cfg.UserHandler.DeleteUser)
			r.Get("/showfriends/{id}", cfg.UserHandler.ShowFriends)
			r.Get("/showfriendrequests", cfg.UserHandler.ShowFriendRequests)

			r.Post("/sendrequest", cfg.FriendHandler.SendRequest)
			r.Post("/acceptrequest", cfg.FriendHandler.RespondToRequest)

			r.Post("/addpost", cfg.PostHandler.Create)
			r.Put("/editpost/{id}", cfg.PostHandler.Update)
			r.Delete("/deletepost/{id}", cfg.PostHandler.Delete)
			r.Get("/posts/{id}", cfg.PostHandler.GetView)
			r.Post("/togglelike", cfg.PostHandler.ToggleLike)

			r.Post("/addcomment", cfg.CommentHandler.Add)
			r.Patch("/editcomment", cfg.CommentHandler.Edit)
			r.Delete("/deletecomment", cfg.CommentHandler.Delete)

			r.Get("/shownotification", cfg.NotificationHandler.List)
			r.Get("/notifications/unreadcount", cfg.NotificationHandler.UnreadCount)

			if cfg.MediaHandler != nil {
				r.Post("/uploadavatar", cfg.MediaHandler.UploadProfilePicture)
				r.Post("/uploadimage", cfg.MediaHandler.UploadPostImage)
			}
		})
	})

	return r
}
