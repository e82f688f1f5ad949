package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkup/internal/cache"
	"linkup/internal/config"
	"linkup/internal/database"
	"linkup/internal/handler"
	"linkup/internal/redis"
	"linkup/internal/repository"
	"linkup/internal/service"
	"linkup/internal/worker"
)

// Run wires every layer together and serves until interrupted.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, disconnect, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := disconnect(disconnectCtx); err != nil {
			log.Printf("[Server] Database disconnect failed: %v", err)
		}
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// Redis is optional: without it the unread badge falls back to counting
	// in the store on every request.
	var unreadCache cache.UnreadCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		if err := redisClient.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		defer redisClient.Close()
		unreadCache = cache.NewUnreadCache(redisClient.Client)
		log.Println("Connected to redis successfully")
	} else {
		log.Println("REDIS_URL not set, unread counts will not be cached")
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authService := service.NewAuthService(cfg)
	notificationService := service.NewNotificationService(notificationRepo, unreadCache)
	userService := service.NewUserService(userRepo, postRepo, commentRepo)
	friendService := service.NewFriendService(userRepo, notificationService)
	postService := service.NewPostService(postRepo, userRepo, commentRepo, notificationService)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, notificationService)

	// Media uploads require R2 credentials; the rest of the API works
	// without them.
	var mediaHandler *handler.MediaHandler
	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		log.Printf("[Server] Media uploads disabled: %v", err)
	} else {
		mediaHandler = handler.NewMediaHandler(mediaService, userService, cfg)
	}

	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService, cfg),
		UserHandler:         handler.NewUserHandler(userService, cfg),
		FriendHandler:       handler.NewFriendHandler(friendService, cfg),
		PostHandler:         handler.NewPostHandler(postService, cfg),
		CommentHandler:      handler.NewCommentHandler(commentService, cfg),
		NotificationHandler: handler.NewNotificationHandler(notificationService, cfg),
		MediaHandler:        mediaHandler,
		AuthService:         authService,
		IsDevelopment:       cfg.IsDevelopment(),
	})

	if cfg.ReconcilerEnabled {
		reconciler := worker.NewReconciler(userRepo, cfg.ReconcilerInterval)
		reconciler.Start(ctx)
		defer reconciler.Stop()
	}

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
