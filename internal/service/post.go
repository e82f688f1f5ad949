package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
	"linkup/internal/repository"
	"linkup/internal/validation"
)

// Like outcomes returned by ToggleLike.
const (
	LikeOutcomeLiked   = "Post liked successfully"
	LikeOutcomeUnliked = "Post unliked successfully"
)

// PostService covers the post lifecycle plus the like toggle. Only the owner
// may edit or delete a post; anyone who can see a post may like it.
type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	notifier    *NotificationService
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, commentRepo repository.CommentRepository, notifier *NotificationService) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

// Create validates and stores a new post and links it on the owner's posts
// array.
func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, req *model.CreatePostRequest) (*model.Post, error) {
	chain := validation.NewChain()
	title := chain.Field("title", req.Title,
		validation.Trim(),
		validation.Required("Title is required"),
		validation.MaxLength(model.MaxTitleLength, "Title must be less than 200 characters"),
	)
	description := chain.Field("description", req.Description,
		validation.Trim(),
		validation.MaxLength(model.MaxDescriptionLength, "Description must be less than 1000 characters"),
	)
	if req.Image != nil {
		chain.Field("image", *req.Image,
			validation.MaxLength(model.MaxImageURLLength, "Image URL must be less than 500 characters"),
		)
	}
	if err := chain.Validate(ctx); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:      userID,
		Title:       title.Value(),
		Description: description.Value(),
		Image:       req.Image,
		IsPrivate:   req.IsPrivate,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if err := s.userRepo.AddPostRef(ctx, userID, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies the owner's edits and bumps the edit marker.
func (s *PostService) Update(ctx context.Context, userID, postID primitive.ObjectID, req *model.UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, model.NewForbidden("You can only edit your own posts")
	}

	if req.IsEmpty() {
		return post, nil
	}

	chain := validation.NewChain()
	var title, description *validation.Field
	if req.Title != nil {
		title = chain.Field("title", *req.Title,
			validation.Trim(),
			validation.Required("Title is required"),
			validation.MaxLength(model.MaxTitleLength, "Title must be less than 200 characters"),
		)
	}
	if req.Description != nil {
		description = chain.Field("description", *req.Description,
			validation.Trim(),
			validation.MaxLength(model.MaxDescriptionLength, "Description must be less than 1000 characters"),
		)
	}
	if req.Image != nil {
		chain.Field("image", *req.Image,
			validation.MaxLength(model.MaxImageURLLength, "Image URL must be less than 500 characters"),
		)
	}
	if err := chain.Validate(ctx); err != nil {
		return nil, err
	}

	// The store only ever sees the normalized values, never the raw input.
	update := &model.UpdatePostRequest{Image: req.Image, IsPrivate: req.IsPrivate}
	if title != nil {
		value := title.Value()
		update.Title = &value
	}
	if description != nil {
		value := description.Value()
		update.Description = &value
	}

	return s.postRepo.Update(ctx, postID, update)
}

// Delete removes the owner's post together with its comments and the owner's
// post reference. The three cleanups are independent and run concurrently.
func (s *PostService) Delete(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return model.NewForbidden("You can only delete your own posts")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.postRepo.Delete(gctx, postID) })
	g.Go(func() error { return s.commentRepo.DeleteByPostIDs(gctx, []primitive.ObjectID{postID}) })
	g.Go(func() error { return s.userRepo.RemovePostRef(gctx, userID, postID) })
	return g.Wait()
}

// GetView returns the full post view. A private post is visible only to its
// owner and the owner's friends.
func (s *PostService) GetView(ctx context.Context, viewerID, postID primitive.ObjectID) (*model.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.IsPrivate && post.UserID != viewerID {
		owner, err := s.userRepo.GetByID(ctx, post.UserID)
		if err != nil {
			return nil, err
		}
		if !owner.HasFriend(viewerID) {
			return nil, model.NewForbidden("This post is private")
		}
	}

	return s.postRepo.GetView(ctx, postID)
}

// ToggleLike flips the caller's membership in the post's like set and returns
// the updated post. Liking someone else's post notifies the owner; unliking
// never does, and the notification from the original like is not retracted.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID primitive.ObjectID) (*model.Post, string, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, "", err
	}

	for _, likerID := range post.Likes {
		if likerID == userID {
			updated, err := s.postRepo.RemoveLike(ctx, postID, userID)
			if err != nil {
				return nil, "", err
			}
			return updated, LikeOutcomeUnliked, nil
		}
	}

	updated, err := s.postRepo.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, "", err
	}

	if post.UserID != userID {
		liker, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, "", err
		}
		message := fmt.Sprintf("%s liked your post.", liker.Username)
		route := fmt.Sprintf("/posts/%s", postID.Hex())
		if err := s.notifier.Notify(ctx, post.UserID, userID, model.NotificationTypePostLike, route, message); err != nil {
			return nil, "", err
		}
	}

	return updated, LikeOutcomeLiked, nil
}
