package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
	"linkup/internal/repository"
)

// CommentService covers comment creation, edits, and deletion. Comment bodies
// are trimmed before any length check; exactly MaxCommentLength characters is
// still accepted.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	notifier    *NotificationService
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, notifier *NotificationService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func validateCommentValue(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", model.NewInvalidInput("Comment value is required")
	}
	if utf8.RuneCountInString(trimmed) > model.MaxCommentLength {
		return "", model.NewInvalidInput("Comment must be less than 500 characters")
	}
	return trimmed, nil
}

// Add creates a comment on the post, links it on the post's comments array,
// and notifies the post owner. Commenting on your own post stays silent.
func (s *CommentService) Add(ctx context.Context, userID, postID primitive.ObjectID, value string) (*model.Comment, error) {
	trimmed, err := validateCommentValue(value)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		UserID: userID,
		PostID: postID,
		Value:  trimmed,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.postRepo.AddCommentRef(gctx, postID, comment.ID) })
	g.Go(func() error {
		if post.UserID == userID {
			return nil
		}
		author, err := s.userRepo.GetByID(gctx, userID)
		if err != nil {
			return err
		}
		message := fmt.Sprintf("%s commented on your post.", author.Username)
		route := fmt.Sprintf("/posts/%s", postID.Hex())
		return s.notifier.Notify(gctx, post.UserID, userID, model.NotificationTypeAddComment, route, message)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Edit replaces the body of the caller's own comment.
func (s *CommentService) Edit(ctx context.Context, userID, commentID primitive.ObjectID, value string) (*model.Comment, error) {
	trimmed, err := validateCommentValue(value)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, model.NewForbidden("You can only edit your own comments")
	}

	return s.commentRepo.Update(ctx, commentID, trimmed)
}

// Delete removes the caller's own comment and its reference on the post.
func (s *CommentService) Delete(ctx context.Context, userID, commentID primitive.ObjectID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return model.NewForbidden("You can only delete your own comments")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.commentRepo.Delete(gctx, commentID) })
	g.Go(func() error { return s.postRepo.RemoveCommentRef(gctx, comment.PostID, commentID) })
	return g.Wait()
}
