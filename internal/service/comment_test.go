package service

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
)

func newCommentService(comments *mockCommentRepository, posts *mockPostRepository, users *mockUserRepository) (*CommentService, *mockNotificationRepository) {
	notifications := &mockNotificationRepository{}
	notifier := NewNotificationService(notifications, nil)
	return NewCommentService(comments, posts, users, notifier), notifications
}

func TestCommentService_Add_Success(t *testing.T) {
	ownerID := primitive.NewObjectID()
	commenterID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	posts := &mockPostRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
			return &model.Post{ID: postID, UserID: ownerID}, nil
		},
	}
	users := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
			return &model.User{ID: id, Username: "commenter"}, nil
		},
	}
	comments := &mockCommentRepository{}
	svc, notifications := newCommentService(comments, posts, users)

	comment, err := svc.Add(context.Background(), commenterID, postID, "  nice post  ")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if comment.Value != "nice post" {
		t.Errorf("value = %q, want trimmed %q", comment.Value, "nice post")
	}
	if !posts.called("AddCommentRef") {
		t.Error("comment must be linked on the post")
	}

	created := notifications.createdNotifications()
	if len(created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(created))
	}
	if created[0].UserID != ownerID || created[0].Type != model.NotificationTypeAddComment {
		t.Error("comment notification has wrong recipient or type")
	}
	if created[0].Message != "commenter commented on your post." {
		t.Errorf("unexpected message: %q", created[0].Message)
	}
}

func TestCommentService_Add_SelfCommentIsSilent(t *testing.T) {
	ownerID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	posts := &mockPostRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
			return &model.Post{ID: postID, UserID: ownerID}, nil
		},
	}
	svc, notifications := newCommentService(&mockCommentRepository{}, posts, &mockUserRepository{})

	if _, err := svc.Add(context.Background(), ownerID, postID, "my own post"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(notifications.createdNotifications()) != 0 {
		t.Error("commenting on your own post must not create a notification")
	}
}

func TestCommentService_Add_Validation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{name: "empty", value: "", wantMsg: "Comment value is required"},
		{name: "whitespace only", value: "   \n\t ", wantMsg: "Comment value is required"},
		{name: "too long", value: strings.Repeat("x", model.MaxCommentLength+1), wantMsg: "Comment must be less than 500 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &mockPostRepository{}
			svc, _ := newCommentService(&mockCommentRepository{}, posts, &mockUserRepository{})

			_, err := svc.Add(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), tt.value)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if model.AsAppError(err).Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", model.AsAppError(err).Message, tt.wantMsg)
			}
			// Validation happens before the post lookup.
			if posts.called("GetByID") {
				t.Error("post lookup should not run for invalid input")
			}
		})
	}
}

func TestCommentService_Add_ExactLimitAccepted(t *testing.T) {
	ownerID := primitive.NewObjectID()
	postID := primitive.NewObjectID()
	posts := &mockPostRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
			return &model.Post{ID: postID, UserID: ownerID}, nil
		},
	}
	svc, _ := newCommentService(&mockCommentRepository{}, posts, &mockUserRepository{})

	value := strings.Repeat("x", model.MaxCommentLength)
	if _, err := svc.Add(context.Background(), ownerID, postID, value); err != nil {
		t.Errorf("a comment of exactly the limit must be accepted, got: %v", err)
	}
}

func TestCommentService_Add_TrimBeforeLengthCheck(t *testing.T) {
	ownerID := primitive.NewObjectID()
	postID := primitive.NewObjectID()
	posts := &mockPostRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
			return &model.Post{ID: postID, UserID: ownerID}, nil
		},
	}
	svc, _ := newCommentService(&mockCommentRepository{}, posts, &mockUserRepository{})

	// Over the limit before trimming, exactly at it after.
	value := "  " + strings.Repeat("x", model.MaxCommentLength) + "  "
	if _, err := svc.Add(context.Background(), ownerID, postID, value); err != nil {
		t.Errorf("length must be checked after trimming, got: %v", err)
	}
}

func TestCommentService_Edit_OwnershipEnforced(t *testing.T) {
	authorID := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
			return &model.Comment{ID: commentID, UserID: authorID}, nil
		},
	}
	svc, _ := newCommentService(comments, &mockPostRepository{}, &mockUserRepository{})

	_, err := svc.Edit(context.Background(), primitive.NewObjectID(), commentID, "edited")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if model.AsAppError(err).Message != "You can only edit your own comments" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCommentService_Delete_RemovesCommentAndRef(t *testing.T) {
	authorID := primitive.NewObjectID()
	postID := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
			return &model.Comment{ID: commentID, UserID: authorID, PostID: postID}, nil
		},
	}
	posts := &mockPostRepository{}
	svc, _ := newCommentService(comments, posts, &mockUserRepository{})

	if err := svc.Delete(context.Background(), authorID, commentID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !comments.called("Delete") {
		t.Error("comment was not deleted")
	}
	if !posts.called("RemoveCommentRef") {
		t.Error("comment reference was not removed from the post")
	}
}

func TestCommentService_Delete_OwnershipEnforced(t *testing.T) {
	authorID := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
			return &model.Comment{ID: commentID, UserID: authorID}, nil
		},
	}
	svc, _ := newCommentService(comments, &mockPostRepository{}, &mockUserRepository{})

	err := svc.Delete(context.Background(), primitive.NewObjectID(), commentID)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if model.AsAppError(err).Message != "You can only delete your own comments" {
		t.Errorf("unexpected message: %v", err)
	}
	if comments.called("Delete") {
		t.Error("comment must not be deleted by a non-owner")
	}
}
