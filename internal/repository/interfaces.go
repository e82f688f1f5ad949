package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
)

// Every mutation below is a single-document atomic update. Compound
// operations (friend request, like + notify, cascade delete) are composed in
// the service layer from these primitives; there is no cross-document
// transaction.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByUsernameExcept ignores the given user, for profile edits.
	ExistsByUsernameExcept(ctx context.Context, username string, except primitive.ObjectID) (bool, error)
	ExistsByEmailExcept(ctx context.Context, email string, except primitive.ObjectID) (bool, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update *model.ProfileUpdate) (*model.User, error)
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) ([]model.UserSummary, error)

	// Pending-request array operations. "Outgoing" touches requestsSent on
	// the given user, "incoming" touches friendRequests.
	AddOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error
	AddIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error
	// AcceptIncomingRequest adds friendID to friends and clears the incoming
	// marker in one document update; AcceptOutgoingRequest is its mirror.
	AcceptIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error
	AcceptOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error

	AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error

	// Delete removes the user document and returns it (the cascade's point of
	// no return).
	Delete(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	// RemoveFromAllGraphs pulls the id from every other user's friends,
	// friendRequests, and requestsSent arrays. Idempotent.
	RemoveFromAllGraphs(ctx context.Context, userID primitive.ObjectID) error

	// GetProfileWithPosts assembles the profile view with a paginated, sorted
	// page of the user's posts via read-side aggregation.
	GetProfileWithPosts(ctx context.Context, id primitive.ObjectID, page, limit int, sortField string, descending bool) (*model.User, []model.PostThumbnail, error)

	// FindWithPendingRequests returns id + pending arrays for users carrying
	// any pending marker, for the reconciliation sweep.
	FindWithPendingRequests(ctx context.Context) ([]model.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	// GetView joins author, like count, and comments with author summaries.
	GetView(ctx context.Context, id primitive.ObjectID) (*model.PostView, error)
	// Update applies the set fields and bumps the revision counter.
	Update(ctx context.Context, id primitive.ObjectID, update *model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AddLike / RemoveLike toggle set membership and return the updated post.
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error)

	AddCommentRef(ctx context.Context, postID, commentID primitive.ObjectID) error
	RemoveCommentRef(ctx context.Context, postID, commentID primitive.ObjectID) error

	// Cascade helpers; all idempotent bulk operations.
	IDsByOwner(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error
	PullLikesByUser(ctx context.Context, userID primitive.ObjectID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	// Update replaces the value and bumps the revision counter.
	Update(ctx context.Context, id primitive.ObjectID, value string) (*model.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Cascade helpers; all idempotent bulk deletes by filter.
	DeleteByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) error
	DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	// ListByRecipient returns a page (newest first) with sender summaries
	// joined, plus the total count.
	ListByRecipient(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]model.NotificationView, int64, error)
	// MarkRead flips the read flag on the given notifications of this
	// recipient. Idempotent.
	MarkRead(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
