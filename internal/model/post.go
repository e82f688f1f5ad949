package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxImageURLLength    = 500
)

// Post owns its like set and the references to its comments. Mutated only by
// its owner or by like/comment linkage writes.
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Image       *string              `bson:"image,omitempty" json:"image,omitempty"`
	IsPrivate   bool                 `bson:"isPrivate" json:"isPrivate"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments    []primitive.ObjectID `bson:"comments" json:"comments"`
	Revision    int                  `bson:"revision" json:"-"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsEdited reports whether the post was modified after creation.
func (p *Post) IsEdited() bool {
	return p.Revision > 0
}

// PostView is the read-side join of a post with its author, like count, and
// comments. Assembled by aggregation; not guaranteed to be a consistent
// snapshot under concurrent writes.
type PostView struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Author      UserSummary          `bson:"author" json:"author"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Image       *string              `bson:"image,omitempty" json:"image,omitempty"`
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	LikesCount  int                  `bson:"likesCount" json:"likesCount"`
	Comments    []CommentView        `bson:"comments" json:"comments"`
	IsEdited    bool                 `bson:"isEdited" json:"isEdited"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PostThumbnail is the per-post shape on profile pages: counts only, no
// comment bodies.
type PostThumbnail struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Image         *string            `bson:"image,omitempty" json:"image,omitempty"`
	IsPrivate     bool               `bson:"isPrivate" json:"isPrivate"`
	LikesCount    int                `bson:"likesCount" json:"likesCount"`
	CommentsCount int                `bson:"commentsCount" json:"commentsCount"`
	IsEdited      bool               `bson:"isEdited" json:"isEdited"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreatePostRequest carries validated post-creation fields.
type CreatePostRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
	IsPrivate   bool    `json:"isPrivate"`
}

// UpdatePostRequest holds optional post changes. Nil means "leave unchanged".
type UpdatePostRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsPrivate   *bool   `json:"isPrivate,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (r *UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Image == nil && r.IsPrivate == nil
}
