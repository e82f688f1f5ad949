package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCommentLength caps the trimmed comment body. Exactly this length is
// still accepted.
const MaxCommentLength = 500

// Comment references its post and author; it is never embedded.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	Value     string             `bson:"value" json:"value"`
	Revision  int                `bson:"revision" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsEdited reports whether the comment was modified after creation.
func (c *Comment) IsEdited() bool {
	return c.Revision > 0
}

// CommentView is a comment joined with its author summary.
type CommentView struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Author    UserSummary        `bson:"author" json:"author"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	Value     string             `bson:"value" json:"value"`
	IsEdited  bool               `bson:"isEdited" json:"isEdited"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
