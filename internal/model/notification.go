package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types. Only like, comment, and request-accept are emitted on
// the write path; the remaining values exist for stored history.
const (
	NotificationTypeFriendRequest   = "friendRequest"
	NotificationTypePostLike        = "postLike"
	NotificationTypeRequestAccepted = "requestAccepted"
	NotificationTypeRequestDeclined = "requestDeclined"
	NotificationTypeAddComment      = "addComment"
)

// Notification is created only as a side effect of another write and never
// when recipient == sender. Immutable except for the read flag.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"` // recipient
	Sender    primitive.ObjectID `bson:"sender" json:"sender"` // triggering actor
	Type      string             `bson:"type" json:"type"`
	Route     string             `bson:"route" json:"route"` // client-navigable
	Message   string             `bson:"message" json:"message"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NotificationView joins a notification with its sender summary.
type NotificationView struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Sender    UserSummary        `bson:"sender" json:"sender"`
	Type      string             `bson:"type" json:"type"`
	Route     string             `bson:"route" json:"route"`
	Message   string             `bson:"message" json:"message"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}
