package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the root aggregate for social-graph state. The pending-request
// invariant holds between documents: B in A.FriendRequests iff A in
// B.RequestsSent, and friendship is symmetric.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"` // bcrypt hash, never serialized
	Friends        []primitive.ObjectID `bson:"friends" json:"friends"`
	FriendRequests []primitive.ObjectID `bson:"friendRequests" json:"friendRequests"` // incoming pending
	RequestsSent   []primitive.ObjectID `bson:"requestsSent" json:"requestsSent"`     // outgoing pending
	ProfilePicture *string              `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Bio            *string              `bson:"bio,omitempty" json:"bio,omitempty"`
	IsPrivate      bool                 `bson:"isPrivate" json:"isPrivate"`
	Posts          []primitive.ObjectID `bson:"posts" json:"posts"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the public shape embedded in joined views.
type UserSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Username       string             `bson:"username" json:"username"`
	ProfilePicture *string            `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}

// Summary projects the public fields of a user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}

// ProfileView is the profile-page projection of a user. The email and the
// graph arrays are owner-only; everyone else gets the public fields.
type ProfileView struct {
	ID             primitive.ObjectID   `json:"id"`
	Username       string               `json:"username"`
	Email          string               `json:"email,omitempty"`
	Bio            *string              `json:"bio,omitempty"`
	ProfilePicture *string              `json:"profilePicture,omitempty"`
	IsPrivate      bool                 `json:"isPrivate"`
	Friends        []primitive.ObjectID `json:"friends,omitempty"`
	FriendRequests []primitive.ObjectID `json:"friendRequests,omitempty"`
	RequestsSent   []primitive.ObjectID `json:"requestsSent,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// ProfileView projects the user for the profile page.
func (u *User) ProfileView(owner bool) *ProfileView {
	view := &ProfileView{
		ID:             u.ID,
		Username:       u.Username,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		IsPrivate:      u.IsPrivate,
		CreatedAt:      u.CreatedAt,
	}
	if owner {
		view.Email = u.Email
		view.Friends = u.Friends
		view.FriendRequests = u.FriendRequests
		view.RequestsSent = u.RequestsSent
	}
	return view
}

// HasFriend reports membership of id in the friends set.
func (u *User) HasFriend(id primitive.ObjectID) bool {
	return containsID(u.Friends, id)
}

// HasIncomingRequest reports a pending request from id to this user.
func (u *User) HasIncomingRequest(id primitive.ObjectID) bool {
	return containsID(u.FriendRequests, id)
}

// HasSentRequest reports a pending request from this user to id.
func (u *User) HasSentRequest(id primitive.ObjectID) bool {
	return containsID(u.RequestsSent, id)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// RegisterRequest carries the raw sign-up fields before validation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries the raw login fields before validation.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate holds optional profile changes. Nil means "leave unchanged".
type ProfileUpdate struct {
	Username       *string
	Email          *string
	Password       *string // already hashed by the service
	Bio            *string
	ProfilePicture *string
}

// IsEmpty reports whether the update would change nothing.
func (p *ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil &&
		p.Bio == nil && p.ProfilePicture == nil
}
