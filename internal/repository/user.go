package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"linkup/internal/database"
	"linkup/internal/model"
)

// userRepository implements UserRepository on the users collection.
type userRepository struct {
	users *mongo.Collection
	posts *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		users: db.Collection(database.CollectionUsers),
		posts: db.Collection(database.CollectionPosts),
	}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Friends == nil {
		u.Friends = []primitive.ObjectID{}
	}
	if u.FriendRequests == nil {
		u.FriendRequests = []primitive.ObjectID{}
	}
	if u.RequestsSent == nil {
		u.RequestsSent = []primitive.ObjectID{}
	}
	if u.Posts == nil {
		u.Posts = []primitive.ObjectID{}
	}

	result, err := r.users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// The unique indexes are the last line of defense behind the
			// validation-pipeline checks.
			return duplicateIdentity(err)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	u.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// duplicateIdentity maps a unique-index violation to the sentinel for the
// field whose index fired. The driver reports the index name ("email_1" or
// "username_1") in the error message.
func duplicateIdentity(err error) error {
	if strings.Contains(err.Error(), "email") {
		return model.ErrEmailExists
	}
	return model.ErrUsernameExists
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *userRepository) ExistsByUsernameExcept(ctx context.Context, username string, except primitive.ObjectID) (bool, error) {
	return r.exists(ctx, bson.M{"username": username, "_id": bson.M{"$ne": except}})
}

func (r *userRepository) ExistsByEmailExcept(ctx context.Context, email string, except primitive.ObjectID) (bool, error) {
	return r.exists(ctx, bson.M{"email": email, "_id": bson.M{"$ne": except}})
}

func (r *userRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update *model.ProfileUpdate) (*model.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.ProfilePicture != nil {
		set["profilePicture"] = *update.ProfilePicture
	}

	var u model.User
	err := r.users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetSummaries(ctx context.Context, ids []primitive.ObjectID) ([]model.UserSummary, error) {
	if len(ids) == 0 {
		return []model.UserSummary{}, nil
	}

	cursor, err := r.users.Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "username": 1, "profilePicture": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load user summaries: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []model.UserSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode user summaries: %w", err)
	}
	return summaries, nil
}

// updateByID applies one atomic update to a single user document.
func (r *userRepository) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.users.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) AddOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"requestsSent": friendID}})
}

func (r *userRepository) AddIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"friendRequests": friendID}})
}

func (r *userRepository) RemoveOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"requestsSent": friendID}})
}

func (r *userRepository) RemoveIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"friendRequests": friendID}})
}

func (r *userRepository) AcceptIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"friends": friendID},
		"$pull":     bson.M{"friendRequests": friendID},
	})
}

func (r *userRepository) AcceptOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"friends": friendID},
		"$pull":     bson.M{"requestsSent": friendID},
	})
}

func (r *userRepository) AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$addToSet": bson.M{"posts": postID}})
}

func (r *userRepository) RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateByID(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var u model.User
	err := r.users.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) RemoveFromAllGraphs(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.users.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{
			"friends":        userID,
			"friendRequests": userID,
			"requestsSent":   userID,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to remove user from friend graphs: %w", err)
	}
	return nil
}

func (r *userRepository) GetProfileWithPosts(ctx context.Context, id primitive.ObjectID, page, limit int, sortField string, descending bool) (*model.User, []model.PostThumbnail, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	order := 1
	if descending {
		order = -1
	}
	skip := (page - 1) * limit

	// Read-side aggregation: paginate the user's posts and derive like and
	// comment counts per post. Not a consistent snapshot under concurrent
	// writes, which is acceptable for this view.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": id}}},
		{{Key: "$sort", Value: bson.D{{Key: sortField, Value: order}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionComments,
			"localField":   "_id",
			"foreignField": "postId",
			"as":           "postComments",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"likesCount":    bson.M{"$size": "$likes"},
			"commentsCount": bson.M{"$size": "$postComments"},
			"isEdited":      bson.M{"$gt": bson.A{"$revision", 0}},
		}}},
		{{Key: "$unset", Value: "postComments"}},
	}

	cursor, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to aggregate profile posts: %w", err)
	}
	defer cursor.Close(ctx)

	thumbnails := []model.PostThumbnail{}
	if err := cursor.All(ctx, &thumbnails); err != nil {
		return nil, nil, fmt.Errorf("failed to decode profile posts: %w", err)
	}

	return user, thumbnails, nil
}

func (r *userRepository) FindWithPendingRequests(ctx context.Context) ([]model.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"requestsSent.0": bson.M{"$exists": true}},
		bson.M{"friendRequests.0": bson.M{"$exists": true}},
	}}

	cursor, err := r.users.Find(
		ctx,
		filter,
		options.Find().SetProjection(bson.M{"_id": 1, "friendRequests": 1, "requestsSent": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find users with pending requests: %w", err)
	}
	defer cursor.Close(ctx)

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users with pending requests: %w", err)
	}
	return users, nil
}
