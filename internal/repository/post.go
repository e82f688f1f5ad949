package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"linkup/internal/database"
	"linkup/internal/model"
)

// postRepository implements PostRepository on the posts collection.
type postRepository struct {
	posts *mongo.Collection
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{posts: db.Collection(database.CollectionPosts)}
}

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.Comments == nil {
		p.Comments = []primitive.ObjectID{}
	}

	result, err := r.posts.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	p.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var p model.Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return &p, nil
}

func (r *postRepository) GetView(ctx context.Context, id primitive.ObjectID) (*model.PostView, error) {
	authorSummary := bson.A{bson.M{"$project": bson.M{"_id": 1, "username": 1, "profilePicture": 1}}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$addFields", Value: bson.M{
			"likesCount": bson.M{"$size": "$likes"},
			"isEdited":   bson.M{"$gt": bson.A{"$revision", 0}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionUsers,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "authorDoc",
			"pipeline":     authorSummary,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionComments,
			"localField":   "_id",
			"foreignField": "postId",
			"as":           "comments",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         database.CollectionUsers,
					"localField":   "userId",
					"foreignField": "_id",
					"as":           "authorDoc",
					"pipeline":     authorSummary,
				}},
				bson.M{"$addFields": bson.M{
					"author":   bson.M{"$arrayElemAt": bson.A{"$authorDoc", 0}},
					"isEdited": bson.M{"$gt": bson.A{"$revision", 0}},
				}},
				bson.M{"$unset": "authorDoc"},
				bson.M{"$sort": bson.M{"createdAt": -1}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"author": bson.M{"$arrayElemAt": bson.A{"$authorDoc", 0}},
		}}},
		{{Key: "$unset", Value: "authorDoc"}},
	}

	cursor, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate post view: %w", err)
	}
	defer cursor.Close(ctx)

	var views []model.PostView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode post view: %w", err)
	}
	if len(views) == 0 {
		return nil, model.ErrPostNotFound
	}
	return &views[0], nil
}

func (r *postRepository) Update(ctx context.Context, id primitive.ObjectID, update *model.UpdatePostRequest) (*model.Post, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.IsPrivate != nil {
		set["isPrivate"] = *update.IsPrivate
	}

	var p model.Post
	err := r.posts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set, "$inc": bson.M{"revision": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &p, nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// toggleLike applies the membership update and returns the post after it.
func (r *postRepository) toggleLike(ctx context.Context, postID primitive.ObjectID, update bson.M) (*model.Post, error) {
	var p model.Post
	err := r.posts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post likes: %w", err)
	}
	return &p, nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	return r.toggleLike(ctx, postID, bson.M{"$addToSet": bson.M{"likes": userID}})
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	return r.toggleLike(ctx, postID, bson.M{"$pull": bson.M{"likes": userID}})
}

func (r *postRepository) AddCommentRef(ctx context.Context, postID, commentID primitive.ObjectID) error {
	result, err := r.posts.UpdateByID(ctx, postID, bson.M{"$addToSet": bson.M{"comments": commentID}})
	if err != nil {
		return fmt.Errorf("failed to link comment to post: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) RemoveCommentRef(ctx context.Context, postID, commentID primitive.ObjectID) error {
	_, err := r.posts.UpdateByID(ctx, postID, bson.M{"$pull": bson.M{"comments": commentID}})
	if err != nil {
		return fmt.Errorf("failed to unlink comment from post: %w", err)
	}
	return nil
}

func (r *postRepository) IDsByOwner(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.posts.Find(
		ctx,
		bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list post ids by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode post ids: %w", err)
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	return ids, nil
}

func (r *postRepository) DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.posts.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete posts by owner: %w", err)
	}
	return nil
}

func (r *postRepository) PullLikesByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.posts.UpdateMany(ctx, bson.M{}, bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return fmt.Errorf("failed to pull likes by user: %w", err)
	}
	return nil
}
