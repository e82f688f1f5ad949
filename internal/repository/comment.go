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

// commentRepository implements CommentRepository on the comments collection.
type commentRepository struct {
	comments *mongo.Collection
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{comments: db.Collection(database.CollectionComments)}
}

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	result, err := r.comments.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	c.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	var c model.Comment
	err := r.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return &c, nil
}

func (r *commentRepository) Update(ctx context.Context, id primitive.ObjectID, value string) (*model.Comment, error) {
	var c model.Comment
	err := r.comments.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{"value": value, "updatedAt": time.Now().UTC()},
			"$inc": bson.M{"revision": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &c, nil
}

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) DeleteByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := r.comments.DeleteMany(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	if err != nil {
		return fmt.Errorf("failed to delete comments by post ids: %w", err)
	}
	return nil
}

func (r *commentRepository) DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.comments.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete comments by author: %w", err)
	}
	return nil
}
