package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"linkup/internal/database"
	"linkup/internal/model"
)

// notificationRepository implements NotificationRepository on the
// notifications collection.
type notificationRepository struct {
	notifications *mongo.Collection
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{notifications: db.Collection(database.CollectionNotifications)}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	result, err := r.notifications.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	n.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]model.NotificationView, int64, error) {
	skip := (page - 1) * limit

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionUsers,
			"localField":   "sender",
			"foreignField": "_id",
			"as":           "senderDoc",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"_id": 1, "username": 1, "profilePicture": 1}}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"sender": bson.M{"$arrayElemAt": bson.A{"$senderDoc", 0}},
		}}},
		{{Key: "$unset", Value: "senderDoc"}},
	}

	cursor, err := r.notifications.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate notifications: %w", err)
	}
	defer cursor.Close(ctx)

	views := []model.NotificationView{}
	if err := cursor.All(ctx, &views); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notifications: %w", err)
	}

	total, err := r.notifications.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return views, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.notifications.UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}, "userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.notifications.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
