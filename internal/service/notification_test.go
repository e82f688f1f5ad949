package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
)

func TestNotificationService_Notify_SkipsSelf(t *testing.T) {
	notifications := &mockNotificationRepository{}
	svc := NewNotificationService(notifications, nil)

	userID := primitive.NewObjectID()
	if err := svc.Notify(context.Background(), userID, userID, model.NotificationTypePostLike, "/posts/x", "msg"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(notifications.createdNotifications()) != 0 {
		t.Error("self-notification must be skipped")
	}
}

func TestNotificationService_Notify_InvalidatesCache(t *testing.T) {
	notifications := &mockNotificationRepository{}
	unreadCache := newMockUnreadCache()
	svc := NewNotificationService(notifications, unreadCache)

	recipient := primitive.NewObjectID()
	sender := primitive.NewObjectID()

	// Warm the cache, then notify; the stale count must be dropped.
	_ = unreadCache.Set(context.Background(), recipient.Hex(), 3)

	if err := svc.Notify(context.Background(), recipient, sender, model.NotificationTypePostLike, "/posts/x", "msg"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, found, _ := unreadCache.Get(context.Background(), recipient.Hex()); found {
		t.Error("cached unread count must be invalidated after a new notification")
	}
}

func TestNotificationService_List_MarksPageRead(t *testing.T) {
	userID := primitive.NewObjectID()
	readID := primitive.NewObjectID()
	unreadID := primitive.NewObjectID()

	notifications := &mockNotificationRepository{
		listFn: func(ctx context.Context, uID primitive.ObjectID, page, limit int) ([]model.NotificationView, int64, error) {
			return []model.NotificationView{
				{ID: unreadID, IsRead: false},
				{ID: readID, IsRead: true},
			}, 12, nil
		},
	}
	svc := NewNotificationService(notifications, nil)

	views, pagination, err := svc.List(context.Background(), userID, 1, 10)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("views = %d, want 2", len(views))
	}

	// Only the unread entries of the fetched page are marked.
	if notifications.count("MarkRead") != 1 {
		t.Fatalf("MarkRead called %d times, want 1", notifications.count("MarkRead"))
	}

	if pagination.Total != 12 {
		t.Errorf("total = %d, want 12", pagination.Total)
	}
	if pagination.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", pagination.TotalPages)
	}
}

func TestNotificationService_List_DefaultsPageAndLimit(t *testing.T) {
	var gotPage, gotLimit int
	notifications := &mockNotificationRepository{
		listFn: func(ctx context.Context, uID primitive.ObjectID, page, limit int) ([]model.NotificationView, int64, error) {
			gotPage, gotLimit = page, limit
			return []model.NotificationView{}, 0, nil
		},
	}
	svc := NewNotificationService(notifications, nil)

	if _, _, err := svc.List(context.Background(), primitive.NewObjectID(), 0, -5); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if gotPage != 1 || gotLimit != 10 {
		t.Errorf("page/limit = %d/%d, want 1/10", gotPage, gotLimit)
	}
}

func TestNotificationService_UnreadCount_CacheHitSkipsStore(t *testing.T) {
	notifications := &mockNotificationRepository{}
	unreadCache := newMockUnreadCache()
	svc := NewNotificationService(notifications, unreadCache)

	userID := primitive.NewObjectID()
	_ = unreadCache.Set(context.Background(), userID.Hex(), 7)

	count, err := svc.UnreadCount(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
	if notifications.called("CountUnread") {
		t.Error("store must not be queried on a cache hit")
	}
}

func TestNotificationService_UnreadCount_MissPopulatesCache(t *testing.T) {
	notifications := &mockNotificationRepository{
		countUnreadFn: func(ctx context.Context, userID primitive.ObjectID) (int64, error) {
			return 4, nil
		},
	}
	unreadCache := newMockUnreadCache()
	svc := NewNotificationService(notifications, unreadCache)

	userID := primitive.NewObjectID()
	count, err := svc.UnreadCount(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}

	if cached, found, _ := unreadCache.Get(context.Background(), userID.Hex()); !found || cached != 4 {
		t.Errorf("cache = (%d, %v), want (4, true)", cached, found)
	}
}
