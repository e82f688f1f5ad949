package service

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/cache"
	"linkup/internal/model"
	"linkup/internal/repository"
)

const (
	defaultNotificationPage  = 1
	defaultNotificationLimit = 10
)

// NotificationService owns the notification fan-out and the read-side badge
// count. Notifications are only ever created as a side effect of another
// user's action; a user never notifies themselves.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	unreadCache      cache.UnreadCache
}

func NewNotificationService(notificationRepo repository.NotificationRepository, unreadCache cache.UnreadCache) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		unreadCache:      unreadCache,
	}
}

// Notify records a notification for recipient about sender's action. The
// self-notification case is silently skipped, not an error.
func (s *NotificationService) Notify(ctx context.Context, recipient, sender primitive.ObjectID, notifType, route, message string) error {
	if recipient == sender {
		return nil
	}

	n := &model.Notification{
		UserID:  recipient,
		Sender:  sender,
		Type:    notifType,
		Route:   route,
		Message: message,
		IsRead:  false,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	s.invalidateUnread(ctx, recipient)
	return nil
}

// List returns one page of the recipient's notifications, newest first, and
// marks the returned page as read. Reading the list is what clears the badge.
func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]model.NotificationView, *model.Pagination, error) {
	if page < 1 {
		page = defaultNotificationPage
	}
	if limit < 1 {
		limit = defaultNotificationLimit
	}

	views, total, err := s.notificationRepo.ListByRecipient(ctx, userID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	unreadIDs := make([]primitive.ObjectID, 0, len(views))
	for _, view := range views {
		if !view.IsRead {
			unreadIDs = append(unreadIDs, view.ID)
		}
	}
	if len(unreadIDs) > 0 {
		if err := s.notificationRepo.MarkRead(ctx, userID, unreadIDs); err != nil {
			return nil, nil, err
		}
		s.invalidateUnread(ctx, userID)
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return views, &model.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UnreadCount returns the badge count, served from the cache when warm.
func (s *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if s.unreadCache != nil {
		count, found, err := s.unreadCache.Get(ctx, userID.Hex())
		if err != nil {
			log.Printf("[NotificationService] unread cache read failed: %v", err)
		} else if found {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.unreadCache != nil {
		if err := s.unreadCache.Set(ctx, userID.Hex(), count); err != nil {
			log.Printf("[NotificationService] unread cache write failed: %v", err)
		}
	}
	return count, nil
}

// invalidateUnread drops the cached badge count. The cache is best effort;
// a failed invalidation only delays the badge by the cache TTL.
func (s *NotificationService) invalidateUnread(ctx context.Context, userID primitive.ObjectID) {
	if s.unreadCache == nil {
		return
	}
	if err := s.unreadCache.Invalidate(ctx, userID.Hex()); err != nil {
		log.Printf("[NotificationService] unread cache invalidation failed: %v", err)
	}
}
