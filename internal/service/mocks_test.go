package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
)

// Function-field mocks for the repository interfaces. Each test overrides
// only the methods it cares about; unset methods fall back to a harmless
// default. Call logs are guarded by a mutex because compound service
// operations fan out writes concurrently.

type repoCall struct {
	Method string
	Args   []primitive.ObjectID
}

type callLog struct {
	mu    sync.Mutex
	calls []repoCall
}

func (l *callLog) record(method string, args ...primitive.ObjectID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, repoCall{Method: method, Args: args})
}

func (l *callLog) count(method string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (l *callLog) called(method string) bool {
	return l.count(method) > 0
}

type mockUserRepository struct {
	callLog

	createFn                 func(ctx context.Context, user *model.User) error
	getByIDFn                func(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	getByEmailFn             func(ctx context.Context, email string) (*model.User, error)
	existsByUsernameFn       func(ctx context.Context, username string) (bool, error)
	existsByEmailFn          func(ctx context.Context, email string) (bool, error)
	existsByUsernameExceptFn func(ctx context.Context, username string, except primitive.ObjectID) (bool, error)
	existsByEmailExceptFn    func(ctx context.Context, email string, except primitive.ObjectID) (bool, error)
	updateProfileFn          func(ctx context.Context, id primitive.ObjectID, update *model.ProfileUpdate) (*model.User, error)
	getSummariesFn           func(ctx context.Context, ids []primitive.ObjectID) ([]model.UserSummary, error)
	deleteFn                 func(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	getProfileWithPostsFn    func(ctx context.Context, id primitive.ObjectID, page, limit int, sortField string, descending bool) (*model.User, []model.PostThumbnail, error)
	findWithPendingFn        func(ctx context.Context) ([]model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.record("Create")
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = primitive.NewObjectID()
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	m.record("GetByID", id)
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.record("GetByEmail")
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsernameExcept(ctx context.Context, username string, except primitive.ObjectID) (bool, error) {
	if m.existsByUsernameExceptFn != nil {
		return m.existsByUsernameExceptFn(ctx, username, except)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmailExcept(ctx context.Context, email string, except primitive.ObjectID) (bool, error) {
	if m.existsByEmailExceptFn != nil {
		return m.existsByEmailExceptFn(ctx, email, except)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update *model.ProfileUpdate) (*model.User, error) {
	m.record("UpdateProfile", id)
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, update)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) GetSummaries(ctx context.Context, ids []primitive.ObjectID) ([]model.UserSummary, error) {
	m.record("GetSummaries", ids...)
	if m.getSummariesFn != nil {
		return m.getSummariesFn(ctx, ids)
	}
	summaries := make([]model.UserSummary, len(ids))
	for i, id := range ids {
		summaries[i] = model.UserSummary{ID: id}
	}
	return summaries, nil
}

func (m *mockUserRepository) AddOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	m.record("AddOutgoingRequest", userID, friendID)
	return nil
}

func (m *mockUserRepository) AddIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	m.record("AddIncomingRequest", userID, friendID)
	return nil
}

func (m *mockUserRepository) RemoveOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	m.record("RemoveOutgoingRequest", userID, friendID)
	return nil
}

func (m *mockUserRepository) RemoveIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	m.record("RemoveIncomingRequest", userID, friendID)
	return nil
}

func (m *mockUserRepository) AcceptIncomingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	m.record("AcceptIncomingRequest", userID, friendID)
	return nil
}

func (m *mockUserRepository) AcceptOutgoingRequest(ctx context.Context, userID, friendID primitive.ObjectID) error {
	m.record("AcceptOutgoingRequest", userID, friendID)
	return nil
}

func (m *mockUserRepository) AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	m.record("AddPostRef", userID, postID)
	return nil
}

func (m *mockUserRepository) RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	m.record("RemovePostRef", userID, postID)
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	m.record("Delete", id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) RemoveFromAllGraphs(ctx context.Context, userID primitive.ObjectID) error {
	m.record("RemoveFromAllGraphs", userID)
	return nil
}

func (m *mockUserRepository) GetProfileWithPosts(ctx context.Context, id primitive.ObjectID, page, limit int, sortField string, descending bool) (*model.User, []model.PostThumbnail, error) {
	m.record("GetProfileWithPosts", id)
	if m.getProfileWithPostsFn != nil {
		return m.getProfileWithPostsFn(ctx, id, page, limit, sortField, descending)
	}
	return &model.User{ID: id}, []model.PostThumbnail{}, nil
}

func (m *mockUserRepository) FindWithPendingRequests(ctx context.Context) ([]model.User, error) {
	m.record("FindWithPendingRequests")
	if m.findWithPendingFn != nil {
		return m.findWithPendingFn(ctx)
	}
	return []model.User{}, nil
}

type mockPostRepository struct {
	callLog

	createFn     func(ctx context.Context, post *model.Post) error
	getByIDFn    func(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	getViewFn    func(ctx context.Context, id primitive.ObjectID) (*model.PostView, error)
	updateFn     func(ctx context.Context, id primitive.ObjectID, update *model.UpdatePostRequest) (*model.Post, error)
	addLikeFn    func(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error)
	removeLikeFn func(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error)
	idsByOwnerFn func(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	m.record("Create")
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = primitive.NewObjectID()
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	m.record("GetByID", id)
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetView(ctx context.Context, id primitive.ObjectID) (*model.PostView, error) {
	m.record("GetView", id)
	if m.getViewFn != nil {
		return m.getViewFn(ctx, id)
	}
	return &model.PostView{ID: id}, nil
}

func (m *mockPostRepository) Update(ctx context.Context, id primitive.ObjectID, update *model.UpdatePostRequest) (*model.Post, error) {
	m.record("Update", id)
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return &model.Post{ID: id, Revision: 1}, nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.record("Delete", id)
	return nil
}

func (m *mockPostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	m.record("AddLike", postID, userID)
	if m.addLikeFn != nil {
		return m.addLikeFn(ctx, postID, userID)
	}
	return &model.Post{ID: postID, Likes: []primitive.ObjectID{userID}}, nil
}

func (m *mockPostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	m.record("RemoveLike", postID, userID)
	if m.removeLikeFn != nil {
		return m.removeLikeFn(ctx, postID, userID)
	}
	return &model.Post{ID: postID, Likes: []primitive.ObjectID{}}, nil
}

func (m *mockPostRepository) AddCommentRef(ctx context.Context, postID, commentID primitive.ObjectID) error {
	m.record("AddCommentRef", postID, commentID)
	return nil
}

func (m *mockPostRepository) RemoveCommentRef(ctx context.Context, postID, commentID primitive.ObjectID) error {
	m.record("RemoveCommentRef", postID, commentID)
	return nil
}

func (m *mockPostRepository) IDsByOwner(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.record("IDsByOwner", userID)
	if m.idsByOwnerFn != nil {
		return m.idsByOwnerFn(ctx, userID)
	}
	return []primitive.ObjectID{}, nil
}

func (m *mockPostRepository) DeleteByOwner(ctx context.Context, userID primitive.ObjectID) error {
	m.record("DeleteByOwner", userID)
	return nil
}

func (m *mockPostRepository) PullLikesByUser(ctx context.Context, userID primitive.ObjectID) error {
	m.record("PullLikesByUser", userID)
	return nil
}

type mockCommentRepository struct {
	callLog

	createFn  func(ctx context.Context, comment *model.Comment) error
	getByIDFn func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	updateFn  func(ctx context.Context, id primitive.ObjectID, value string) (*model.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	m.record("Create")
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = primitive.NewObjectID()
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	m.record("GetByID", id)
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) Update(ctx context.Context, id primitive.ObjectID, value string) (*model.Comment, error) {
	m.record("Update", id)
	if m.updateFn != nil {
		return m.updateFn(ctx, id, value)
	}
	return &model.Comment{ID: id, Value: value, Revision: 1}, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.record("Delete", id)
	return nil
}

func (m *mockCommentRepository) DeleteByPostIDs(ctx context.Context, postIDs []primitive.ObjectID) error {
	m.record("DeleteByPostIDs", postIDs...)
	return nil
}

func (m *mockCommentRepository) DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error {
	m.record("DeleteByAuthor", userID)
	return nil
}

type mockNotificationRepository struct {
	callLog

	mu            sync.Mutex
	created       []*model.Notification
	listFn        func(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]model.NotificationView, int64, error)
	countUnreadFn func(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	m.record("Create", notification.UserID, notification.Sender)
	notification.ID = primitive.NewObjectID()
	m.mu.Lock()
	m.created = append(m.created, notification)
	m.mu.Unlock()
	return nil
}

func (m *mockNotificationRepository) createdNotifications() []*model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Notification, len(m.created))
	copy(out, m.created)
	return out
}

func (m *mockNotificationRepository) ListByRecipient(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]model.NotificationView, int64, error) {
	m.record("ListByRecipient", userID)
	if m.listFn != nil {
		return m.listFn(ctx, userID, page, limit)
	}
	return []model.NotificationView{}, 0, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) error {
	m.record("MarkRead", ids...)
	return nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	m.record("CountUnread", userID)
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

type mockUnreadCache struct {
	mu     sync.Mutex
	values map[string]int64
}

func newMockUnreadCache() *mockUnreadCache {
	return &mockUnreadCache{values: make(map[string]int64)}
}

func (m *mockUnreadCache) Get(ctx context.Context, userID string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count, found := m.values[userID]
	return count, found, nil
}

func (m *mockUnreadCache) Set(ctx context.Context, userID string, count int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[userID] = count
	return nil
}

func (m *mockUnreadCache) Invalidate(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, userID)
	return nil
}
