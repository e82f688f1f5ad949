package service

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
	"linkup/internal/repository"
	"linkup/internal/validation"
)

const (
	defaultProfilePage  = 1
	defaultProfileLimit = 9
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// UserService covers the account lifecycle: registration, login, the profile
// view, profile edits, and the account-deletion cascade.
type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Register validates the sign-up fields, hashes the password, and creates the
// user. Validation failures for all fields are aggregated into one error.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	chain := validation.NewChain()
	username := chain.Field("username", req.Username,
		validation.Trim(),
		validation.LengthBetween(3, 30, "Username must be between 3 and 30 characters"),
		validation.Matches(usernamePattern, "Username can only contain letters, numbers, and underscores"),
		validation.NotTaken(s.userRepo.ExistsByUsername, "Username already exists"),
	)
	email := chain.Field("email", req.Email,
		validation.Trim(),
		validation.Email("Please provide a valid email address"),
		validation.Lowercase(),
		validation.NotTaken(s.userRepo.ExistsByEmail, "Email already exists"),
	)
	password := chain.Field("password", req.Password,
		validation.LengthBetween(6, 128, "Password must be at least 6 characters long"),
		validation.PasswordStrength("Password must contain at least one lowercase letter, one uppercase letter, and one number"),
	)
	if err := chain.Validate(ctx); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password.Value()), bcrypt.DefaultCost)
	if err != nil {
		return nil, model.NewInternal("failed to hash password", err)
	}

	user := &model.User{
		Username: username.Value(),
		Email:    email.Value(),
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the user. The two failure modes
// are deliberately distinct messages, matching the client's expectations.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.ErrNoUserWithEmail
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrPasswordMismatch
	}
	return user, nil
}

// Profile is the profile-page view: the user plus one page of post thumbnails.
type Profile struct {
	User       *model.ProfileView    `json:"user"`
	Posts      []model.PostThumbnail `json:"posts"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	PostsTotal int                   `json:"postsTotal"`
}

// GetProfile assembles the profile view of targetID as seen by viewerID,
// newest posts first. A private profile is visible only to its owner and
// their friends; on a visible profile, private posts are hidden from viewers
// who are neither.
func (s *UserService) GetProfile(ctx context.Context, viewerID, targetID primitive.ObjectID, page, limit int) (*Profile, error) {
	if page < 1 {
		page = defaultProfilePage
	}
	if limit < 1 {
		limit = defaultProfileLimit
	}

	user, posts, err := s.userRepo.GetProfileWithPosts(ctx, targetID, page, limit, "createdAt", true)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID == targetID
	isFriend := user.HasFriend(viewerID)
	if user.IsPrivate && !isOwner && !isFriend {
		return nil, model.NewForbidden("This profile is private")
	}
	if !isOwner && !isFriend {
		visible := posts[:0]
		for _, thumbnail := range posts {
			if !thumbnail.IsPrivate {
				visible = append(visible, thumbnail)
			}
		}
		posts = visible
	}

	return &Profile{
		User:       user.ProfileView(isOwner),
		Posts:      posts,
		Page:       page,
		Limit:      limit,
		PostsTotal: len(user.Posts),
	}, nil
}

// ProfileEdit carries the raw optional profile fields before validation.
type ProfileEdit struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// UpdateProfile validates the present fields and applies them. Uniqueness
// checks exclude the user's own document so resubmitting the current username
// or email is not a conflict.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, edit *ProfileEdit) (*model.User, error) {
	chain := validation.NewChain()
	update := &model.ProfileUpdate{}

	var username, email, password *validation.Field
	if edit.Username != nil {
		username = chain.Field("username", *edit.Username,
			validation.Trim(),
			validation.LengthBetween(3, 30, "Username must be between 3 and 30 characters"),
			validation.Matches(usernamePattern, "Username can only contain letters, numbers, and underscores"),
			validation.NotTaken(func(ctx context.Context, value string) (bool, error) {
				return s.userRepo.ExistsByUsernameExcept(ctx, value, userID)
			}, "Username already exists"),
		)
	}
	if edit.Email != nil {
		email = chain.Field("email", *edit.Email,
			validation.Trim(),
			validation.Email("Please provide a valid email address"),
			validation.Lowercase(),
			validation.NotTaken(func(ctx context.Context, value string) (bool, error) {
				return s.userRepo.ExistsByEmailExcept(ctx, value, userID)
			}, "Email already exists"),
		)
	}
	if edit.Password != nil {
		password = chain.Field("password", *edit.Password,
			validation.LengthBetween(6, 128, "Password must be at least 6 characters long"),
			validation.PasswordStrength("Password must contain at least one lowercase letter, one uppercase letter, and one number"),
		)
	}
	if err := chain.Validate(ctx); err != nil {
		return nil, err
	}

	if username != nil {
		value := username.Value()
		update.Username = &value
	}
	if email != nil {
		value := email.Value()
		update.Email = &value
	}
	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password.Value()), bcrypt.DefaultCost)
		if err != nil {
			return nil, model.NewInternal("failed to hash password", err)
		}
		hashed := string(hash)
		update.Password = &hashed
	}
	if edit.Bio != nil {
		update.Bio = edit.Bio
	}

	if update.IsEmpty() {
		return s.userRepo.GetByID(ctx, userID)
	}
	return s.userRepo.UpdateProfile(ctx, userID, update)
}

// SetProfilePicture stores a new avatar URL on the user.
func (s *UserService) SetProfilePicture(ctx context.Context, userID primitive.ObjectID, url string) (*model.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, &model.ProfileUpdate{ProfilePicture: &url})
}

// DeleteAccount removes the user and everything hanging off them, returning
// the deleted user's summary. The user document goes first; once it is gone
// the account is unreachable and the remaining cleanup runs concurrently.
// There is no rollback: a partial failure leaves orphans for the sweep
// rather than resurrecting the account.
func (s *UserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) (*model.UserSummary, error) {
	postIDs, err := s.postRepo.IDsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.postRepo.DeleteByOwner(gctx, userID) })
	g.Go(func() error { return s.commentRepo.DeleteByPostIDs(gctx, postIDs) })
	g.Go(func() error { return s.commentRepo.DeleteByAuthor(gctx, userID) })
	g.Go(func() error { return s.postRepo.PullLikesByUser(gctx, userID) })
	g.Go(func() error { return s.userRepo.RemoveFromAllGraphs(gctx, userID) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}

// ShowFriends lists a user's friends as public summaries. A private profile
// only shows its friends to the owner and to existing friends.
func (s *UserService) ShowFriends(ctx context.Context, viewerID, targetID primitive.ObjectID) ([]model.UserSummary, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if target.IsPrivate && viewerID != targetID && !target.HasFriend(viewerID) {
		return nil, model.NewForbidden("This profile is private")
	}

	return s.userRepo.GetSummaries(ctx, target.Friends)
}

// ShowFriendRequests lists the pending incoming requests of the caller.
func (s *UserService) ShowFriendRequests(ctx context.Context, userID primitive.ObjectID) ([]model.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetSummaries(ctx, user.FriendRequests)
}
