package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
	"linkup/internal/repository"
)

// Friend-request response statuses accepted by RespondToRequest.
const (
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// Outcomes of the send-request toggle.
const (
	RequestOutcomeSent    = "Friend request sent"
	RequestOutcomeRemoved = "Friend request removed"
)

// FriendService drives the friend-request state machine. Each pending request
// is recorded on both sides (sender's requestsSent, recipient's
// friendRequests) with two independent single-document writes, so the two
// markers can transiently disagree; the reconciliation sweep repairs any
// asymmetry that outlives a crash.
type FriendService struct {
	userRepo repository.UserRepository
	notifier *NotificationService
}

func NewFriendService(userRepo repository.UserRepository, notifier *NotificationService) *FriendService {
	return &FriendService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

// SendRequest toggles a pending request from userID to friendID: sending when
// none exists, withdrawing when one does. Two sends in a row cancel out.
// A pending request in the other direction does not block sending; the pair
// may hold requests both ways until one side accepts.
func (s *FriendService) SendRequest(ctx context.Context, userID, friendID primitive.ObjectID) (string, error) {
	if userID == friendID {
		return "", model.NewInvalidInput("You cannot send a request to yourself")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return "", err
	}

	if user.HasFriend(friendID) {
		return "", model.ErrAlreadyFriends
	}

	if user.HasSentRequest(friendID) {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return s.userRepo.RemoveOutgoingRequest(gctx, userID, friendID) })
		g.Go(func() error { return s.userRepo.RemoveIncomingRequest(gctx, friendID, userID) })
		if err := g.Wait(); err != nil {
			return "", err
		}
		return RequestOutcomeRemoved, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.userRepo.AddOutgoingRequest(gctx, userID, friendID) })
	g.Go(func() error { return s.userRepo.AddIncomingRequest(gctx, friendID, userID) })
	if err := g.Wait(); err != nil {
		return "", err
	}
	return RequestOutcomeSent, nil
}

// RespondToRequest resolves a pending incoming request from friendID. Accept
// makes the friendship symmetric and notifies the requester; decline just
// clears the pending markers, silently.
func (s *FriendService) RespondToRequest(ctx context.Context, userID, friendID primitive.ObjectID, status string) error {
	if status != RequestStatusAccepted && status != RequestStatusDeclined {
		return model.NewInvalidInput("status must be 'accepted' or 'declined'")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return err
	}

	if !user.HasIncomingRequest(friendID) {
		return model.ErrNoPendingRequest
	}

	if status == RequestStatusAccepted {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return s.userRepo.AcceptIncomingRequest(gctx, userID, friendID) })
		g.Go(func() error { return s.userRepo.AcceptOutgoingRequest(gctx, friendID, userID) })
		if err := g.Wait(); err != nil {
			return err
		}

		message := fmt.Sprintf("%s accepted your friend request.", user.Username)
		route := fmt.Sprintf("/profile/%s", userID.Hex())
		if err := s.notifier.Notify(ctx, friendID, userID, model.NotificationTypeRequestAccepted, route, message); err != nil {
			return err
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.userRepo.RemoveIncomingRequest(gctx, userID, friendID) })
	g.Go(func() error { return s.userRepo.RemoveOutgoingRequest(gctx, friendID, userID) })
	return g.Wait()
}
