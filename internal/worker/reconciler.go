package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkup/internal/model"
	"linkup/internal/repository"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 10 * time.Minute

// Reconciler periodically repairs one-sided pending friend requests. A
// request is recorded with two independent writes (sender's requestsSent and
// recipient's friendRequests), so a crash between them leaves a marker with
// no counterpart. The sweep removes such orphans; it never fabricates the
// missing half, since the intent behind a half-written request is unknowable.
type Reconciler struct {
	userRepo repository.UserRepository
	interval time.Duration

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewReconciler(userRepo repository.UserRepository, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Reconciler{
		userRepo: userRepo,
		interval: interval,
	}
}

// Start begins the periodic sweep. Call Stop to shut down gracefully.
func (r *Reconciler) Start(ctx context.Context) {
	r.ctx, r.cancel = context.WithCancel(ctx)

	log.Printf("[Reconciler] Starting with interval %s", r.interval)

	r.wg.Add(1)
	go r.run()
}

// Stop shuts the sweep down and blocks until the current pass finishes.
func (r *Reconciler) Stop() {
	log.Printf("[Reconciler] Stopping...")
	r.cancel()
	r.wg.Wait()
	log.Printf("[Reconciler] Stopped")
}

func (r *Reconciler) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			log.Printf("[Reconciler] Shutting down")
			return
		case <-ticker.C:
			if err := r.Sweep(r.ctx); err != nil {
				log.Printf("[Reconciler] Sweep failed: %v", err)
			}
		}
	}
}

// Sweep runs one reconciliation pass over all users carrying pending
// markers. Exported so a pass can be triggered directly in tests or ops
// tooling.
func (r *Reconciler) Sweep(ctx context.Context) error {
	users, err := r.userRepo.FindWithPendingRequests(ctx)
	if err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	repaired := 0
	for i := range users {
		user := &users[i]

		for _, friendID := range user.RequestsSent {
			if hasIncomingFrom(byID, friendID, user.ID) {
				continue
			}
			// The recipient never recorded this request; drop the orphaned
			// outgoing marker.
			if err := r.userRepo.RemoveOutgoingRequest(ctx, user.ID, friendID); err != nil {
				log.Printf("[Reconciler] Failed to remove orphaned outgoing request %s -> %s: %v", user.ID.Hex(), friendID.Hex(), err)
				continue
			}
			repaired++
		}

		for _, friendID := range user.FriendRequests {
			if hasOutgoingTo(byID, friendID, user.ID) {
				continue
			}
			if err := r.userRepo.RemoveIncomingRequest(ctx, user.ID, friendID); err != nil {
				log.Printf("[Reconciler] Failed to remove orphaned incoming request %s <- %s: %v", user.ID.Hex(), friendID.Hex(), err)
				continue
			}
			repaired++
		}
	}

	if repaired > 0 {
		log.Printf("[Reconciler] Repaired %d orphaned pending markers", repaired)
	}
	return nil
}

// hasIncomingFrom reports whether owner's friendRequests contains senderID.
// An owner missing from the snapshot (deleted mid-sweep) counts as missing.
func hasIncomingFrom(byID map[primitive.ObjectID]*model.User, ownerID, senderID primitive.ObjectID) bool {
	owner, ok := byID[ownerID]
	if !ok {
		return false
	}
	return owner.HasIncomingRequest(senderID)
}

// hasOutgoingTo reports whether owner's requestsSent contains recipientID.
func hasOutgoingTo(byID map[primitive.ObjectID]*model.User, ownerID, recipientID primitive.ObjectID) bool {
	owner, ok := byID[ownerID]
	if !ok {
		return false
	}
	return owner.HasSentRequest(recipientID)
}
