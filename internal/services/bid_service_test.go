package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigflow_backend/internal/appErrors"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
)

// captureNotifier records every pushed event so tests can assert on the
// realtime side effects of a service call. Pushes happen on goroutines, so
// delivery is observed through a buffered channel.
type captureNotifier struct {
	events chan capturedEvent
}

type capturedEvent struct {
	UserID string
	Event  dto.WSEvent
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{events: make(chan capturedEvent, 64)}
}

func (n *captureNotifier) Push(userID string, event dto.WSEvent) {
	n.events <- capturedEvent{UserID: userID, Event: event}
}

func (n *captureNotifier) waitEvent(t *testing.T) capturedEvent {
	t.Helper()
	select {
	case ev := <-n.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a pushed event")
		return capturedEvent{}
	}
}

type bidFixture struct {
	store    *repositories.MemoryStore
	bids     *BidService
	notifier *captureNotifier
}

func newBidFixture(t *testing.T) *bidFixture {
	t.Helper()

	store := repositories.NewMemoryStore()
	notifier := newCaptureNotifier()
	notifications := NewNotificationService(store.Notifications(), notifier)

	return &bidFixture{
		store:    store,
		bids:     NewBidService(store.Bids(), store.Gigs(), notifications),
		notifier: notifier,
	}
}

func (f *bidFixture) createOpenGig(t *testing.T, ownerID string) *models.Gig {
	t.Helper()

	gig := &models.Gig{
		OwnerID:     ownerID,
		Title:       "Build a landing page",
		Description: "Responsive landing page for a product launch",
		Budget:      500,
		Status:      models.GigStatusOpen,
	}
	require.NoError(t, f.store.Gigs().Create(context.Background(), gig))
	return gig
}

func (f *bidFixture) submitBid(t *testing.T, gigID, freelancerID string) *models.Bid {
	t.Helper()

	bid, err := f.bids.SubmitBid(context.Background(), gigID, freelancerID, &dto.SubmitBidRequest{
		Message: "I can do this",
		Price:   450,
	})
	require.NoError(t, err)
	return bid
}

func TestSubmitBid_CreatesPendingBidAndNotifiesOwner(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	freelancer := uuid.NewString()
	gig := f.createOpenGig(t, owner)

	bid, err := f.bids.SubmitBid(context.Background(), gig.ID, freelancer, &dto.SubmitBidRequest{
		Message: "Three days, fixed price",
		Price:   400,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BidStatusPending, bid.Status)
	assert.Equal(t, freelancer, bid.FreelancerID)
	assert.Equal(t, gig.ID, bid.GigID)

	ev := f.notifier.waitEvent(t)
	assert.Equal(t, owner, ev.UserID)
	assert.Equal(t, dto.EventNewBid, ev.Event.Type)
	payload, ok := ev.Event.Data.(dto.NewBidEvent)
	require.True(t, ok)
	assert.Equal(t, gig.ID, payload.GigID)
	assert.Equal(t, bid.ID, payload.BidID)
}

func TestSubmitBid_GigNotFound(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	_, err := f.bids.SubmitBid(context.Background(), uuid.NewString(), uuid.NewString(), &dto.SubmitBidRequest{
		Message: "hello",
		Price:   10,
	})
	assert.ErrorIs(t, err, appErrors.ErrGigNotFound)
}

func TestSubmitBid_OwnGigForbidden(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	gig := f.createOpenGig(t, owner)

	_, err := f.bids.SubmitBid(context.Background(), gig.ID, owner, &dto.SubmitBidRequest{
		Message: "bidding on myself",
		Price:   1,
	})
	assert.ErrorIs(t, err, appErrors.ErrCannotBidOwnGig)
}

func TestSubmitBid_ClosedGigRejected(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	hired := uuid.NewString()
	gig := f.createOpenGig(t, owner)
	winning := f.submitBid(t, gig.ID, hired)

	_, err := f.bids.Hire(context.Background(), winning.ID, owner)
	require.NoError(t, err)

	_, err = f.bids.SubmitBid(context.Background(), gig.ID, uuid.NewString(), &dto.SubmitBidRequest{
		Message: "too late",
		Price:   100,
	})
	assert.ErrorIs(t, err, appErrors.ErrGigNotOpen)
}

func TestSubmitBid_DuplicateConflict(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	gig := f.createOpenGig(t, uuid.NewString())
	freelancer := uuid.NewString()

	f.submitBid(t, gig.ID, freelancer)

	_, err := f.bids.SubmitBid(context.Background(), gig.ID, freelancer, &dto.SubmitBidRequest{
		Message: "second attempt",
		Price:   300,
	})
	assert.ErrorIs(t, err, appErrors.ErrBidAlreadyExists)
}

func TestSubmitBid_ConcurrentDuplicatesYieldOneBid(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	gig := f.createOpenGig(t, uuid.NewString())
	freelancer := uuid.NewString()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.bids.SubmitBid(context.Background(), gig.ID, freelancer, &dto.SubmitBidRequest{
				Message: "racing",
				Price:   200,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case appErrors.Is(err, appErrors.ErrBidAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	bids, err := f.store.Bids().ListByGig(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Len(t, bids, 1)
}

func TestHire_AssignsGigAndRejectsSiblings(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	winner := uuid.NewString()
	loserA := uuid.NewString()
	loserB := uuid.NewString()

	gig := f.createOpenGig(t, owner)
	winningBid := f.submitBid(t, gig.ID, winner)
	f.submitBid(t, gig.ID, loserA)
	f.submitBid(t, gig.ID, loserB)
	drainEvents(f.notifier, 3)

	hired, err := f.bids.Hire(context.Background(), winningBid.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.BidStatusHired, hired.Status)

	// Gig flipped to assigned with the winner recorded.
	updated, err := f.store.Gigs().GetByID(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusAssigned, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, winner, *updated.AssignedTo)

	// Every other pending bid is rejected.
	bids, err := f.store.Bids().ListByGig(context.Background(), gig.ID)
	require.NoError(t, err)
	require.Len(t, bids, 3)
	for _, b := range bids {
		if b.ID == winningBid.ID {
			assert.Equal(t, models.BidStatusHired, b.Status)
		} else {
			assert.Equal(t, models.BidStatusRejected, b.Status)
		}
	}

	// The hired freelancer gets the realtime event.
	ev := f.notifier.waitEvent(t)
	assert.Equal(t, winner, ev.UserID)
	assert.Equal(t, dto.EventHired, ev.Event.Type)
	payload, ok := ev.Event.Data.(dto.HiredEvent)
	require.True(t, ok)
	assert.Equal(t, gig.ID, payload.GigID)
	assert.Equal(t, gig.Title, payload.GigTitle)
	assert.Equal(t, winningBid.ID, payload.BidID)
	assert.Contains(t, payload.Message, gig.Title)
}

func TestHire_PersistsNotificationForFreelancer(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	winner := uuid.NewString()
	gig := f.createOpenGig(t, owner)
	bid := f.submitBid(t, gig.ID, winner)
	drainEvents(f.notifier, 1)

	_, err := f.bids.Hire(context.Background(), bid.ID, owner)
	require.NoError(t, err)
	f.notifier.waitEvent(t)

	notifications, total, err := f.store.Notifications().FindUserNotifications(winner, false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, notifications, 1)
	assert.Equal(t, repositories.NotificationTypeHired, notifications[0].Type)
	assert.False(t, notifications[0].IsRead)
}

func TestHire_NotOwnerForbidden(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	gig := f.createOpenGig(t, uuid.NewString())
	bid := f.submitBid(t, gig.ID, uuid.NewString())

	_, err := f.bids.Hire(context.Background(), bid.ID, uuid.NewString())
	assert.ErrorIs(t, err, appErrors.ErrNotGigOwner)
}

func TestHire_BidNotFound(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	_, err := f.bids.Hire(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, appErrors.ErrBidNotFound)
}

func TestHire_SecondHireConflicts(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	gig := f.createOpenGig(t, owner)
	first := f.submitBid(t, gig.ID, uuid.NewString())
	second := f.submitBid(t, gig.ID, uuid.NewString())

	_, err := f.bids.Hire(context.Background(), first.ID, owner)
	require.NoError(t, err)

	_, err = f.bids.Hire(context.Background(), second.ID, owner)
	assert.ErrorIs(t, err, appErrors.ErrGigAlreadyAssigned)

	_, err = f.bids.Hire(context.Background(), first.ID, owner)
	assert.ErrorIs(t, err, appErrors.ErrGigAlreadyAssigned)
}

// TestHire_ConcurrentHiresExactlyOneWins drives N simultaneous hires on
// different bids of one gig: exactly one must commit, the rest must fail
// with the assigned conflict, and the surviving state must be consistent.
func TestHire_ConcurrentHiresExactlyOneWins(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	gig := f.createOpenGig(t, owner)

	const contenders = 16
	bidIDs := make([]string, contenders)
	for i := 0; i < contenders; i++ {
		bidIDs[i] = f.submitBid(t, gig.ID, uuid.NewString()).ID
	}
	drainEvents(f.notifier, contenders)

	var wg sync.WaitGroup
	errs := make(chan error, contenders)
	for _, bidID := range bidIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.bids.Hire(context.Background(), id, owner)
			errs <- err
		}(bidID)
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case appErrors.Is(err, appErrors.ErrGigAlreadyAssigned):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, contenders-1, conflicts)

	// Exactly one hired bid, everything else rejected, gig assigned to the
	// hired bid's freelancer.
	updated, err := f.store.Gigs().GetByID(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusAssigned, updated.Status)
	require.NotNil(t, updated.AssignedTo)

	bids, err := f.store.Bids().ListByGig(context.Background(), gig.ID)
	require.NoError(t, err)
	hiredCount := 0
	for _, b := range bids {
		switch b.Status {
		case models.BidStatusHired:
			hiredCount++
			assert.Equal(t, *updated.AssignedTo, b.FreelancerID)
		case models.BidStatusRejected:
		default:
			t.Fatalf("bid %s left in status %s", b.ID, b.Status)
		}
	}
	assert.Equal(t, 1, hiredCount)
}

func TestGetGigBids_OwnerOnly(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	owner := uuid.NewString()
	gig := f.createOpenGig(t, owner)
	f.submitBid(t, gig.ID, uuid.NewString())
	f.submitBid(t, gig.ID, uuid.NewString())

	bids, err := f.bids.GetGigBids(context.Background(), gig.ID, owner)
	require.NoError(t, err)
	assert.Len(t, bids, 2)

	_, err = f.bids.GetGigBids(context.Background(), gig.ID, uuid.NewString())
	assert.ErrorIs(t, err, appErrors.ErrNotGigOwner)
}

func TestGetMyBids(t *testing.T) {
	t.Parallel()
	f := newBidFixture(t)

	freelancer := uuid.NewString()
	gigA := f.createOpenGig(t, uuid.NewString())
	gigB := f.createOpenGig(t, uuid.NewString())
	f.submitBid(t, gigA.ID, freelancer)
	f.submitBid(t, gigB.ID, freelancer)
	f.submitBid(t, gigA.ID, uuid.NewString())

	bids, err := f.bids.GetMyBids(context.Background(), freelancer)
	require.NoError(t, err)
	assert.Len(t, bids, 2)
	for _, b := range bids {
		assert.Equal(t, freelancer, b.FreelancerID)
	}
}

// drainEvents discards n pushed events so later assertions only see what the
// operation under test produced.
func drainEvents(n *captureNotifier, count int) {
	for i := 0; i < count; i++ {
		select {
		case <-n.events:
		case <-time.After(2 * time.Second):
			return
		}
	}
}
