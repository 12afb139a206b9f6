package services

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigflow_backend/internal/appErrors"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
)

func newNotificationFixture() (*NotificationService, *captureNotifier, *repositories.MemoryStore) {
	store := repositories.NewMemoryStore()
	notifier := newCaptureNotifier()
	return NewNotificationService(store.Notifications(), notifier), notifier, store
}

func TestNotifyHired_PersistsAndPushes(t *testing.T) {
	t.Parallel()
	svc, notifier, _ := newNotificationFixture()

	freelancer := uuid.NewString()
	gig := &models.Gig{
		ID:    uuid.NewString(),
		Title: "API integration",
	}
	bidID := uuid.NewString()

	svc.NotifyHired(freelancer, gig, bidID)

	ev := notifier.waitEvent(t)
	assert.Equal(t, freelancer, ev.UserID)
	assert.Equal(t, "hired", ev.Event.Type)

	notifications, total, err := svc.GetUserNotifications(freelancer, true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, notifications, 1)

	var data map[string]string
	require.NoError(t, json.Unmarshal(notifications[0].Data, &data))
	assert.Equal(t, gig.ID, data["gig_id"])
	assert.Equal(t, bidID, data["bid_id"])
}

func TestMarkAsRead_FlowAndUnreadCount(t *testing.T) {
	t.Parallel()
	svc, notifier, _ := newNotificationFixture()

	userID := uuid.NewString()
	gig := &models.Gig{
		ID:    uuid.NewString(),
		Title: "Copywriting",
	}
	svc.NotifyNewBid(userID, gig, uuid.NewString())
	svc.NotifyNewBid(userID, gig, uuid.NewString())
	drainEvents(notifier, 2)

	count, err := svc.GetUnreadCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	notifications, _, err := svc.GetUserNotifications(userID, true, 1, 20)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	require.NoError(t, svc.MarkAsRead(userID, notifications[0].ID))

	count, err = svc.GetUnreadCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkAllAsRead(userID))

	count, err = svc.GetUnreadCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkAsRead_ForeignNotificationHidden(t *testing.T) {
	t.Parallel()
	svc, notifier, _ := newNotificationFixture()

	owner := uuid.NewString()
	gig := &models.Gig{
		ID:    uuid.NewString(),
		Title: "Translation",
	}
	svc.NotifyNewBid(owner, gig, uuid.NewString())
	drainEvents(notifier, 1)

	notifications, _, err := svc.GetUserNotifications(owner, false, 1, 20)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	// Another user cannot read someone else's notification.
	err = svc.MarkAsRead(uuid.NewString(), notifications[0].ID)
	assert.ErrorIs(t, err, appErrors.ErrNotificationNotFound)
}

func TestNotificationService_NilNotifierFallsBackToNoop(t *testing.T) {
	t.Parallel()
	store := repositories.NewMemoryStore()
	svc := NewNotificationService(store.Notifications(), nil)

	gig := &models.Gig{
		ID:    uuid.NewString(),
		Title: "Quiet gig",
	}

	// Must not panic without a realtime channel wired.
	svc.NotifyHired(uuid.NewString(), gig, uuid.NewString())
}
