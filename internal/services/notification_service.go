package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"gigflow_backend/internal/appErrors"
	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
)

// Notifier delivers an event to every active connection of a user. Delivery
// is best-effort; implementations must not block the caller.
type Notifier interface {
	Push(userID string, event dto.WSEvent)
}

// NoopNotifier satisfies Notifier when no realtime channel is wired.
type NoopNotifier struct{}

func (NoopNotifier) Push(string, dto.WSEvent) {}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	notifier         Notifier
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, notifier Notifier) *NotificationService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

// NotifyHired persists a notification for the hired freelancer and pushes the
// realtime event. Both effects are best-effort: a failure here never affects
// the hire outcome, so errors are only logged.
func (s *NotificationService) NotifyHired(freelancerID string, gig *models.Gig, bidID string) {
	message := fmt.Sprintf("You have been hired for %q!", gig.Title)

	s.persist(freelancerID, repositories.NotificationTypeHired, "You're hired", message, gig.ID, bidID)

	s.notifier.Push(freelancerID, dto.WSEvent{
		Type: dto.EventHired,
		Data: dto.HiredEvent{
			Message:  message,
			GigID:    gig.ID,
			GigTitle: gig.Title,
			BidID:    bidID,
		},
	})
}

// NotifyNewBid tells the gig owner a bid arrived.
func (s *NotificationService) NotifyNewBid(ownerID string, gig *models.Gig, bidID string) {
	message := fmt.Sprintf("New bid on %q", gig.Title)

	s.persist(ownerID, repositories.NotificationTypeNewBid, "New bid", message, gig.ID, bidID)

	s.notifier.Push(ownerID, dto.WSEvent{
		Type: dto.EventNewBid,
		Data: dto.NewBidEvent{
			Message:  message,
			GigID:    gig.ID,
			GigTitle: gig.Title,
			BidID:    bidID,
		},
	})
}

func (s *NotificationService) persist(userID, notifType, title, message, gigID, bidID string) {
	data, err := json.Marshal(map[string]string{"gig_id": gigID, "bid_id": bidID})
	if err != nil {
		logger.WithError(err).Warn("failed to marshal notification data", "user_id", userID)
		data = nil
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    datatypes.JSON(data),
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.WithError(err).Warn("failed to persist notification", "user_id", userID, "type", notifType)
	}
}

func (s *NotificationService) GetUserNotifications(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	return notifications, total, nil
}

func (s *NotificationService) MarkAsRead(userID, notificationID string) error {
	err := s.notificationRepo.MarkAsRead(userID, notificationID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrNotificationNotFound) {
			return appErrors.ErrNotificationNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, appErrors.InternalError(err)
	}
	return count, nil
}
