package repositories

import (
	"context"
	"errors"

	"gigflow_backend/internal/models"
)

// Sentinel errors surfaced by every implementation. Services translate them
// into application errors at the operation boundary.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrGigNotFound        = errors.New("gig not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrBidAlreadyExists   = errors.New("bid already exists for this gig")

	// ErrGigNotAssignable is returned when the hire compare-and-set finds the
	// gig no longer open, including losing a concurrent hire race.
	ErrGigNotAssignable = errors.New("gig is not open for assignment")

	ErrNotificationNotFound = errors.New("notification not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// GigSearchCriteria filters ListGigs. Search is a case-insensitive substring
// match over title and description; empty fields are ignored.
type GigSearchCriteria struct {
	Search  string
	Status  models.GigStatus
	OwnerID string
}

type GigRepository interface {
	Create(ctx context.Context, gig *models.Gig) error
	GetByID(ctx context.Context, id string) (*models.Gig, error)
	List(ctx context.Context, criteria GigSearchCriteria) ([]models.Gig, error)
	Update(ctx context.Context, gig *models.Gig) error
	Delete(ctx context.Context, id string) error
}

type BidRepository interface {
	// Create inserts a pending bid. Returns ErrBidAlreadyExists when the
	// (gig, freelancer) uniqueness constraint rejects the write.
	Create(ctx context.Context, bid *models.Bid) error
	GetByID(ctx context.Context, id string) (*models.Bid, error)
	ListByGig(ctx context.Context, gigID string) ([]models.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID string) ([]models.Bid, error)

	// Hire runs the assignment transition as one atomic unit: the gig flips
	// open -> assigned via a compare-and-set on its status, the chosen bid
	// becomes hired and every remaining pending bid on the gig becomes
	// rejected. Returns the number of rejected siblings. When the
	// compare-and-set matches no row the unit aborts with
	// ErrGigNotAssignable and no state changes.
	Hire(ctx context.Context, gigID, bidID, freelancerID string) (int64, error)
}

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindUserNotifications(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	GetUnreadCount(userID string) (int64, error)
}
