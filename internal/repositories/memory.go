package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gigflow_backend/internal/models"
)

// MemoryStore is a concurrency-safe in-memory implementation of every
// repository interface, sharing one mutex so the hire transition and the
// bid uniqueness check carry the same atomicity guarantees as the postgres
// transaction. Used by the test suite.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]models.User
	usersByEmail  map[string]string
	gigs          map[string]models.Gig
	bids          map[string]models.Bid
	notifications map[string]models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]models.User),
		usersByEmail:  make(map[string]string),
		gigs:          make(map[string]models.Gig),
		bids:          make(map[string]models.Bid),
		notifications: make(map[string]models.Notification),
	}
}

func (s *MemoryStore) Users() UserRepository { return &memoryUserRepo{s} }
func (s *MemoryStore) Gigs() GigRepository   { return &memoryGigRepo{s} }
func (s *MemoryStore) Bids() BidRepository   { return &memoryBidRepo{s} }
func (s *MemoryStore) Notifications() NotificationRepository {
	return &memoryNotificationRepo{s}
}

// --- users ---

type memoryUserRepo struct {
	store *MemoryStore
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.usersByEmail[user.Email]; taken {
		return ErrEmailAlreadyExists
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	r.store.users[user.ID] = *user
	r.store.usersByEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := r.store.users[id]
	return &u, nil
}

// --- gigs ---

type memoryGigRepo struct {
	store *MemoryStore
}

func (r *memoryGigRepo) Create(_ context.Context, gig *models.Gig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if gig.ID == "" {
		gig.ID = uuid.NewString()
	}
	gig.CreatedAt = time.Now()
	gig.UpdatedAt = gig.CreatedAt

	r.store.gigs[gig.ID] = *gig
	return nil
}

func (r *memoryGigRepo) GetByID(_ context.Context, id string) (*models.Gig, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	g, ok := r.store.gigs[id]
	if !ok {
		return nil, ErrGigNotFound
	}
	return &g, nil
}

func (r *memoryGigRepo) List(_ context.Context, criteria GigSearchCriteria) ([]models.Gig, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(criteria.Search)

	var gigs []models.Gig
	for _, g := range r.store.gigs {
		if search != "" &&
			!strings.Contains(strings.ToLower(g.Title), search) &&
			!strings.Contains(strings.ToLower(g.Description), search) {
			continue
		}
		if criteria.Status != "" && g.Status != criteria.Status {
			continue
		}
		if criteria.OwnerID != "" && g.OwnerID != criteria.OwnerID {
			continue
		}
		gigs = append(gigs, g)
	}

	sort.Slice(gigs, func(i, j int) bool {
		return gigs[i].CreatedAt.After(gigs[j].CreatedAt)
	})
	return gigs, nil
}

func (r *memoryGigRepo) Update(_ context.Context, gig *models.Gig) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.gigs[gig.ID]
	if !ok {
		return ErrGigNotFound
	}

	stored.Title = gig.Title
	stored.Description = gig.Description
	stored.Budget = gig.Budget
	stored.UpdatedAt = time.Now()
	r.store.gigs[gig.ID] = stored
	return nil
}

func (r *memoryGigRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.gigs[id]; !ok {
		return ErrGigNotFound
	}
	delete(r.store.gigs, id)
	return nil
}

// --- bids ---

type memoryBidRepo struct {
	store *MemoryStore
}

func (r *memoryBidRepo) Create(_ context.Context, bid *models.Bid) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Uniqueness check and insert happen under one lock, mirroring the
	// unique index semantics of the postgres implementation.
	for _, b := range r.store.bids {
		if b.GigID == bid.GigID && b.FreelancerID == bid.FreelancerID {
			return ErrBidAlreadyExists
		}
	}

	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	bid.CreatedAt = time.Now()

	r.store.bids[bid.ID] = *bid
	return nil
}

func (r *memoryBidRepo) GetByID(_ context.Context, id string) (*models.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bids[id]
	if !ok {
		return nil, ErrBidNotFound
	}
	return &b, nil
}

func (r *memoryBidRepo) ListByGig(_ context.Context, gigID string) ([]models.Bid, error) {
	return r.listWhere(func(b models.Bid) bool { return b.GigID == gigID })
}

func (r *memoryBidRepo) ListByFreelancer(_ context.Context, freelancerID string) ([]models.Bid, error) {
	return r.listWhere(func(b models.Bid) bool { return b.FreelancerID == freelancerID })
}

func (r *memoryBidRepo) listWhere(match func(models.Bid) bool) ([]models.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bids []models.Bid
	for _, b := range r.store.bids {
		if match(b) {
			bids = append(bids, b)
		}
	}

	sort.Slice(bids, func(i, j int) bool {
		return bids[i].CreatedAt.After(bids[j].CreatedAt)
	})
	return bids, nil
}

func (r *memoryBidRepo) Hire(_ context.Context, gigID, bidID, freelancerID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	gig, ok := r.store.gigs[gigID]
	if !ok {
		return 0, ErrGigNotFound
	}
	if gig.Status != models.GigStatusOpen {
		return 0, ErrGigNotAssignable
	}

	bid, ok := r.store.bids[bidID]
	if !ok || bid.Status != models.BidStatusPending {
		return 0, ErrBidNotFound
	}

	gig.Status = models.GigStatusAssigned
	assigned := freelancerID
	gig.AssignedTo = &assigned
	gig.UpdatedAt = time.Now()
	r.store.gigs[gigID] = gig

	bid.Status = models.BidStatusHired
	r.store.bids[bidID] = bid

	var rejected int64
	for id, b := range r.store.bids {
		if b.GigID == gigID && id != bidID && b.Status == models.BidStatusPending {
			b.Status = models.BidStatusRejected
			r.store.bids[id] = b
			rejected++
		}
	}
	return rejected, nil
}

// --- notifications ---

type memoryNotificationRepo struct {
	store *MemoryStore
}

func (r *memoryNotificationRepo) Create(notification *models.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = notification.CreatedAt

	r.store.notifications[notification.ID] = *notification
	return nil
}

func (r *memoryNotificationRepo) FindUserNotifications(userID string, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var all []models.Notification
	for _, n := range r.store.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		all = append(all, n)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memoryNotificationRepo) MarkAsRead(userID, notificationID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.notifications[notificationID]
	if !ok || n.UserID != userID {
		return ErrNotificationNotFound
	}

	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	r.store.notifications[notificationID] = n
	return nil
}

func (r *memoryNotificationRepo) MarkAllAsRead(userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for id, n := range r.store.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
			r.store.notifications[id] = n
		}
	}
	return nil
}

func (r *memoryNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, n := range r.store.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}
