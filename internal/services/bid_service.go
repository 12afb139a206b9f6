package services

import (
	"context"
	"errors"

	"gigflow_backend/internal/appErrors"
	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
)

type BidService struct {
	bidRepo       repositories.BidRepository
	gigRepo       repositories.GigRepository
	notifications *NotificationService
}

func NewBidService(
	bidRepo repositories.BidRepository,
	gigRepo repositories.GigRepository,
	notifications *NotificationService,
) *BidService {
	return &BidService{
		bidRepo:       bidRepo,
		gigRepo:       gigRepo,
		notifications: notifications,
	}
}

// SubmitBid creates a pending bid for the requester on the gig.
// Precondition order: gig exists, gig open, requester is not the owner,
// requester has no bid yet. The last check is the unique constraint at the
// point of write, so two concurrent submissions from one freelancer yield
// exactly one bid.
func (s *BidService) SubmitBid(ctx context.Context, gigID, requesterID string, req *dto.SubmitBidRequest) (*models.Bid, error) {
	gig, err := s.gigRepo.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return nil, appErrors.ErrGigNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if gig.Status != models.GigStatusOpen {
		return nil, appErrors.ErrGigNotOpen
	}
	if gig.OwnerID == requesterID {
		return nil, appErrors.ErrCannotBidOwnGig
	}

	bid := &models.Bid{
		GigID:        gigID,
		FreelancerID: requesterID,
		Message:      req.Message,
		Price:        req.Price,
		Status:       models.BidStatusPending,
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		if errors.Is(err, repositories.ErrBidAlreadyExists) {
			return nil, appErrors.ErrBidAlreadyExists
		}
		return nil, appErrors.InternalError(err)
	}

	go s.notifications.NotifyNewBid(gig.OwnerID, gig, bid.ID)

	return bid, nil
}

// Hire assigns the gig behind the bid to the bid's freelancer. The repository
// runs the transition as one atomic unit guarded by a compare-and-set on the
// gig status, so of N concurrent hires on one gig exactly one succeeds and
// the rest fail with GIG_ALREADY_ASSIGNED. Notification delivery happens
// after commit and never affects the result.
func (s *BidService) Hire(ctx context.Context, bidID, requesterID string) (*models.Bid, error) {
	bid, err := s.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repositories.ErrBidNotFound) {
			return nil, appErrors.ErrBidNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	gig, err := s.gigRepo.GetByID(ctx, bid.GigID)
	if err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return nil, appErrors.ErrGigNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if gig.OwnerID != requesterID {
		return nil, appErrors.ErrNotGigOwner
	}
	if gig.Status != models.GigStatusOpen {
		return nil, appErrors.ErrGigAlreadyAssigned
	}

	rejected, err := s.bidRepo.Hire(ctx, gig.ID, bid.ID, bid.FreelancerID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrGigNotAssignable):
			// Lost the race: someone else's hire committed first.
			return nil, appErrors.ErrGigAlreadyAssigned
		case errors.Is(err, repositories.ErrBidNotFound):
			return nil, appErrors.ErrBidNotFound
		case errors.Is(err, repositories.ErrGigNotFound):
			return nil, appErrors.ErrGigNotFound
		default:
			return nil, appErrors.InternalError(err)
		}
	}

	logger.Info("freelancer hired",
		"gig_id", gig.ID,
		"bid_id", bid.ID,
		"freelancer_id", bid.FreelancerID,
		"rejected_bids", rejected,
	)

	go s.notifications.NotifyHired(bid.FreelancerID, gig, bid.ID)

	bid.Status = models.BidStatusHired
	return bid, nil
}

// GetGigBids lists the bids on a gig; only the gig owner may look.
func (s *BidService) GetGigBids(ctx context.Context, gigID, requesterID string) ([]models.Bid, error) {
	gig, err := s.gigRepo.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return nil, appErrors.ErrGigNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if gig.OwnerID != requesterID {
		return nil, appErrors.ErrNotGigOwner
	}

	bids, err := s.bidRepo.ListByGig(ctx, gigID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return bids, nil
}

// GetMyBids lists every bid the requester has submitted.
func (s *BidService) GetMyBids(ctx context.Context, requesterID string) ([]models.Bid, error) {
	bids, err := s.bidRepo.ListByFreelancer(ctx, requesterID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return bids, nil
}
