package services

import (
	"context"
	"errors"

	"gigflow_backend/internal/appErrors"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
)

type GigService struct {
	gigRepo repositories.GigRepository
}

func NewGigService(gigRepo repositories.GigRepository) *GigService {
	return &GigService{gigRepo: gigRepo}
}

func (s *GigService) CreateGig(ctx context.Context, ownerID string, req *dto.CreateGigRequest) (*models.Gig, error) {
	gig := &models.Gig{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Status:      models.GigStatusOpen,
	}

	if err := s.gigRepo.Create(ctx, gig); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return gig, nil
}

func (s *GigService) GetGig(ctx context.Context, gigID string) (*models.Gig, error) {
	gig, err := s.gigRepo.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return nil, appErrors.ErrGigNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return gig, nil
}

func (s *GigService) ListGigs(ctx context.Context, query *dto.GigSearchQuery) ([]models.Gig, error) {
	criteria := repositories.GigSearchCriteria{
		Search: query.Search,
		Status: models.GigStatus(query.Status),
	}

	gigs, err := s.gigRepo.List(ctx, criteria)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return gigs, nil
}

// UpdateGig edits title/description/budget. Only the owner may edit, and only
// while the gig is still open; an assigned gig is an agreed contract.
func (s *GigService) UpdateGig(ctx context.Context, gigID, requesterID string, req *dto.UpdateGigRequest) (*models.Gig, error) {
	gig, err := s.GetGig(ctx, gigID)
	if err != nil {
		return nil, err
	}

	if gig.OwnerID != requesterID {
		return nil, appErrors.ErrNotGigOwner
	}
	if gig.Status != models.GigStatusOpen {
		return nil, appErrors.ErrGigAlreadyAssigned
	}

	if req.Title != nil {
		gig.Title = *req.Title
	}
	if req.Description != nil {
		gig.Description = *req.Description
	}
	if req.Budget != nil {
		gig.Budget = *req.Budget
	}

	if err := s.gigRepo.Update(ctx, gig); err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return nil, appErrors.ErrGigNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return gig, nil
}

// DeleteGig removes an open gig. Deleting an assigned gig is refused.
func (s *GigService) DeleteGig(ctx context.Context, gigID, requesterID string) error {
	gig, err := s.GetGig(ctx, gigID)
	if err != nil {
		return err
	}

	if gig.OwnerID != requesterID {
		return appErrors.ErrNotGigOwner
	}
	if gig.Status != models.GigStatusOpen {
		return appErrors.ErrGigAlreadyAssigned
	}

	if err := s.gigRepo.Delete(ctx, gigID); err != nil {
		if errors.Is(err, repositories.ErrGigNotFound) {
			return appErrors.ErrGigNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}
