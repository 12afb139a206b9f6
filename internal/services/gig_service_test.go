package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigflow_backend/internal/appErrors"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/services/dto"
)

func newGigService() (*GigService, *repositories.MemoryStore) {
	store := repositories.NewMemoryStore()
	return NewGigService(store.Gigs()), store
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateGig_DefaultsToOpen(t *testing.T) {
	t.Parallel()
	svc, _ := newGigService()

	owner := uuid.NewString()
	gig, err := svc.CreateGig(context.Background(), owner, &dto.CreateGigRequest{
		Title:       "Logo design",
		Description: "Minimal logo for a coffee shop",
		Budget:      150,
	})
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
	assert.Equal(t, owner, gig.OwnerID)
	assert.Nil(t, gig.AssignedTo)
	assert.NotEmpty(t, gig.ID)
}

func TestGetGig_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newGigService()

	_, err := svc.GetGig(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, appErrors.ErrGigNotFound)
}

func TestListGigs_FiltersBySearchAndStatus(t *testing.T) {
	t.Parallel()
	svc, _ := newGigService()

	owner := uuid.NewString()
	_, err := svc.CreateGig(context.Background(), owner, &dto.CreateGigRequest{
		Title:       "React dashboard",
		Description: "Admin dashboard in React",
		Budget:      900,
	})
	require.NoError(t, err)
	_, err = svc.CreateGig(context.Background(), owner, &dto.CreateGigRequest{
		Title:       "Logo refresh",
		Description: "Update brand colors",
		Budget:      200,
	})
	require.NoError(t, err)

	gigs, err := svc.ListGigs(context.Background(), &dto.GigSearchQuery{Search: "react"})
	require.NoError(t, err)
	require.Len(t, gigs, 1)
	assert.Equal(t, "React dashboard", gigs[0].Title)

	gigs, err = svc.ListGigs(context.Background(), &dto.GigSearchQuery{Status: "assigned"})
	require.NoError(t, err)
	assert.Empty(t, gigs)

	gigs, err = svc.ListGigs(context.Background(), &dto.GigSearchQuery{})
	require.NoError(t, err)
	assert.Len(t, gigs, 2)
}

func TestUpdateGig_OwnerEditsOpenGig(t *testing.T) {
	t.Parallel()
	svc, _ := newGigService()

	owner := uuid.NewString()
	gig, err := svc.CreateGig(context.Background(), owner, &dto.CreateGigRequest{
		Title:       "Initial title",
		Description: "Initial description",
		Budget:      100,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateGig(context.Background(), gig.ID, owner, &dto.UpdateGigRequest{
		Title:  strPtr("New title"),
		Budget: floatPtr(250),
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "Initial description", updated.Description)
	assert.Equal(t, float64(250), updated.Budget)
}

func TestUpdateGig_NonOwnerForbidden(t *testing.T) {
	t.Parallel()
	svc, _ := newGigService()

	gig, err := svc.CreateGig(context.Background(), uuid.NewString(), &dto.CreateGigRequest{
		Title:       "Untouchable",
		Description: "Someone else's gig",
		Budget:      50,
	})
	require.NoError(t, err)

	_, err = svc.UpdateGig(context.Background(), gig.ID, uuid.NewString(), &dto.UpdateGigRequest{
		Title: strPtr("hijacked"),
	})
	assert.ErrorIs(t, err, appErrors.ErrNotGigOwner)
}

func TestUpdateGig_AssignedGigLocked(t *testing.T) {
	t.Parallel()
	store := repositories.NewMemoryStore()
	svc := NewGigService(store.Gigs())

	owner := uuid.NewString()
	assigned := uuid.NewString()
	gig := &models.Gig{
		OwnerID:     owner,
		Title:       "Done deal",
		Description: "Already assigned",
		Budget:      300,
		Status:      models.GigStatusAssigned,
		AssignedTo:  &assigned,
	}
	require.NoError(t, store.Gigs().Create(context.Background(), gig))

	_, err := svc.UpdateGig(context.Background(), gig.ID, owner, &dto.UpdateGigRequest{
		Title: strPtr("renegotiated"),
	})
	assert.ErrorIs(t, err, appErrors.ErrGigAlreadyAssigned)

	err = svc.DeleteGig(context.Background(), gig.ID, owner)
	assert.ErrorIs(t, err, appErrors.ErrGigAlreadyAssigned)
}

func TestDeleteGig_OwnerDeletesOpenGig(t *testing.T) {
	t.Parallel()
	svc, _ := newGigService()

	owner := uuid.NewString()
	gig, err := svc.CreateGig(context.Background(), owner, &dto.CreateGigRequest{
		Title:       "Short lived",
		Description: "Will be removed",
		Budget:      75,
	})
	require.NoError(t, err)

	err = svc.DeleteGig(context.Background(), gig.ID, uuid.NewString())
	assert.ErrorIs(t, err, appErrors.ErrNotGigOwner)

	require.NoError(t, svc.DeleteGig(context.Background(), gig.ID, owner))

	_, err = svc.GetGig(context.Background(), gig.ID)
	assert.ErrorIs(t, err, appErrors.ErrGigNotFound)
}
