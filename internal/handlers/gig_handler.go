package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigflow_backend/internal/middleware"
	"gigflow_backend/internal/services"
	"gigflow_backend/internal/services/dto"
)

type GigHandler struct {
	*BaseHandler
	gigService *services.GigService
}

func NewGigHandler(base *BaseHandler, gigService *services.GigService) *GigHandler {
	return &GigHandler{
		BaseHandler: base,
		gigService:  gigService,
	}
}

func (h *GigHandler) RegisterRoutes(r *gin.RouterGroup) {
	gigs := r.Group("/gigs")
	{
		// Public reads
		gigs.GET("", h.ListGigs)
		gigs.GET("/:gigId", h.GetGig)

		// Owner operations
		gigs.POST("", middleware.AuthMiddleware(), h.CreateGig)
		gigs.PUT("/:gigId", middleware.AuthMiddleware(), h.UpdateGig)
		gigs.DELETE("/:gigId", middleware.AuthMiddleware(), h.DeleteGig)
	}
}

func (h *GigHandler) ListGigs(c *gin.Context) {
	var query dto.GigSearchQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	gigs, err := h.gigService.ListGigs(c.Request.Context(), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gigs":  gigs,
		"count": len(gigs),
	})
}

func (h *GigHandler) GetGig(c *gin.Context) {
	gig, err := h.gigService.GetGig(c.Request.Context(), c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gig": gig})
}

func (h *GigHandler) CreateGig(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	gig, err := h.gigService.CreateGig(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"gig": gig})
}

func (h *GigHandler) UpdateGig(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	gig, err := h.gigService.UpdateGig(c.Request.Context(), c.Param("gigId"), requesterID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gig": gig})
}

func (h *GigHandler) DeleteGig(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.gigService.DeleteGig(c.Request.Context(), c.Param("gigId"), requesterID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gig deleted successfully"})
}
