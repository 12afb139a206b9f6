package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigflow_backend/internal/middleware"
	"gigflow_backend/internal/services"
	"gigflow_backend/internal/services/dto"
)

type BidHandler struct {
	*BaseHandler
	bidService *services.BidService
}

func NewBidHandler(base *BaseHandler, bidService *services.BidService) *BidHandler {
	return &BidHandler{
		BaseHandler: base,
		bidService:  bidService,
	}
}

func (h *BidHandler) RegisterRoutes(r *gin.RouterGroup) {
	bids := r.Group("/bids")
	bids.Use(middleware.AuthMiddleware())
	{
		bids.POST("/gigs/:gigId", h.SubmitBid)
		bids.GET("/gigs/:gigId", h.GetGigBids)
		bids.GET("/my", h.GetMyBids)
		bids.PATCH("/:bidId/hire", h.Hire)
	}
}

func (h *BidHandler) SubmitBid(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitBidRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	bid, err := h.bidService.SubmitBid(c.Request.Context(), c.Param("gigId"), requesterID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bid": bid})
}

func (h *BidHandler) GetGigBids(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bids, err := h.bidService.GetGigBids(c.Request.Context(), c.Param("gigId"), requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bids":  bids,
		"count": len(bids),
	})
}

func (h *BidHandler) GetMyBids(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bids, err := h.bidService.GetMyBids(c.Request.Context(), requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bids":  bids,
		"count": len(bids),
	})
}

func (h *BidHandler) Hire(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bid, err := h.bidService.Hire(c.Request.Context(), c.Param("bidId"), requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Freelancer hired successfully",
		"bid":     bid,
	})
}
