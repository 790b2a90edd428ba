package handler

import (
	"context"
	"net/http"

	"store-locator/internal/models"

	"github.com/gin-gonic/gin"
)

// LocationHandler serves resolved locations from the cache
type LocationHandler struct {
	service LocationLister
}

// Service interface for dependency injection
type LocationLister interface {
	ListByRegion(ctx context.Context, region string) ([]models.Location, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationLister) *LocationHandler {
	return &LocationHandler{service: svc}
}

// ListByRegion handles GET /locations requests
func (h *LocationHandler) ListByRegion(c *gin.Context) {
	region := c.Query("region")
	if region == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'region'"})
		return
	}

	locations, err := h.service.ListByRegion(c.Request.Context(), region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if locations == nil {
		locations = []models.Location{}
	}

	c.JSON(http.StatusOK, locations)
}
