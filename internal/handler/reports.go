package handler

import (
	"errors"
	"net/http"
	"os"

	"store-locator/internal/report"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves generated batch reports
type ReportHandler struct {
	store ReportStore
}

// Store interface for dependency injection
type ReportStore interface {
	List() ([]string, error)
	Read(name string) ([]byte, error)
}

// NewReportHandler creates a new report handler
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

// List handles GET /reports requests
func (h *ReportHandler) List(c *gin.Context) {
	names, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if names == nil {
		names = []string{}
	}

	c.JSON(http.StatusOK, names)
}

// Get handles GET /reports/:name requests, returning the report HTML body
func (h *ReportHandler) Get(c *gin.Context) {
	name := c.Param("name")

	body, err := h.store.Read(name)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report name"})
		case errors.Is(err, os.ErrNotExist):
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
