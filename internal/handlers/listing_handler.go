package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repeto/placement-board/internal/dtos"
	"github.com/repeto/placement-board/internal/middleware"
	"github.com/repeto/placement-board/internal/models"
	"github.com/repeto/placement-board/internal/services"
)

// ListingHandler serves one listing surface. The same handler backs both
// /job-postings and /projects; only the kind and the identifier's wire name
// differ between the two.
type ListingHandler struct {
	Service *services.ListingService
	kind    string
	idKey   string
}

func NewJobPostingHandler(s *services.ListingService) *ListingHandler {
	return &ListingHandler{Service: s, kind: models.KindJob, idKey: "jobId"}
}

func NewProjectHandler(s *services.ListingService) *ListingHandler {
	return &ListingHandler{Service: s, kind: models.KindProject, idKey: "projectId"}
}

// List is the public GET endpoint.
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.Service.List(h.kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) Create(c *gin.Context) {
	var payload dtos.ListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	uid := c.GetString(middleware.ContextUID)
	id, err := h.Service.Create(h.kind, uid, &payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{h.idKey: id})
}

func (h *ListingHandler) Update(c *gin.Context) {
	var req dtos.ListingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	id := req.TargetID(h.kind)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.idKey + " is required for update"})
		return
	}

	if err := h.Service.Update(h.kind, id, &req.ListingPayload); err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing updated successfully"})
}

func (h *ListingHandler) Delete(c *gin.Context) {
	var req dtos.ListingDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	id := req.TargetID(h.kind)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.idKey + " is required for delete"})
		return
	}

	if err := h.Service.Delete(h.kind, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}
