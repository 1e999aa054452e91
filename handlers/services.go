package handlers

import (
	"net/http"

	"homehelper/models"
	"homehelper/services/catalog"
	"homehelper/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the service catalog: public browsing plus the admin
// management endpoints.
type CatalogHandler struct {
	Catalog catalog.Service
}

// ListServicesHandler returns the available services, optionally filtered by
// category.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	logger := getLogger(c)

	var (
		services []models.Service
		err      error
	)
	if category := c.Query("category"); category != "" {
		services, err = h.Catalog.ListByCategory(c.Request.Context(), models.ServiceCategory(category))
	} else {
		services, err = h.Catalog.ListServices(c.Request.Context())
	}
	if err != nil {
		logger.Error("Failed to list services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetServiceHandler returns one service by id.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateServiceHandler adds a catalog entry. Admin only.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	logger := getLogger(c)

	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Catalog.CreateService(c.Request.Context(), &svc); err != nil {
		logger.Error("Failed to create service", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateServiceHandler replaces a catalog entry. Admin only.
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	logger := getLogger(c)

	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	svc.ID = c.Param("id")
	if err := h.Catalog.UpdateService(c.Request.Context(), &svc); err != nil {
		logger.Error("Failed to update service", zap.String("serviceID", svc.ID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// SetServiceAvailabilityHandler enables or disables booking for a service.
// Admin only.
func (h *CatalogHandler) SetServiceAvailabilityHandler(c *gin.Context) {
	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	id := c.Param("id")
	if err := h.Catalog.SetAvailability(c.Request.Context(), id, *req.Available); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}
