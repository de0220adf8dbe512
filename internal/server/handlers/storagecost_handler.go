package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
)

// StorageCostHandler covers storage-cost record CRUD.
type StorageCostHandler struct {
	materials    repository.MaterialRepository
	storageCosts repository.StorageCostRepository
	logger       *zap.Logger
}

// NewStorageCostHandler constructs the storage-cost HTTP adapter.
func NewStorageCostHandler(materials repository.MaterialRepository, storageCosts repository.StorageCostRepository, logger *zap.Logger) *StorageCostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageCostHandler{materials: materials, storageCosts: storageCosts, logger: logger}
}

type storageCostRequest struct {
	MaterialID  string  `json:"materialId" binding:"required"`
	CostPerUnit float64 `json:"costPerUnit"`
	Period      string  `json:"period" binding:"required"`
	Note        string  `json:"note"`
}

// List returns the full storage-cost collection.
func (h *StorageCostHandler) List(c *gin.Context) {
	items, err := h.storageCosts.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing storage costs", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create adds a storage-cost record for a material. The newest record per
// material becomes the holding cost used by the EOQ calculation.
func (h *StorageCostHandler) Create(c *gin.Context) {
	var req storageCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid storage cost payload"})
		return
	}

	// Reject records pointing at a material that does not exist.
	if _, err := h.materials.GetByID(c.Request.Context(), req.MaterialID); err != nil {
		writeError(c, err)
		return
	}

	now := time.Now()
	sc := models.StorageCost{
		ID:          uuid.New().String(),
		MaterialID:  req.MaterialID,
		CostPerUnit: req.CostPerUnit,
		Period:      req.Period,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.storageCosts.Create(c.Request.Context(), sc); err != nil {
		h.logger.Error("failed creating storage cost", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sc)
}

// Update edits an existing storage-cost record.
func (h *StorageCostHandler) Update(c *gin.Context) {
	var req storageCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid storage cost payload"})
		return
	}

	sc := models.StorageCost{
		ID:          c.Param("id"),
		MaterialID:  req.MaterialID,
		CostPerUnit: req.CostPerUnit,
		Period:      req.Period,
		Note:        req.Note,
		UpdatedAt:   time.Now(),
	}

	if err := h.storageCosts.Update(c.Request.Context(), sc); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sc)
}

// Delete removes a storage-cost record.
func (h *StorageCostHandler) Delete(c *gin.Context) {
	if err := h.storageCosts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
