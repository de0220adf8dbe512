package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
	"github.com/mahameru/inventory/internal/service/inventory"
)

// MaterialHandler covers material CRUD and the per-material metrics
// endpoint.
type MaterialHandler struct {
	materials repository.MaterialRepository
	invSvc    *inventory.Service
	logger    *zap.Logger
}

// NewMaterialHandler constructs the material HTTP adapter.
func NewMaterialHandler(materials repository.MaterialRepository, invSvc *inventory.Service, logger *zap.Logger) *MaterialHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialHandler{materials: materials, invSvc: invSvc, logger: logger}
}

type materialRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit" binding:"required"`
	UnitPrice    float64 `json:"unitPrice"`
	OrderingCost float64 `json:"orderingCost"`
}

// List returns the full materials collection.
func (h *MaterialHandler) List(c *gin.Context) {
	items, err := h.materials.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing materials", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create registers a new material with zero stock.
func (h *MaterialHandler) Create(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material payload"})
		return
	}

	material := models.Material{
		ID:           uuid.New().String(),
		Code:         req.Code,
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: 0,
		UnitPrice:    req.UnitPrice,
		OrderingCost: req.OrderingCost,
		CreatedAt:    time.Now(),
	}

	if err := h.materials.Create(c.Request.Context(), material); err != nil {
		h.logger.Error("failed creating material", zap.String("code", req.Code), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// Update edits a material's master fields. Stock is not editable here; it
// only moves through transactions.
func (h *MaterialHandler) Update(c *gin.Context) {
	var req materialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material payload"})
		return
	}

	material := models.Material{
		ID:           c.Param("id"),
		Code:         req.Code,
		Name:         req.Name,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		OrderingCost: req.OrderingCost,
	}

	if err := h.materials.Update(c.Request.Context(), material); err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.materials.GetByID(c.Request.Context(), material.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a material.
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.materials.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Metrics returns ROP, EOQ and the usage statistics for one material.
func (h *MaterialHandler) Metrics(c *gin.Context) {
	metrics, err := h.invSvc.Metrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
