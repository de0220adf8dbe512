package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
)

// ErrInvalidQuantity rejects transactions with a zero or negative quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Service is the inventory engine: it loads collections from the record
// store, feeds them to the metric functions, and records stock
// transactions.
type Service struct {
	materials    repository.MaterialRepository
	transactions repository.TransactionRepository
	storageCosts repository.StorageCostRepository
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

// NewService wires the engine with its record-store dependencies.
func NewService(
	materials repository.MaterialRepository,
	transactions repository.TransactionRepository,
	storageCosts repository.StorageCostRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		materials:    materials,
		transactions: transactions,
		storageCosts: storageCosts,
		logger:       logger,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
}

// ReceiptInput is the form payload for recording an incoming delivery.
type ReceiptInput struct {
	Date           time.Time `json:"date" binding:"required"`
	DocumentNumber string    `json:"documentNumber" binding:"required"`
	MaterialID     string    `json:"materialId" binding:"required"`
	Quantity       int       `json:"quantity" binding:"required"`
	Supplier       string    `json:"supplier"`
	OrderDate      time.Time `json:"orderDate" binding:"required"`
	OrderingCost   float64   `json:"orderingCost"`
	Note           string    `json:"note"`
}

// IssuanceInput is the form payload for recording an outgoing movement.
type IssuanceInput struct {
	Date           time.Time `json:"date" binding:"required"`
	DocumentNumber string    `json:"documentNumber" binding:"required"`
	MaterialID     string    `json:"materialId" binding:"required"`
	Quantity       int       `json:"quantity" binding:"required"`
	Destination    string    `json:"destination"`
	Note           string    `json:"note"`
}

// RecordReceipt appends a receipt and increments the material's stock. The
// receipt's lead time is derived here from the order and arrival dates. An
// omitted ordering cost falls back to the material's configured default.
func (s *Service) RecordReceipt(ctx context.Context, in ReceiptInput) (*models.Receipt, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	material, err := s.materials.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}

	orderingCost := in.OrderingCost
	if orderingCost <= 0 {
		orderingCost = material.OrderingCost
	}

	receipt := models.Receipt{
		ID:             s.newID(),
		Date:           in.Date,
		DocumentNumber: in.DocumentNumber,
		MaterialID:     in.MaterialID,
		Quantity:       in.Quantity,
		Supplier:       in.Supplier,
		LeadTimeDays:   LeadTimeDays(in.OrderDate, in.Date),
		OrderDate:      in.OrderDate,
		OrderingCost:   orderingCost,
		Note:           in.Note,
	}

	if err := s.transactions.AppendReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("record receipt: %w", err)
	}

	s.logger.Info("receipt recorded",
		zap.String("material_code", material.Code),
		zap.Int("quantity", receipt.Quantity),
		zap.Int("lead_time_days", receipt.LeadTimeDays))

	return &receipt, nil
}

// RecordIssuance appends an issuance and decrements the material's stock.
// Issuing more than the current stock is rejected before anything is
// written; the repository enforces the same guard atomically.
func (s *Service) RecordIssuance(ctx context.Context, in IssuanceInput) (*models.Issuance, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	material, err := s.materials.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material.CurrentStock < in.Quantity {
		return nil, repository.ErrInsufficientStock
	}

	issuance := models.Issuance{
		ID:             s.newID(),
		Date:           in.Date,
		DocumentNumber: in.DocumentNumber,
		MaterialID:     in.MaterialID,
		Quantity:       in.Quantity,
		Destination:    in.Destination,
		Note:           in.Note,
	}

	if err := s.transactions.AppendIssuance(ctx, issuance); err != nil {
		return nil, fmt.Errorf("record issuance: %w", err)
	}

	s.logger.Info("issuance recorded",
		zap.String("material_code", material.Code),
		zap.Int("quantity", issuance.Quantity),
		zap.String("destination", issuance.Destination))

	return &issuance, nil
}

// MaterialMetrics carries the calculation screen's figures for a material.
type MaterialMetrics struct {
	Material     models.Material `json:"material"`
	ReorderPoint int             `json:"reorderPoint"`
	EOQ          int             `json:"eoq"`
	Stats        Stats           `json:"stats"`
}

// Metrics loads the full collections and computes ROP, EOQ and usage
// statistics for one material.
func (s *Service) Metrics(ctx context.Context, materialID string) (*MaterialMetrics, error) {
	material, err := s.materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.transactions.ListReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load receipts: %w", err)
	}
	issuances, err := s.transactions.ListIssuances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load issuances: %w", err)
	}
	costs, err := s.storageCosts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load storage costs: %w", err)
	}

	return &MaterialMetrics{
		Material:     *material,
		ReorderPoint: ReorderPoint(materialID, receipts, issuances),
		EOQ:          EconomicOrderQuantity(materialID, receipts, issuances, costs),
		Stats:        UsageStats(materialID, receipts, issuances),
	}, nil
}

// LowStockItem pairs a material with its computed reorder point.
type LowStockItem struct {
	Material     models.Material `json:"material"`
	ReorderPoint int             `json:"reorderPoint"`
}

// LowStock returns every material whose current stock is at or below its
// reorder point.
func (s *Service) LowStock(ctx context.Context) ([]LowStockItem, error) {
	materials, err := s.materials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	receipts, err := s.transactions.ListReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load receipts: %w", err)
	}
	issuances, err := s.transactions.ListIssuances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load issuances: %w", err)
	}

	items := []LowStockItem{}
	for _, m := range materials {
		rop := ReorderPoint(m.ID, receipts, issuances)
		if m.CurrentStock <= rop {
			items = append(items, LowStockItem{Material: m, ReorderPoint: rop})
		}
	}
	return items, nil
}
