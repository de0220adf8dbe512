// Package reporting produces the dashboard summary and the downloadable CSV
// reports from the record collections.
package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/repository"
	"github.com/mahameru/inventory/internal/service/inventory"
)

const dateLayout = "2006-01-02"

// Service exposes read-only aggregations for the dashboard and reports.
type Service struct {
	materials    repository.MaterialRepository
	transactions repository.TransactionRepository
	storageCosts repository.StorageCostRepository
	logger       *zap.Logger
}

// NewService wires a new reporting service instance.
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
	}
}

// DashboardSummary is the landing-page aggregate.
type DashboardSummary struct {
	TotalMaterials  int                      `json:"totalMaterials"`
	TotalStockValue float64                  `json:"totalStockValue"`
	ItemsBelowROP   int                      `json:"itemsBelowRop"`
	LowStockItems   []inventory.LowStockItem `json:"lowStockItems"`
}

// Dashboard computes material count, total stock value and the materials at
// or below their reorder point.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
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

	summary := &DashboardSummary{
		TotalMaterials: len(materials),
		LowStockItems:  []inventory.LowStockItem{},
	}

	for _, m := range materials {
		summary.TotalStockValue += float64(m.CurrentStock) * m.UnitPrice

		rop := inventory.ReorderPoint(m.ID, receipts, issuances)
		if m.CurrentStock <= rop {
			summary.LowStockItems = append(summary.LowStockItems,
				inventory.LowStockItem{Material: m, ReorderPoint: rop})
		}
	}
	summary.ItemsBelowROP = len(summary.LowStockItems)

	return summary, nil
}

// StockReportCSV renders the per-material stock report, including the
// computed ROP and EOQ columns shown on the calculation screen.
func (s *Service) StockReportCSV(ctx context.Context) ([]byte, error) {
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
	costs, err := s.storageCosts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load storage costs: %w", err)
	}

	rows := [][]string{{"code", "name", "unit", "current_stock", "unit_price", "stock_value", "rop", "eoq"}}
	for _, m := range materials {
		rows = append(rows, []string{
			m.Code,
			m.Name,
			m.Unit,
			strconv.Itoa(m.CurrentStock),
			formatMoney(m.UnitPrice),
			formatMoney(float64(m.CurrentStock) * m.UnitPrice),
			strconv.Itoa(inventory.ReorderPoint(m.ID, receipts, issuances)),
			strconv.Itoa(inventory.EconomicOrderQuantity(m.ID, receipts, issuances, costs)),
		})
	}

	return writeCSV(rows)
}

// ReceiptsReportCSV renders the receipt history with material codes
// resolved.
func (s *Service) ReceiptsReportCSV(ctx context.Context) ([]byte, error) {
	receipts, err := s.transactions.ListReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load receipts: %w", err)
	}
	names, err := s.materialNames(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"date", "document_number", "material", "quantity", "supplier", "lead_time_days", "order_date", "ordering_cost", "note"}}
	for _, r := range receipts {
		rows = append(rows, []string{
			r.Date.Format(dateLayout),
			r.DocumentNumber,
			names[r.MaterialID],
			strconv.Itoa(r.Quantity),
			r.Supplier,
			strconv.Itoa(r.LeadTimeDays),
			r.OrderDate.Format(dateLayout),
			formatMoney(r.OrderingCost),
			r.Note,
		})
	}

	return writeCSV(rows)
}

// IssuancesReportCSV renders the issuance history with material codes
// resolved.
func (s *Service) IssuancesReportCSV(ctx context.Context) ([]byte, error) {
	issuances, err := s.transactions.ListIssuances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load issuances: %w", err)
	}
	names, err := s.materialNames(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"date", "document_number", "material", "quantity", "destination", "note"}}
	for _, iss := range issuances {
		rows = append(rows, []string{
			iss.Date.Format(dateLayout),
			iss.DocumentNumber,
			names[iss.MaterialID],
			strconv.Itoa(iss.Quantity),
			iss.Destination,
			iss.Note,
		})
	}

	return writeCSV(rows)
}

// materialNames maps material IDs to "CODE - Name" labels for report rows.
// Transactions referencing a deleted material keep an empty label rather
// than failing the report.
func (s *Service) materialNames(ctx context.Context) (map[string]string, error) {
	materials, err := s.materials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}

	names := make(map[string]string, len(materials))
	for _, m := range materials {
		names[m.ID] = m.Code + " - " + m.Name
	}
	return names, nil
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
