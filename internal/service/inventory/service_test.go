package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
	"github.com/mahameru/inventory/internal/repository/memory"
)

func newTestService(t *testing.T, materials ...models.Material) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, m := range materials {
		if err := store.Materials().Create(context.Background(), m); err != nil {
			t.Fatalf("seed material: %v", err)
		}
	}
	return NewService(store.Materials(), store.Transactions(), store.StorageCosts(), nil), store
}

func testMaterial(id string, stock int) models.Material {
	return models.Material{
		ID:           id,
		Code:         "BB-" + id,
		Name:         "Material " + id,
		Unit:         "Meter",
		CurrentStock: stock,
		UnitPrice:    35000,
		OrderingCost: 150000,
		CreatedAt:    date(2024, 1, 1),
	}
}

func seedStock(t *testing.T, svc *Service, materialID string, qty int) {
	t.Helper()
	_, err := svc.RecordReceipt(context.Background(), ReceiptInput{
		Date:           date(2024, 1, 2),
		DocumentNumber: "SEED-1",
		MaterialID:     materialID,
		Quantity:       qty,
		OrderDate:      date(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

func TestRecordReceipt(t *testing.T) {
	svc, store := newTestService(t, testMaterial("mat-1", 0))
	ctx := context.Background()
	seedStock(t, svc, "mat-1", 100)

	rcv, err := svc.RecordReceipt(ctx, ReceiptInput{
		Date:           date(2024, 3, 6),
		DocumentNumber: "RCV-001",
		MaterialID:     "mat-1",
		Quantity:       50,
		Supplier:       "CV Sumber Kain",
		OrderDate:      date(2024, 3, 1),
		OrderingCost:   120000,
	})
	if err != nil {
		t.Fatalf("RecordReceipt: %v", err)
	}

	if rcv.LeadTimeDays != 5 {
		t.Errorf("LeadTimeDays = %d, want 5", rcv.LeadTimeDays)
	}

	material, err := store.Materials().GetByID(ctx, "mat-1")
	if err != nil {
		t.Fatalf("reload material: %v", err)
	}
	if material.CurrentStock != 150 {
		t.Errorf("CurrentStock = %d, want 150", material.CurrentStock)
	}

	receipts, err := store.Transactions().ListReceipts(ctx)
	if err != nil {
		t.Fatalf("list receipts: %v", err)
	}
	if len(receipts) != 2 { // seed receipt plus the one under test
		t.Fatalf("receipt count = %d, want 2", len(receipts))
	}
	if receipts[1].OrderingCost != 120000 {
		t.Errorf("OrderingCost = %v, want 120000", receipts[1].OrderingCost)
	}
}

func TestRecordReceiptClampsNegativeLeadTime(t *testing.T) {
	svc, _ := newTestService(t, testMaterial("mat-1", 0))

	rcv, err := svc.RecordReceipt(context.Background(), ReceiptInput{
		Date:           date(2024, 3, 1),
		DocumentNumber: "RCV-002",
		MaterialID:     "mat-1",
		Quantity:       10,
		OrderDate:      date(2024, 3, 9), // order logged after arrival
	})
	if err != nil {
		t.Fatalf("RecordReceipt: %v", err)
	}
	if rcv.LeadTimeDays != 0 {
		t.Errorf("LeadTimeDays = %d, want 0", rcv.LeadTimeDays)
	}
}

func TestRecordReceiptDefaultsOrderingCost(t *testing.T) {
	svc, _ := newTestService(t, testMaterial("mat-1", 0))

	rcv, err := svc.RecordReceipt(context.Background(), ReceiptInput{
		Date:           date(2024, 3, 6),
		DocumentNumber: "RCV-003",
		MaterialID:     "mat-1",
		Quantity:       10,
		OrderDate:      date(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("RecordReceipt: %v", err)
	}
	if rcv.OrderingCost != 150000 {
		t.Errorf("OrderingCost = %v, want material default 150000", rcv.OrderingCost)
	}
}

func TestRecordReceiptUnknownMaterial(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordReceipt(context.Background(), ReceiptInput{
		Date:           date(2024, 3, 6),
		DocumentNumber: "RCV-004",
		MaterialID:     "missing",
		Quantity:       10,
		OrderDate:      date(2024, 3, 1),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRecordIssuance(t *testing.T) {
	svc, store := newTestService(t, testMaterial("mat-1", 0))
	ctx := context.Background()
	seedStock(t, svc, "mat-1", 50)

	_, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date:           date(2024, 3, 10),
		DocumentNumber: "ISS-001",
		MaterialID:     "mat-1",
		Quantity:       30,
		Destination:    "Produksi Kaos",
	})
	if err != nil {
		t.Fatalf("RecordIssuance: %v", err)
	}

	material, _ := store.Materials().GetByID(ctx, "mat-1")
	if material.CurrentStock != 20 {
		t.Errorf("CurrentStock = %d, want 20", material.CurrentStock)
	}
}

func TestRecordIssuanceInsufficientStock(t *testing.T) {
	svc, store := newTestService(t, testMaterial("mat-1", 0))
	ctx := context.Background()
	seedStock(t, svc, "mat-1", 20)

	_, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date:           date(2024, 3, 10),
		DocumentNumber: "ISS-002",
		MaterialID:     "mat-1",
		Quantity:       30,
	})
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	material, _ := store.Materials().GetByID(ctx, "mat-1")
	if material.CurrentStock != 20 {
		t.Errorf("CurrentStock = %d, want unchanged 20", material.CurrentStock)
	}
	issuances, _ := store.Transactions().ListIssuances(ctx)
	if len(issuances) != 0 {
		t.Errorf("issuance count = %d, want 0", len(issuances))
	}
}

func TestRecordIssuanceExactStock(t *testing.T) {
	svc, store := newTestService(t, testMaterial("mat-1", 0))
	ctx := context.Background()
	seedStock(t, svc, "mat-1", 25)

	_, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date:           date(2024, 3, 10),
		DocumentNumber: "ISS-003",
		MaterialID:     "mat-1",
		Quantity:       25,
	})
	if err != nil {
		t.Fatalf("RecordIssuance: %v", err)
	}

	material, _ := store.Materials().GetByID(ctx, "mat-1")
	if material.CurrentStock != 0 {
		t.Errorf("CurrentStock = %d, want 0", material.CurrentStock)
	}
}

func TestRecordIssuanceRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t, testMaterial("mat-1", 10))

	for _, qty := range []int{0, -5} {
		_, err := svc.RecordIssuance(context.Background(), IssuanceInput{
			Date:           date(2024, 3, 10),
			DocumentNumber: "ISS-004",
			MaterialID:     "mat-1",
			Quantity:       qty,
		})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("qty %d: err = %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestStockInvariantAfterMixedTransactions(t *testing.T) {
	svc, store := newTestService(t, testMaterial("mat-1", 0))
	ctx := context.Background()

	moves := []struct {
		in  bool
		qty int
		day time.Time
	}{
		{true, 100, date(2024, 3, 1)},
		{false, 40, date(2024, 3, 3)},
		{true, 25, date(2024, 3, 5)},
		{false, 10, date(2024, 3, 8)},
	}

	for _, mv := range moves {
		var err error
		if mv.in {
			_, err = svc.RecordReceipt(ctx, ReceiptInput{
				Date: mv.day, DocumentNumber: "DOC", MaterialID: "mat-1",
				Quantity: mv.qty, OrderDate: mv.day.AddDate(0, 0, -3),
			})
		} else {
			_, err = svc.RecordIssuance(ctx, IssuanceInput{
				Date: mv.day, DocumentNumber: "DOC", MaterialID: "mat-1", Quantity: mv.qty,
			})
		}
		if err != nil {
			t.Fatalf("transaction on %s: %v", mv.day.Format("2006-01-02"), err)
		}
	}

	material, _ := store.Materials().GetByID(ctx, "mat-1")

	receipts, _ := store.Transactions().ListReceipts(ctx)
	issuances, _ := store.Transactions().ListIssuances(ctx)
	var derived int
	for _, r := range receipts {
		derived += r.Quantity
	}
	for _, iss := range issuances {
		derived -= iss.Quantity
	}

	if material.CurrentStock != derived {
		t.Errorf("stored stock %d diverged from derived %d", material.CurrentStock, derived)
	}
	if material.CurrentStock != 75 {
		t.Errorf("CurrentStock = %d, want 75", material.CurrentStock)
	}
}

func TestLowStock(t *testing.T) {
	svc, _ := newTestService(t,
		testMaterial("mat-1", 0),
		testMaterial("mat-2", 0),
	)
	ctx := context.Background()

	// mat-1: consume fast so ROP exceeds remaining stock.
	seedStock(t, svc, "mat-1", 100)
	if _, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date: date(2024, 3, 1), DocumentNumber: "ISS", MaterialID: "mat-1", Quantity: 90,
	}); err != nil {
		t.Fatalf("issue mat-1: %v", err)
	}

	// mat-2: plenty of stock, slow consumption over a long span.
	seedStock(t, svc, "mat-2", 1000)
	if _, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date: date(2024, 1, 1), DocumentNumber: "ISS", MaterialID: "mat-2", Quantity: 1,
	}); err != nil {
		t.Fatalf("issue mat-2 first: %v", err)
	}
	if _, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date: date(2024, 4, 10), DocumentNumber: "ISS", MaterialID: "mat-2", Quantity: 1,
	}); err != nil {
		t.Fatalf("issue mat-2 second: %v", err)
	}

	items, err := svc.LowStock(ctx)
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("low stock items = %d, want 1", len(items))
	}
	if items[0].Material.ID != "mat-1" {
		t.Errorf("low stock material = %s, want mat-1", items[0].Material.ID)
	}
	if items[0].Material.CurrentStock > items[0].ReorderPoint {
		t.Errorf("stock %d above ROP %d should not be flagged",
			items[0].Material.CurrentStock, items[0].ReorderPoint)
	}
}

func TestMetricsBundle(t *testing.T) {
	svc, store := newTestService(t, testMaterial("mat-1", 0))
	ctx := context.Background()

	if _, err := svc.RecordReceipt(ctx, ReceiptInput{
		Date: date(2024, 1, 6), DocumentNumber: "RCV", MaterialID: "mat-1",
		Quantity: 200, OrderDate: date(2024, 1, 3), OrderingCost: 150000,
	}); err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if _, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date: date(2024, 2, 1), DocumentNumber: "ISS", MaterialID: "mat-1", Quantity: 14,
	}); err != nil {
		t.Fatalf("issuance: %v", err)
	}
	if _, err := svc.RecordIssuance(ctx, IssuanceInput{
		Date: date(2024, 2, 11), DocumentNumber: "ISS", MaterialID: "mat-1", Quantity: 6,
	}); err != nil {
		t.Fatalf("issuance: %v", err)
	}
	if err := store.StorageCosts().Create(ctx, models.StorageCost{
		ID: "sc-1", MaterialID: "mat-1", CostPerUnit: 2500,
		Period: "2024", CreatedAt: date(2024, 1, 1),
	}); err != nil {
		t.Fatalf("storage cost: %v", err)
	}

	m, err := svc.Metrics(ctx, "mat-1")
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}

	// Demand 2/day, lead time 3 => ROP 6; D=730, S=150000, H=2500 => EOQ 296.
	if m.ReorderPoint != 6 {
		t.Errorf("ReorderPoint = %d, want 6", m.ReorderPoint)
	}
	if m.EOQ != 296 {
		t.Errorf("EOQ = %d, want 296", m.EOQ)
	}
	if m.Stats.TotalIssued != 20 || m.Stats.TotalReceived != 200 {
		t.Errorf("totals = %d/%d, want 20/200", m.Stats.TotalIssued, m.Stats.TotalReceived)
	}
}
