package inventory

import (
	"testing"
	"time"

	"github.com/mahameru/inventory/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func issuance(materialID string, day time.Time, qty int) models.Issuance {
	return models.Issuance{ID: "iss-" + day.Format("20060102"), MaterialID: materialID, Date: day, Quantity: qty}
}

func receipt(materialID string, day time.Time, qty, leadTime int, orderingCost float64) models.Receipt {
	return models.Receipt{
		ID: "rcv-" + day.Format("20060102"), MaterialID: materialID, Date: day,
		Quantity: qty, LeadTimeDays: leadTime, OrderingCost: orderingCost,
	}
}

func TestAverageDailyDemand(t *testing.T) {
	tests := []struct {
		name      string
		issuances []models.Issuance
		want      float64
	}{
		{
			name:      "no issuances",
			issuances: nil,
			want:      0,
		},
		{
			name: "only other materials",
			issuances: []models.Issuance{
				issuance("other", date(2024, 3, 1), 40),
			},
			want: 0,
		},
		{
			name: "same day span clamps to one",
			issuances: []models.Issuance{
				issuance("mat-1", date(2024, 3, 1), 10),
				issuance("mat-1", date(2024, 3, 1), 5),
			},
			want: 15,
		},
		{
			name: "spread over ten days",
			issuances: []models.Issuance{
				issuance("mat-1", date(2024, 3, 1), 30),
				issuance("mat-1", date(2024, 3, 11), 20),
			},
			want: 5, // 50 units over a 10 day span
		},
		{
			name: "ignores other materials in the mix",
			issuances: []models.Issuance{
				issuance("mat-1", date(2024, 3, 1), 10),
				issuance("other", date(2024, 3, 2), 99),
				issuance("mat-1", date(2024, 3, 5), 10),
			},
			want: 5, // 20 units over 4 days
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageDailyDemand("mat-1", tt.issuances)
			if got != tt.want {
				t.Errorf("AverageDailyDemand() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageLeadTime(t *testing.T) {
	t.Run("defaults to seven days without history", func(t *testing.T) {
		if got := AverageLeadTime("mat-1", nil); got != 7 {
			t.Errorf("AverageLeadTime() = %v, want 7", got)
		}
	})

	t.Run("mean of recorded lead times", func(t *testing.T) {
		receipts := []models.Receipt{
			receipt("mat-1", date(2024, 3, 1), 10, 4, 0),
			receipt("mat-1", date(2024, 3, 8), 10, 6, 0),
			receipt("other", date(2024, 3, 9), 10, 100, 0),
		}
		if got := AverageLeadTime("mat-1", receipts); got != 5 {
			t.Errorf("AverageLeadTime() = %v, want 5", got)
		}
	})
}

func TestReorderPoint(t *testing.T) {
	// Demand 12.5/day (50 units over 4 days), lead time 6.0 => ceil(75.0) = 75.
	receipts := []models.Receipt{
		receipt("mat-1", date(2024, 2, 1), 10, 5, 0),
		receipt("mat-1", date(2024, 2, 10), 10, 7, 0),
	}
	issuances := []models.Issuance{
		issuance("mat-1", date(2024, 3, 1), 25),
		issuance("mat-1", date(2024, 3, 5), 25),
	}

	if got := ReorderPoint("mat-1", receipts, issuances); got != 75 {
		t.Errorf("ReorderPoint() = %d, want 75", got)
	}

	t.Run("no history still non-negative", func(t *testing.T) {
		if got := ReorderPoint("mat-1", nil, nil); got != 0 {
			t.Errorf("ReorderPoint() = %d, want 0", got)
		}
	})
}

func TestEconomicOrderQuantity(t *testing.T) {
	// Two units a day over the span yields D = 2 * 365 = 730.
	demand := []models.Issuance{
		issuance("mat-1", date(2024, 1, 1), 14),
		issuance("mat-1", date(2024, 1, 11), 6),
	}
	receipts := []models.Receipt{
		receipt("mat-1", date(2024, 1, 5), 50, 3, 150000),
	}
	costs := []models.StorageCost{
		{ID: "sc-1", MaterialID: "mat-1", CostPerUnit: 2500, CreatedAt: date(2024, 1, 1)},
	}

	t.Run("textbook figures", func(t *testing.T) {
		// ceil(sqrt(2*730*150000/2500)) = ceil(sqrt(87600)) = 296.
		if got := EconomicOrderQuantity("mat-1", receipts, demand, costs); got != 296 {
			t.Errorf("EconomicOrderQuantity() = %d, want 296", got)
		}
	})

	t.Run("zero demand", func(t *testing.T) {
		if got := EconomicOrderQuantity("mat-1", receipts, nil, costs); got != 0 {
			t.Errorf("EconomicOrderQuantity() = %d, want 0", got)
		}
	})

	t.Run("no receipt", func(t *testing.T) {
		if got := EconomicOrderQuantity("mat-1", nil, demand, costs); got != 0 {
			t.Errorf("EconomicOrderQuantity() = %d, want 0", got)
		}
	})

	t.Run("no storage cost record", func(t *testing.T) {
		if got := EconomicOrderQuantity("mat-1", receipts, demand, nil); got != 0 {
			t.Errorf("EconomicOrderQuantity() = %d, want 0", got)
		}
	})

	t.Run("zero holding cost", func(t *testing.T) {
		zeroCosts := []models.StorageCost{
			{ID: "sc-z", MaterialID: "mat-1", CostPerUnit: 0, CreatedAt: date(2024, 2, 1)},
		}
		if got := EconomicOrderQuantity("mat-1", receipts, demand, zeroCosts); got != 0 {
			t.Errorf("EconomicOrderQuantity() = %d, want 0", got)
		}
	})

	t.Run("ordering cost from latest receipt", func(t *testing.T) {
		withNewer := append([]models.Receipt{}, receipts...)
		withNewer = append(withNewer, receipt("mat-1", date(2024, 2, 1), 50, 3, 600000))
		// ceil(sqrt(2*730*600000/2500)) = ceil(sqrt(350400)) = ceil(591.94) = 592.
		if got := EconomicOrderQuantity("mat-1", withNewer, demand, costs); got != 592 {
			t.Errorf("EconomicOrderQuantity() = %d, want 592", got)
		}
	})

	t.Run("holding cost from latest storage cost record", func(t *testing.T) {
		withNewer := append([]models.StorageCost{}, costs...)
		withNewer = append(withNewer, models.StorageCost{
			ID: "sc-2", MaterialID: "mat-1", CostPerUnit: 10000, CreatedAt: date(2024, 2, 1),
		})
		// ceil(sqrt(2*730*150000/10000)) = ceil(sqrt(21900)) = ceil(147.98) = 148.
		if got := EconomicOrderQuantity("mat-1", receipts, demand, withNewer); got != 148 {
			t.Errorf("EconomicOrderQuantity() = %d, want 148", got)
		}
	})

	t.Run("date tie broken by append order", func(t *testing.T) {
		tied := []models.Receipt{
			receipt("mat-1", date(2024, 1, 5), 50, 3, 150000),
			receipt("mat-1", date(2024, 1, 5), 50, 3, 600000),
		}
		if got := EconomicOrderQuantity("mat-1", tied, demand, costs); got != 592 {
			t.Errorf("EconomicOrderQuantity() = %d, want 592 (later record wins)", got)
		}
	})
}

func TestMetricsArePure(t *testing.T) {
	receipts := []models.Receipt{
		receipt("mat-1", date(2024, 1, 5), 50, 3, 150000),
	}
	issuances := []models.Issuance{
		issuance("mat-1", date(2024, 1, 1), 20),
		issuance("mat-1", date(2024, 1, 11), 10),
	}
	costs := []models.StorageCost{
		{ID: "sc-1", MaterialID: "mat-1", CostPerUnit: 2500, CreatedAt: date(2024, 1, 1)},
	}

	first := EconomicOrderQuantity("mat-1", receipts, issuances, costs)
	second := EconomicOrderQuantity("mat-1", receipts, issuances, costs)
	if first != second {
		t.Errorf("EOQ changed between identical calls: %d then %d", first, second)
	}

	if a, b := ReorderPoint("mat-1", receipts, issuances), ReorderPoint("mat-1", receipts, issuances); a != b {
		t.Errorf("ROP changed between identical calls: %d then %d", a, b)
	}
}

func TestUsageStats(t *testing.T) {
	receipts := []models.Receipt{
		receipt("mat-1", date(2024, 2, 1), 40, 4, 0),
		receipt("mat-1", date(2024, 2, 10), 60, 6, 0),
		receipt("other", date(2024, 2, 11), 10, 2, 0),
	}
	issuances := []models.Issuance{
		issuance("mat-1", date(2024, 3, 1), 25),
		issuance("mat-1", date(2024, 3, 5), 25),
	}

	stats := UsageStats("mat-1", receipts, issuances)

	if stats.AvgDailyDemand != "12.50" {
		t.Errorf("AvgDailyDemand = %q, want %q", stats.AvgDailyDemand, "12.50")
	}
	if stats.AvgLeadTime != "5.0" {
		t.Errorf("AvgLeadTime = %q, want %q", stats.AvgLeadTime, "5.0")
	}
	if stats.ReorderPoint != 63 { // ceil(12.5 * 5.0)
		t.Errorf("ReorderPoint = %d, want 63", stats.ReorderPoint)
	}
	if stats.TotalReceived != 100 {
		t.Errorf("TotalReceived = %d, want 100", stats.TotalReceived)
	}
	if stats.TotalIssued != 50 {
		t.Errorf("TotalIssued = %d, want 50", stats.TotalIssued)
	}
	if stats.ReceiptCount != 2 || stats.IssuanceCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", stats.ReceiptCount, stats.IssuanceCount)
	}
}

func TestLeadTimeDays(t *testing.T) {
	tests := []struct {
		name     string
		ordered  time.Time
		received time.Time
		want     int
	}{
		{"five days", date(2024, 3, 1), date(2024, 3, 6), 5},
		{"same day", date(2024, 3, 1), date(2024, 3, 1), 0},
		{"received before ordered clamps to zero", date(2024, 3, 6), date(2024, 3, 1), 0},
		{"partial day rounds up", date(2024, 3, 1), time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeadTimeDays(tt.ordered, tt.received); got != tt.want {
				t.Errorf("LeadTimeDays() = %d, want %d", got, tt.want)
			}
		})
	}
}
