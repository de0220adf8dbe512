package inventory

import (
	"fmt"
	"math"
	"time"

	"github.com/mahameru/inventory/internal/domain/models"
)

// defaultLeadTimeDays is assumed for materials without any receipt history,
// so the reorder point does not collapse to zero just because no deliveries
// have been logged yet.
const defaultLeadTimeDays = 7.0

// daysPerYear converts the daily demand rate into annual demand for EOQ.
const daysPerYear = 365

// AverageDailyDemand estimates the consumption rate of a material from its
// issuance history: total issued quantity divided by the day span between
// the earliest and latest issuance. A single day's transactions count as a
// one-day span, so they overstate the rate until more history accumulates.
// No issuances for the material yields 0.
func AverageDailyDemand(materialID string, issuances []models.Issuance) float64 {
	var total int
	var earliest, latest time.Time
	found := false

	for _, iss := range issuances {
		if iss.MaterialID != materialID {
			continue
		}
		total += iss.Quantity
		if !found || iss.Date.Before(earliest) {
			earliest = iss.Date
		}
		if !found || iss.Date.After(latest) {
			latest = iss.Date
		}
		found = true
	}

	if !found {
		return 0
	}

	span := daySpan(earliest, latest)
	return float64(total) / float64(span)
}

// AverageLeadTime returns the arithmetic mean of the lead times recorded on
// the material's receipts, in days. Materials with no receipt history get
// the policy default of 7 days.
func AverageLeadTime(materialID string, receipts []models.Receipt) float64 {
	var total, count int
	for _, r := range receipts {
		if r.MaterialID != materialID {
			continue
		}
		total += r.LeadTimeDays
		count++
	}

	if count == 0 {
		return defaultLeadTimeDays
	}
	return float64(total) / float64(count)
}

// ReorderPoint is the stock level at which a new order must be placed so it
// arrives before stock depletes: ceil(average daily demand x average lead
// time). Always a non-negative integer.
func ReorderPoint(materialID string, receipts []models.Receipt, issuances []models.Issuance) int {
	demand := AverageDailyDemand(materialID, issuances)
	leadTime := AverageLeadTime(materialID, receipts)
	return int(math.Ceil(demand * leadTime))
}

// EconomicOrderQuantity computes ceil(sqrt((2 x D x S) / H)) where D is the
// annual demand, S the ordering cost of the latest receipt and H the
// holding cost of the latest storage-cost record. Ordering and holding
// costs change over time, so both are read from the most recent
// transactional record rather than the material master.
//
// Degenerate data returns 0 instead of failing: no demand history, no
// receipt (S unknown), no storage-cost record (H unknown), or H = 0.
func EconomicOrderQuantity(materialID string, receipts []models.Receipt, issuances []models.Issuance, costs []models.StorageCost) int {
	annualDemand := AverageDailyDemand(materialID, issuances) * daysPerYear
	if annualDemand == 0 {
		return 0
	}

	latest := latestReceipt(materialID, receipts)
	if latest == nil {
		return 0
	}
	orderingCost := latest.OrderingCost

	cost := latestStorageCost(materialID, costs)
	if cost == nil {
		return 0
	}
	holdingCost := cost.CostPerUnit
	if holdingCost == 0 {
		return 0
	}

	eoq := math.Sqrt((2 * annualDemand * orderingCost) / holdingCost)
	return int(math.Ceil(eoq))
}

// Stats bundles the per-material usage figures shown on the calculation
// screen. The demand and lead-time averages are pre-formatted the way the
// presentation layer displays them.
type Stats struct {
	AvgDailyDemand string `json:"avgDailyDemand"`
	AvgLeadTime    string `json:"avgLeadTime"`
	ReorderPoint   int    `json:"reorderPoint"`
	TotalReceived  int    `json:"totalReceived"`
	TotalIssued    int    `json:"totalIssued"`
	ReceiptCount   int    `json:"receiptCount"`
	IssuanceCount  int    `json:"issuanceCount"`
}

// UsageStats aggregates receipt and issuance history for one material.
func UsageStats(materialID string, receipts []models.Receipt, issuances []models.Issuance) Stats {
	stats := Stats{
		AvgDailyDemand: fmt.Sprintf("%.2f", AverageDailyDemand(materialID, issuances)),
		AvgLeadTime:    fmt.Sprintf("%.1f", AverageLeadTime(materialID, receipts)),
		ReorderPoint:   ReorderPoint(materialID, receipts, issuances),
	}

	for _, r := range receipts {
		if r.MaterialID == materialID {
			stats.TotalReceived += r.Quantity
			stats.ReceiptCount++
		}
	}
	for _, iss := range issuances {
		if iss.MaterialID == materialID {
			stats.TotalIssued += iss.Quantity
			stats.IssuanceCount++
		}
	}

	return stats
}

// LeadTimeDays derives a receipt's lead time from its order and arrival
// dates. Partial days round up; a negative difference clamps to 0.
func LeadTimeDays(orderDate, receivedDate time.Time) int {
	days := int(math.Ceil(receivedDate.Sub(orderDate).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// daySpan is the inclusive day count between two dates, rounded up and
// never less than one.
func daySpan(earliest, latest time.Time) int {
	span := int(math.Ceil(latest.Sub(earliest).Hours() / 24))
	if span < 1 {
		return 1
	}
	return span
}

// latestReceipt picks the material's most recent receipt by transaction
// date; on equal dates the most recently appended record wins.
func latestReceipt(materialID string, receipts []models.Receipt) *models.Receipt {
	var best *models.Receipt
	for i := range receipts {
		r := &receipts[i]
		if r.MaterialID != materialID {
			continue
		}
		if best == nil || !r.Date.Before(best.Date) {
			best = r
		}
	}
	return best
}

// latestStorageCost picks the material's most recent storage-cost record by
// creation time; on equal timestamps the most recently appended wins.
func latestStorageCost(materialID string, costs []models.StorageCost) *models.StorageCost {
	var best *models.StorageCost
	for i := range costs {
		sc := &costs[i]
		if sc.MaterialID != materialID {
			continue
		}
		if best == nil || !sc.CreatedAt.Before(best.CreatedAt) {
			best = sc
		}
	}
	return best
}
