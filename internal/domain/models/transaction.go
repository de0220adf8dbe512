package models

import "time"

// Receipt records an incoming delivery of a material. Receipts are
// append-only; once written they are never updated.
type Receipt struct {
	ID             string    `bson:"_id" json:"id"`
	Date           time.Time `bson:"date" json:"date"`
	DocumentNumber string    `bson:"document_number" json:"documentNumber"`
	MaterialID     string    `bson:"material_id" json:"materialId"`
	Quantity       int       `bson:"quantity" json:"quantity"`
	Supplier       string    `bson:"supplier" json:"supplier"`
	// LeadTimeDays is computed when the receipt is recorded:
	// max(0, ceil(Date - OrderDate in days)).
	LeadTimeDays int       `bson:"lead_time_days" json:"leadTimeDays"`
	OrderDate    time.Time `bson:"order_date" json:"orderDate"`
	OrderingCost float64   `bson:"ordering_cost" json:"orderingCost"`
	Note         string    `bson:"note" json:"note"`
}

// Issuance records an outgoing movement of a material. Append-only.
type Issuance struct {
	ID             string    `bson:"_id" json:"id"`
	Date           time.Time `bson:"date" json:"date"`
	DocumentNumber string    `bson:"document_number" json:"documentNumber"`
	MaterialID     string    `bson:"material_id" json:"materialId"`
	Quantity       int       `bson:"quantity" json:"quantity"`
	Destination    string    `bson:"destination" json:"destination"`
	Note           string    `bson:"note" json:"note"`
}
