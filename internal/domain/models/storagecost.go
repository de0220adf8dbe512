package models

import "time"

// StorageCost is a per-period holding cost record for one material. A
// material may carry several (one per period label); the calculation engine
// treats the most recently created record as current.
type StorageCost struct {
	ID          string    `bson:"_id" json:"id"`
	MaterialID  string    `bson:"material_id" json:"materialId"`
	CostPerUnit float64   `bson:"cost_per_unit" json:"costPerUnit"`
	Period      string    `bson:"period" json:"period"`
	Note        string    `bson:"note" json:"note"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
