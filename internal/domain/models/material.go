package models

import "time"

// Material is the master record for one raw material.
//
// CurrentStock is derived state: it always equals the sum of receipt
// quantities minus the sum of issuance quantities for this material, and is
// only ever written through the transaction repository.
type Material struct {
	ID           string    `bson:"_id" json:"id"`
	Code         string    `bson:"code" json:"code"`
	Name         string    `bson:"name" json:"name"`
	Unit         string    `bson:"unit" json:"unit"`
	CurrentStock int       `bson:"current_stock" json:"currentStock"`
	UnitPrice    float64   `bson:"unit_price" json:"unitPrice"`
	OrderingCost float64   `bson:"ordering_cost" json:"orderingCost"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
