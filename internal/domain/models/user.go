package models

import "time"

// Role identifies a user's permission level.
type Role string

const (
	RoleOwner           Role = "owner"
	RoleWarehouseAdmin  Role = "warehouse-admin"
	RoleProductionStaff Role = "production-staff"
)

// User is an application account.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
