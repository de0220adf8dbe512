package repository

import (
	"context"
	"errors"

	"github.com/mahameru/inventory/internal/domain/models"
)

// ErrNotFound indicates the referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateCode indicates a material code collision on create or update.
var ErrDuplicateCode = errors.New("material code already in use")

// ErrInsufficientStock indicates an issuance would drive stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// MaterialRepository is the record-store contract for the materials
// collection. List returns the full collection; there is no query language
// or pagination.
type MaterialRepository interface {
	List(ctx context.Context) ([]models.Material, error)
	GetByID(ctx context.Context, id string) (*models.Material, error)
	GetByCode(ctx context.Context, code string) (*models.Material, error)
	Create(ctx context.Context, m models.Material) error
	Update(ctx context.Context, m models.Material) error
	Delete(ctx context.Context, id string) error
}

// TransactionRepository owns the receipts and issuances collections and the
// stock field of materials. Append operations write the transaction record
// and adjust the material's stock as one combined operation: AppendIssuance
// refuses with ErrInsufficientStock when the decrement would pass zero, and
// both return ErrNotFound when the material reference does not resolve.
type TransactionRepository interface {
	ListReceipts(ctx context.Context) ([]models.Receipt, error)
	ListIssuances(ctx context.Context) ([]models.Issuance, error)
	AppendReceipt(ctx context.Context, r models.Receipt) error
	AppendIssuance(ctx context.Context, iss models.Issuance) error
}

// StorageCostRepository is the record-store contract for storage cost
// records.
type StorageCostRepository interface {
	List(ctx context.Context) ([]models.StorageCost, error)
	Create(ctx context.Context, sc models.StorageCost) error
	Update(ctx context.Context, sc models.StorageCost) error
	Delete(ctx context.Context, id string) error
}

// UserRepository stores application accounts.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u models.User) error
	Count(ctx context.Context) (int64, error)
}
