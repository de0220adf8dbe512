// Package memory provides an in-memory implementation of the record-store
// contract. It backs the package tests and local development without a
// MongoDB instance.
package memory

import (
	"context"
	"sync"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
)

// Store holds all collections behind one mutex, which makes the combined
// stock-and-record writes trivially atomic.
type Store struct {
	mu           sync.RWMutex
	materials    []models.Material
	receipts     []models.Receipt
	issuances    []models.Issuance
	storageCosts []models.StorageCost
	users        []models.User
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Materials returns the materials repository view.
func (s *Store) Materials() repository.MaterialRepository { return &materialView{s} }

// Transactions returns the transaction repository view.
func (s *Store) Transactions() repository.TransactionRepository { return &transactionView{s} }

// StorageCosts returns the storage-cost repository view.
func (s *Store) StorageCosts() repository.StorageCostRepository { return &storageCostView{s} }

// Users returns the user repository view.
func (s *Store) Users() repository.UserRepository { return &userView{s} }

// ---- materials ----

type materialView struct{ s *Store }

func (v *materialView) List(_ context.Context) ([]models.Material, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]models.Material, len(v.s.materials))
	copy(out, v.s.materials)
	return out, nil
}

func (v *materialView) GetByID(_ context.Context, id string) (*models.Material, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.materials {
		if v.s.materials[i].ID == id {
			m := v.s.materials[i]
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (v *materialView) GetByCode(_ context.Context, code string) (*models.Material, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.materials {
		if v.s.materials[i].Code == code {
			m := v.s.materials[i]
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (v *materialView) Create(_ context.Context, m models.Material) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.materials {
		if v.s.materials[i].Code == m.Code {
			return repository.ErrDuplicateCode
		}
	}
	v.s.materials = append(v.s.materials, m)
	return nil
}

func (v *materialView) Update(_ context.Context, m models.Material) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.materials {
		if v.s.materials[i].Code == m.Code && v.s.materials[i].ID != m.ID {
			return repository.ErrDuplicateCode
		}
	}
	for i := range v.s.materials {
		if v.s.materials[i].ID == m.ID {
			// Stock stays owned by the transaction writes.
			m.CurrentStock = v.s.materials[i].CurrentStock
			m.CreatedAt = v.s.materials[i].CreatedAt
			v.s.materials[i] = m
			return nil
		}
	}
	return repository.ErrNotFound
}

func (v *materialView) Delete(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.materials {
		if v.s.materials[i].ID == id {
			v.s.materials = append(v.s.materials[:i], v.s.materials[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- transactions ----

type transactionView struct{ s *Store }

func (v *transactionView) ListReceipts(_ context.Context) ([]models.Receipt, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]models.Receipt, len(v.s.receipts))
	copy(out, v.s.receipts)
	return out, nil
}

func (v *transactionView) ListIssuances(_ context.Context) ([]models.Issuance, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]models.Issuance, len(v.s.issuances))
	copy(out, v.s.issuances)
	return out, nil
}

func (v *transactionView) AppendReceipt(_ context.Context, r models.Receipt) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.materials {
		if v.s.materials[i].ID == r.MaterialID {
			v.s.materials[i].CurrentStock += r.Quantity
			v.s.receipts = append(v.s.receipts, r)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (v *transactionView) AppendIssuance(_ context.Context, iss models.Issuance) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.materials {
		if v.s.materials[i].ID == iss.MaterialID {
			if v.s.materials[i].CurrentStock < iss.Quantity {
				return repository.ErrInsufficientStock
			}
			v.s.materials[i].CurrentStock -= iss.Quantity
			v.s.issuances = append(v.s.issuances, iss)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- storage costs ----

type storageCostView struct{ s *Store }

func (v *storageCostView) List(_ context.Context) ([]models.StorageCost, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]models.StorageCost, len(v.s.storageCosts))
	copy(out, v.s.storageCosts)
	return out, nil
}

func (v *storageCostView) Create(_ context.Context, sc models.StorageCost) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.storageCosts = append(v.s.storageCosts, sc)
	return nil
}

func (v *storageCostView) Update(_ context.Context, sc models.StorageCost) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.storageCosts {
		if v.s.storageCosts[i].ID == sc.ID {
			sc.CreatedAt = v.s.storageCosts[i].CreatedAt
			v.s.storageCosts[i] = sc
			return nil
		}
	}
	return repository.ErrNotFound
}

func (v *storageCostView) Delete(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.storageCosts {
		if v.s.storageCosts[i].ID == id {
			v.s.storageCosts = append(v.s.storageCosts[:i], v.s.storageCosts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---- users ----

type userView struct{ s *Store }

func (v *userView) GetByUsername(_ context.Context, username string) (*models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for i := range v.s.users {
		if v.s.users[i].Username == username {
			u := v.s.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (v *userView) Create(_ context.Context, u models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.users = append(v.s.users, u)
	return nil
}

func (v *userView) Count(_ context.Context) (int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return int64(len(v.s.users)), nil
}
