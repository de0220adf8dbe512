package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository. The
// append operations combine the record insert with the stock adjustment so
// the stock invariant holds after every write.
type TransactionRepository struct {
	materials *mongo.Collection
	receipts  *mongo.Collection
	issuances *mongo.Collection
}

func (r *TransactionRepository) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	cursor, err := r.receipts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}

	items := []models.Receipt{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode receipts: %w", err)
	}
	return items, nil
}

func (r *TransactionRepository) ListIssuances(ctx context.Context) ([]models.Issuance, error) {
	cursor, err := r.issuances.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}

	items := []models.Issuance{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode issuances: %w", err)
	}
	return items, nil
}

// AppendReceipt increments the material's stock and inserts the receipt
// record. The increment doubles as the existence check; a failed insert is
// compensated by reversing the increment so stock stays consistent with the
// transaction log.
func (r *TransactionRepository) AppendReceipt(ctx context.Context, receipt models.Receipt) error {
	res, err := r.materials.UpdateOne(ctx,
		bson.M{"_id": receipt.MaterialID},
		bson.M{"$inc": bson.M{"current_stock": receipt.Quantity}})
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}

	if _, err := r.receipts.InsertOne(ctx, receipt); err != nil {
		r.compensateStock(receipt.MaterialID, -receipt.Quantity)
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// AppendIssuance decrements stock through a guarded update so the
// sufficient-stock check and the decrement are a single atomic document
// write, then inserts the issuance record.
func (r *TransactionRepository) AppendIssuance(ctx context.Context, iss models.Issuance) error {
	res, err := r.materials.UpdateOne(ctx,
		bson.M{"_id": iss.MaterialID, "current_stock": bson.M{"$gte": iss.Quantity}},
		bson.M{"$inc": bson.M{"current_stock": -iss.Quantity}})
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing material from too little stock.
		n, err := r.materials.CountDocuments(ctx, bson.M{"_id": iss.MaterialID})
		if err != nil {
			return fmt.Errorf("check material: %w", err)
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrInsufficientStock
	}

	if _, err := r.issuances.InsertOne(ctx, iss); err != nil {
		r.compensateStock(iss.MaterialID, iss.Quantity)
		return fmt.Errorf("insert issuance: %w", err)
	}
	return nil
}

// compensateStock reverses a stock adjustment after a failed record insert.
// Runs on a fresh context because the caller's may already be cancelled.
func (r *TransactionRepository) compensateStock(materialID string, delta int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = r.materials.UpdateOne(ctx,
		bson.M{"_id": materialID},
		bson.M{"$inc": bson.M{"current_stock": delta}})
}
