package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
)

// StorageCostRepository implements repository.StorageCostRepository.
type StorageCostRepository struct {
	coll *mongo.Collection
}

func (r *StorageCostRepository) List(ctx context.Context) ([]models.StorageCost, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list storage costs: %w", err)
	}

	items := []models.StorageCost{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode storage costs: %w", err)
	}
	return items, nil
}

func (r *StorageCostRepository) Create(ctx context.Context, sc models.StorageCost) error {
	if _, err := r.coll.InsertOne(ctx, sc); err != nil {
		return fmt.Errorf("insert storage cost: %w", err)
	}
	return nil
}

func (r *StorageCostRepository) Update(ctx context.Context, sc models.StorageCost) error {
	update := bson.M{"$set": bson.M{
		"material_id":   sc.MaterialID,
		"cost_per_unit": sc.CostPerUnit,
		"period":        sc.Period,
		"note":          sc.Note,
		"updated_at":    sc.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": sc.ID}, update)
	if err != nil {
		return fmt.Errorf("update storage cost: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StorageCostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete storage cost: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
