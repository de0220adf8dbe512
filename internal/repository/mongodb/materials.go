package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahameru/inventory/internal/domain/models"
	"github.com/mahameru/inventory/internal/repository"
)

// MaterialRepository implements repository.MaterialRepository on MongoDB.
type MaterialRepository struct {
	coll *mongo.Collection
}

func (r *MaterialRepository) List(ctx context.Context) ([]models.Material, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	items := []models.Material{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode materials: %w", err)
	}
	return items, nil
}

func (r *MaterialRepository) GetByID(ctx context.Context, id string) (*models.Material, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MaterialRepository) GetByCode(ctx context.Context, code string) (*models.Material, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *MaterialRepository) findOne(ctx context.Context, filter bson.M) (*models.Material, error) {
	var m models.Material
	err := r.coll.FindOne(ctx, filter).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find material: %w", err)
	}
	return &m, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m models.Material) error {
	_, err := r.coll.InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateCode
	}
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *MaterialRepository) Update(ctx context.Context, m models.Material) error {
	// CurrentStock is owned by the transaction writes and deliberately left
	// out of the update document.
	update := bson.M{"$set": bson.M{
		"code":          m.Code,
		"name":          m.Name,
		"unit":          m.Unit,
		"unit_price":    m.UnitPrice,
		"ordering_cost": m.OrderingCost,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": m.ID}, update)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateCode
	}
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
