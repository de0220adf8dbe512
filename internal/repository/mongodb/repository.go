package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	materialsColl    = "materials"
	receiptsColl     = "receipts"
	issuancesColl    = "issuances"
	storageCostsColl = "storage_costs"
	usersColl        = "users"
)

// Store holds the MongoDB connection behind the record-store contract. The
// four record collections plus users live in a single database; per-
// collection repositories are handed out from here.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes creates the indexes the repositories rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	if _, err := s.db.Collection(materialsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create materials index: %w", err)
	}

	for _, coll := range []string{receiptsColl, issuancesColl} {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "material_id", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		}); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}

	if _, err := s.db.Collection(storageCostsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "material_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create storage_costs index: %w", err)
	}

	if _, err := s.db.Collection(usersColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	return nil
}

// Materials returns the materials repository.
func (s *Store) Materials() *MaterialRepository {
	return &MaterialRepository{coll: s.db.Collection(materialsColl)}
}

// Transactions returns the transaction repository. It also touches the
// materials collection because appending a transaction adjusts stock.
func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{
		materials: s.db.Collection(materialsColl),
		receipts:  s.db.Collection(receiptsColl),
		issuances: s.db.Collection(issuancesColl),
	}
}

// StorageCosts returns the storage-cost repository.
func (s *Store) StorageCosts() *StorageCostRepository {
	return &StorageCostRepository{coll: s.db.Collection(storageCostsColl)}
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersColl)}
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
