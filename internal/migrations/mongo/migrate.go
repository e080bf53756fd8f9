package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reshmacodewarrior/BusBookingSystem/internal/migrations/mongo/validators"
)

// BusesIndexes covers the service's read paths: the compound index serves
// route search, the single-field ones serve lookups and listings.
var BusesIndexes = []mongo.IndexModel{
	{Keys: bson.D{
		{Key: "source", Value: 1},
		{Key: "destination", Value: 1},
		{Key: "departure_time", Value: 1},
	}},
	{Keys: bson.D{{Key: "bus_number", Value: 1}}},
	{Keys: bson.D{{Key: "created_at", Value: 1}}},
}

type collectionSpec struct {
	name      string
	indexes   []mongo.IndexModel
	validator bson.M
}

var migrations = []collectionSpec{
	{name: "buses", indexes: BusesIndexes, validator: validators.BusValidator},
}

// RunMigration ensures every collection exists with its schema validator and
// indexes. Safe to run on every deploy; existing collections are updated in
// place.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Mongo migrations on database: %s\n", dbName)

	for _, spec := range migrations {
		if err := ensureCollection(ctx, db, spec.name, spec.validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", spec.name, err)
		}
		if err := ensureIndexes(ctx, db, spec.name, spec.indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", spec.name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	// collMod failures are logged, not fatal.
	fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
