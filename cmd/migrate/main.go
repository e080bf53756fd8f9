package main

import (
	"context"
	"fmt"
	"time"

	mongoMigration "github.com/reshmacodewarrior/BusBookingSystem/internal/migrations/mongo"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/config"
)

const JobName = "mongo-migration"

const migrationTimeout = 120 * time.Second

func main() {
	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	cfg.Log.Info("Starting Mongo migration job", "database", cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Client, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	fmt.Println("Migration completed successfully.")
}
