package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/arcians/profile-registry/internal/repository"
	"github.com/arcians/profile-registry/pkg/config"
	"github.com/arcians/profile-registry/pkg/database"
	"github.com/arcians/profile-registry/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if cfg.StoreDriver == config.DriverMongo {
		client, err := database.OpenMongo(ctx, cfg.DSN())
		if err != nil {
			log.Fatal("failed to connect to mongo", zap.Error(err))
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		coll := client.Database(cfg.DBName).Collection(repository.ProfilesCollection)
		if err := repository.EnsureProfileIndexes(ctx, coll); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	} else {
		db, err := database.OpenGorm(ctx, cfg.StoreDriver, cfg.DSN(), true)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer func() { _ = database.CloseGorm(db) }()

		if err := runMigrations(db); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
