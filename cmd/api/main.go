package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arcians/profile-registry/docs"
	"github.com/arcians/profile-registry/internal/api"
	"github.com/arcians/profile-registry/internal/api/handlers"
	"github.com/arcians/profile-registry/internal/repository"
	"github.com/arcians/profile-registry/internal/services"
	"github.com/arcians/profile-registry/internal/storage"
	"github.com/arcians/profile-registry/pkg/config"
	"github.com/arcians/profile-registry/pkg/database"
	"github.com/arcians/profile-registry/pkg/logger"
)

// @title           Profile Registry API
// @version         1.0
// @description     Register profiles and upload their photos.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /api

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting profile registry",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("store", cfg.StoreDriver),
	)

	ctx := context.Background()
	profiles, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect to store", zap.Error(err))
	}
	log.Info("store connected", zap.String("driver", cfg.StoreDriver))

	assets, err := storage.NewLocalAssetStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("failed to prepare upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	profileService := services.NewProfileService(profiles)
	docs.SwaggerInfo.BasePath = cfg.APIPrefix

	router := api.NewRouter(api.Dependencies{
		APIPrefix:       cfg.APIPrefix,
		AllowedOrigins:  cfg.AllowedOrigins(),
		HealthHandler:   handlers.NewHealthHandler(profileService),
		ProfilesHandler: handlers.NewProfilesHandler(profileService),
		UploadsHandler:  handlers.NewUploadsHandler(assets, cfg.MaxUploadMemory),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if err := closeStore(shutdownCtx); err != nil {
		log.Error("store close error", zap.Error(err))
	}
}

// openStore connects the configured backend and returns its profile
// repository with the matching release func.
func openStore(ctx context.Context, cfg *config.Config) (repository.ProfileRepository, func(context.Context) error, error) {
	if cfg.StoreDriver == config.DriverMongo {
		client, err := database.OpenMongo(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.DBName).Collection(repository.ProfilesCollection)
		if err := repository.EnsureProfileIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return repository.NewMongoProfileRepository(coll), client.Disconnect, nil
	}

	db, err := database.OpenGorm(ctx, cfg.StoreDriver, cfg.DSN(), cfg.LogLevel == "debug")
	if err != nil {
		return nil, nil, err
	}
	return repository.NewProfileRepository(db), func(context.Context) error { return database.CloseGorm(db) }, nil
}
