//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/arcians/profile-registry/internal/models"
	"github.com/arcians/profile-registry/pkg/config"
	"github.com/arcians/profile-registry/pkg/database"
	appErr "github.com/arcians/profile-registry/pkg/errors"
)

func exerciseRepository(t *testing.T, repo ProfileRepository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	a := sampleProfile("Ada")
	b := sampleProfile("Ada")
	require.NoError(t, repo.Create(ctx, &a))
	require.NoError(t, repo.Create(ctx, &b))

	var got models.Profile
	require.NoError(t, repo.GetByID(ctx, a.ID, &got))
	require.Equal(t, a, got)

	err := repo.GetByID(ctx, "does-not-exist", &got)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound), "got %v", err)

	all, err := repo.List(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestPostgresProfileRepository(t *testing.T) {
	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("registry"),
		tcpostgres.WithUsername("registry"),
		tcpostgres.WithPassword("registry"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.OpenGorm(ctx, config.DriverPostgres, dsn, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseGorm(db) })
	require.NoError(t, db.AutoMigrate(&models.Profile{}))

	exerciseRepository(t, NewProfileRepository(db))
}

func TestMongoProfileRepositoryLive(t *testing.T) {
	ctx := context.Background()
	ctr, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := database.OpenMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	coll := client.Database("registry").Collection(ProfilesCollection)
	require.NoError(t, EnsureProfileIndexes(ctx, coll))

	exerciseRepository(t, NewMongoProfileRepository(coll))
}
