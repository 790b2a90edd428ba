//go:build integration

package repository

import (
	"context"
	"testing"

	"store-locator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	// Start PostgreSQL container with PostGIS
	req := testcontainers.ContainerRequest{
		Image:        "postgis/postgis:16-3.4",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	_, err = pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS postgis;`)
	require.NoError(t, err)

	return pool
}

func TestRepository_SaveAndGetByInputAddress(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.InitSchema(ctx))

	loc := models.Location{
		SiteID:           "MLO-251",
		Name:             "MLO Los Angeles Distribution Center",
		InputAddress:     "15541 East Gale, City of Industry, CA",
		FormattedAddress: "15541 E Gale Ave, City of Industry, CA 91745, USA",
		RegionCode:       "CA",
		Latitude:         34.011,
		Longitude:        -117.954,
	}

	require.NoError(t, repo.Save(ctx, loc))

	t.Run("cache hit round-trips the location", func(t *testing.T) {
		got, err := repo.GetByInputAddress(ctx, loc.InputAddress)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, loc.SiteID, got.SiteID)
		assert.Equal(t, loc.FormattedAddress, got.FormattedAddress)
		assert.Equal(t, loc.RegionCode, got.RegionCode)
		assert.InDelta(t, loc.Latitude, got.Latitude, 1e-6)
		assert.InDelta(t, loc.Longitude, got.Longitude, 1e-6)
	})

	t.Run("cache miss returns nil without error", func(t *testing.T) {
		got, err := repo.GetByInputAddress(ctx, "never seen")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("save is an upsert on input address", func(t *testing.T) {
		updated := loc
		updated.FormattedAddress = "15541 E Gale Ave, Industry, CA 91745, USA"
		require.NoError(t, repo.Save(ctx, updated))

		got, err := repo.GetByInputAddress(ctx, loc.InputAddress)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, updated.FormattedAddress, got.FormattedAddress)
	})

	t.Run("list by region", func(t *testing.T) {
		other := models.Location{
			SiteID:           "PHX-001",
			Name:             "Phoenix Hub",
			InputAddress:     "100 A St, Phoenix, AZ",
			FormattedAddress: "100 A St, Phoenix, AZ 85001, USA",
			RegionCode:       "AZ",
			Latitude:         33.448,
			Longitude:        -112.074,
		}
		require.NoError(t, repo.Save(ctx, other))

		locations, err := repo.ListByRegion(ctx, "AZ")
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, "PHX-001", locations[0].SiteID)
	})
}
