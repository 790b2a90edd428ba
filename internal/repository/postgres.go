package repository

import (
	"context"
	"errors"
	"fmt"

	"store-locator/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is a PostgreSQL-backed cache of resolved locations, keyed by the
// composed input address. It spares repeated geocoding calls across runs.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the locations table and its indexes if missing.
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		site_id VARCHAR(64) NOT NULL,
		name VARCHAR(255),
		input_address VARCHAR(512) NOT NULL UNIQUE,
		formatted_address VARCHAR(512) NOT NULL,
		region_code VARCHAR(8) NOT NULL,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS locations_region_code_idx ON locations (region_code);
	CREATE INDEX IF NOT EXISTS locations_geom_idx ON locations USING GIST (geom);
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("repository: init schema: %w", err)
	}
	return nil
}

// GetByInputAddress returns the cached resolution for an input address, or
// nil when the address has not been resolved before.
func (r *Repository) GetByInputAddress(ctx context.Context, address string) (*models.Location, error) {
	sql := `
		SELECT
			site_id,
			name,
			input_address,
			formatted_address,
			region_code,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM locations
		WHERE input_address = $1
	`

	var loc models.Location
	err := r.db.QueryRow(ctx, sql, address).Scan(
		&loc.SiteID,
		&loc.Name,
		&loc.InputAddress,
		&loc.FormattedAddress,
		&loc.RegionCode,
		&loc.Latitude,
		&loc.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: get location by address: %w", err)
	}

	return &loc, nil
}

// Save upserts one resolved location, keyed by its input address.
func (r *Repository) Save(ctx context.Context, loc models.Location) error {
	sql := `
		INSERT INTO locations (site_id, name, input_address, formatted_address, region_code, geom)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($6, $7), 4326))
		ON CONFLICT (input_address) DO UPDATE
		SET site_id = EXCLUDED.site_id,
			name = EXCLUDED.name,
			formatted_address = EXCLUDED.formatted_address,
			region_code = EXCLUDED.region_code,
			geom = EXCLUDED.geom
	`

	_, err := r.db.Exec(ctx, sql,
		loc.SiteID,
		loc.Name,
		loc.InputAddress,
		loc.FormattedAddress,
		loc.RegionCode,
		loc.Longitude,
		loc.Latitude,
	)
	if err != nil {
		return fmt.Errorf("repository: save location: %w", err)
	}

	return nil
}

// ListByRegion returns every cached location for one region code, ordered by
// site id.
func (r *Repository) ListByRegion(ctx context.Context, region string) ([]models.Location, error) {
	sql := `
		SELECT
			site_id,
			name,
			input_address,
			formatted_address,
			region_code,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude
		FROM locations
		WHERE region_code = $1
		ORDER BY site_id
	`

	rows, err := r.db.Query(ctx, sql, region)
	if err != nil {
		return nil, fmt.Errorf("repository: list locations by region: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var loc models.Location
		err := rows.Scan(
			&loc.SiteID,
			&loc.Name,
			&loc.InputAddress,
			&loc.FormattedAddress,
			&loc.RegionCode,
			&loc.Latitude,
			&loc.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return locations, nil
}
