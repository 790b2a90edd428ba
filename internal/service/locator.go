package service

import (
	"context"
	"fmt"
	"sort"

	"store-locator/internal/distance"
	"store-locator/internal/models"
	"store-locator/internal/partition"
	"store-locator/internal/render"

	"github.com/rs/zerolog/log"
)

// StoreRecord is one raw row from the input list, before geocoding.
type StoreRecord struct {
	SiteID  string
	Name    string
	Address string
}

// Geocoder resolves a raw store record into a full Location.
type Geocoder interface {
	Resolve(ctx context.Context, siteID, name, address string) (models.Location, error)
}

// LocationCache stores previous resolutions keyed by input address. A nil
// cache is valid and means every address is geocoded fresh.
type LocationCache interface {
	GetByInputAddress(ctx context.Context, address string) (*models.Location, error)
	Save(ctx context.Context, loc models.Location) error
}

// MatrixProvider fetches the full pairwise distance matrix for one batch.
type MatrixProvider interface {
	FetchMatrix(ctx context.Context, batch models.Batch) (distance.Matrix, error)
}

// BatchRenderer turns a batch and its rendered table into a report body.
type BatchRenderer interface {
	RenderBatch(batch models.Batch, table render.Table) ([]byte, error)
}

// ReportSink persists report bodies and the index page.
type ReportSink interface {
	Write(region string, body []byte) (string, error)
	WriteIndex(title string) error
}

// Locator runs the full pipeline: resolve -> sort -> partition -> fetch
// matrix -> render -> emit, one batch fully completed before the next begins.
type Locator struct {
	geocoder   Geocoder
	cache      LocationCache
	matrix     MatrixProvider
	renderer   BatchRenderer
	sink       ReportSink
	renderOpts render.Options
}

// NewLocator creates the pipeline service. cache may be nil.
func NewLocator(
	geocoder Geocoder,
	cache LocationCache,
	matrix MatrixProvider,
	renderer BatchRenderer,
	sink ReportSink,
	renderOpts render.Options,
) *Locator {
	return &Locator{
		geocoder:   geocoder,
		cache:      cache,
		matrix:     matrix,
		renderer:   renderer,
		sink:       sink,
		renderOpts: renderOpts,
	}
}

// Summary describes one completed run.
type Summary struct {
	Locations int
	Batches   int
	Reports   []string
}

// Run processes the store list end to end. Batches are handled strictly
// sequentially; a failure aborts the run, leaving already-written reports on
// disk. An empty store list yields zero batches and zero reports.
func (l *Locator) Run(ctx context.Context, stores []StoreRecord) (Summary, error) {
	locations, err := l.resolveAll(ctx, stores)
	if err != nil {
		return Summary{}, err
	}

	// Ties must keep their input order: later stages rely on contiguity per
	// region, and encounter order within a region is part of the contract.
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].RegionCode < locations[j].RegionCode
	})

	batches := partition.Partition(locations)

	summary := Summary{
		Locations: len(locations),
		Batches:   len(batches),
		Reports:   make([]string, 0, len(batches)),
	}

	for _, batch := range batches {
		matrix, err := l.matrix.FetchMatrix(ctx, batch)
		if err != nil {
			return summary, fmt.Errorf("service: fetch matrix for region %q: %w", batch.Region, err)
		}

		table, err := render.BuildTable(batch, matrix, l.renderOpts)
		if err != nil {
			return summary, fmt.Errorf("service: render table for region %q: %w", batch.Region, err)
		}

		body, err := l.renderer.RenderBatch(batch, table)
		if err != nil {
			return summary, fmt.Errorf("service: render report for region %q: %w", batch.Region, err)
		}

		name, err := l.sink.Write(batch.Region, body)
		if err != nil {
			return summary, fmt.Errorf("service: write report for region %q: %w", batch.Region, err)
		}

		log.Info().
			Str("region", batch.Region).
			Int("locations", batch.Size()).
			Str("report", name).
			Msg("batch report written")

		summary.Reports = append(summary.Reports, name)
	}

	if err := l.sink.WriteIndex("Store Locator"); err != nil {
		return summary, fmt.Errorf("service: write index: %w", err)
	}

	return summary, nil
}

// resolveAll geocodes every store, consulting the cache first when present.
func (l *Locator) resolveAll(ctx context.Context, stores []StoreRecord) ([]models.Location, error) {
	locations := make([]models.Location, 0, len(stores))

	for _, store := range stores {
		if l.cache != nil {
			cached, err := l.cache.GetByInputAddress(ctx, store.Address)
			if err != nil {
				return nil, fmt.Errorf("service: cache lookup for %q: %w", store.Address, err)
			}
			if cached != nil {
				locations = append(locations, *cached)
				continue
			}
		}

		loc, err := l.geocoder.Resolve(ctx, store.SiteID, store.Name, store.Address)
		if err != nil {
			return nil, fmt.Errorf("service: geocode %q: %w", store.Address, err)
		}

		log.Debug().
			Str("site_id", loc.SiteID).
			Str("region", loc.RegionCode).
			Str("formatted", loc.FormattedAddress).
			Msg("address resolved")

		if l.cache != nil {
			if err := l.cache.Save(ctx, loc); err != nil {
				// Cache writes are best effort; the resolution itself stands.
				log.Warn().Err(err).Str("address", store.Address).Msg("location cache write failed")
			}
		}

		locations = append(locations, loc)
	}

	return locations, nil
}
