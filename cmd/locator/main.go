package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"store-locator/internal/config"
	"store-locator/internal/distance"
	"store-locator/internal/geocode"
	"store-locator/internal/report"
	"store-locator/internal/repository"
	"store-locator/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func newRootCmd() *cobra.Command {
	var (
		storesList string
		configDir  string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:          "locator --storeslist INPUT-FILE",
		Short:        "Generate per-region travel distance reports for a list of store addresses",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), storesList, configDir, outputDir)
		},
	}

	cmd.Flags().StringVar(&storesList, "storeslist", "", "path to the store list CSV (Site ID,Site Name,Street Address,City,State)")
	cmd.Flags().StringVar(&configDir, "config", "./configs", "directory holding app.env")
	cmd.Flags().StringVar(&outputDir, "out", "", "output directory (overrides OUTPUT_DIR)")
	_ = cmd.MarkFlagRequired("storeslist")

	return cmd
}

func run(ctx context.Context, storesList, configDir, outputDir string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if strings.TrimSpace(cfg.MapsAPIKey) == "" {
		return errors.New("MAPS_API_KEY is required")
	}

	stores, err := parseStores(storesList)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		return fmt.Errorf("store list %q contains no data rows", storesList)
	}

	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	geocoder, err := geocode.NewGoogleClient(cfg.MapsAPIKey)
	if err != nil {
		return err
	}

	matrix, err := distance.NewGoogleClient(cfg.MapsAPIKey)
	if err != nil {
		return err
	}

	// The location cache is optional: without DB_SOURCE every address is
	// geocoded fresh on each run.
	var cache service.LocationCache
	if cfg.DBSource != "" {
		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return fmt.Errorf("connect to db: %w", err)
		}
		defer pool.Close()

		repo := repository.NewRepository(pool)
		if err := repo.InitSchema(ctx); err != nil {
			return err
		}
		cache = repo
	}

	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	writer, err := report.NewWriter(outputDir)
	if err != nil {
		return err
	}

	locator := service.NewLocator(geocoder, cache, matrix, report.NewHTMLRenderer(cfg.MapsAPIKey), writer, renderOpts)

	summary, err := locator.Run(ctx, stores)
	if err != nil {
		return err
	}

	log.Info().
		Int("locations", summary.Locations).
		Int("batches", summary.Batches).
		Strs("reports", summary.Reports).
		Str("output_dir", outputDir).
		Msg("run complete")

	return nil
}

// parseStores reads the input CSV, skipping the header row. Each data row
// becomes a StoreRecord with a composed "street, city, state" address.
func parseStores(path string) ([]service.StoreRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store list: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var stores []service.StoreRecord
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 5 {
			return nil, fmt.Errorf("invalid record length: %d, expected at least 5 columns", len(record))
		}

		address := strings.TrimSpace(record[2]) + ", " +
			strings.TrimSpace(record[3]) + ", " +
			strings.TrimSpace(record[4])

		stores = append(stores, service.StoreRecord{
			SiteID:  strings.TrimSpace(record[0]),
			Name:    strings.TrimSpace(record[1]),
			Address: address,
		})
	}

	return stores, nil
}
