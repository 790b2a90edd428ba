package main

import (
	"context"
	"net/http"

	"store-locator/internal/config"
	"store-locator/internal/handler"
	"store-locator/internal/report"
	"store-locator/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	store, err := report.NewWriter(config.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open report directory")
	}

	reportHandler := handler.NewReportHandler(store)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/reports", reportHandler.List)
	r.GET("/reports/:name", reportHandler.Get)

	// The location endpoint is only available when the cache database is
	// configured.
	if config.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		locationHandler := handler.NewLocationHandler(repo)

		r.GET("/locations", locationHandler.ListByRegion)
	}

	r.Run(config.ServerAddress)
}
