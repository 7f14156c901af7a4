package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"renvask/internal/config"
	"renvask/internal/database"
	"renvask/internal/export"
	"renvask/internal/logging"
)

// Command-line export of the booking schedule, for when the office needs a
// spreadsheet without going through the admin API.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "configs/config.yaml", "path to config file")
		fromStr    = flag.String("from", "", "start date (YYYY-MM-DD)")
		toStr      = flag.String("to", "", "end date (YYYY-MM-DD), inclusive")
		outDir     = flag.String("out", "", "output directory, defaults to exports.path from config")
	)
	flag.Parse()

	if *fromStr == "" || *toStr == "" {
		flag.Usage()
		return fmt.Errorf("-from and -to are required")
	}

	from, err := time.Parse("2006-01-02", *fromStr)
	if err != nil {
		return fmt.Errorf("invalid -from date: %w", err)
	}
	to, err := time.Parse("2006-01-02", *toStr)
	if err != nil {
		return fmt.Errorf("invalid -to date: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("-to must not be before -from")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	bookings, err := db.ListByDateRange(context.Background(), from, to.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Exports.Path
	}
	if dir == "" {
		dir = "exports"
	}

	exporter := export.NewExporter(dir, logger)
	path, err := exporter.Export(bookings, from, to)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(os.Stdout, "exported %d bookings to %s\n", len(bookings), path)
	return nil
}
