package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"renvask/internal/database"
	"renvask/internal/models"

	"github.com/rs/zerolog"
)

// One-off backfill: rebuild the customers table from existing bookings.
// Needed when the database predates the customer upsert in the booking flow.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		dbPath = flag.String("db", "./data/bookings.db", "path to sqlite db")
		since  = flag.String("since", "", "only consider bookings scheduled on or after this date (YYYY-MM-DD)")
	)
	flag.Parse()

	start := time.Time{}
	if *since != "" {
		parsed, err := time.Parse("2006-01-02", *since)
		if err != nil {
			return fmt.Errorf("invalid -since date: %w", err)
		}
		start = parsed
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	end := time.Now().AddDate(1, 0, 0)
	bookings, err := db.ListByDateRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	upserted := 0
	for _, b := range bookings {
		if b.Email == "" {
			continue
		}
		customer := &models.Customer{
			Name:             b.CustomerName,
			Email:            b.Email,
			Phone:            b.Phone,
			Street:           b.Street,
			City:             b.City,
			PostalCode:       b.PostalCode,
			MarketingConsent: b.MarketingConsent,
		}
		if err := db.UpsertCustomerByEmail(ctx, customer); err != nil {
			return fmt.Errorf("upsert %s: %w", b.Email, err)
		}
		upserted++
	}

	fmt.Printf("done: bookings=%d upserted=%d\n", len(bookings), upserted)
	return nil
}
