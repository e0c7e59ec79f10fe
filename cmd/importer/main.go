// Command importer loads the freelancer earnings CSV dataset into the
// listings collection.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/gigledger/gigledger/modules/listings"
	"github.com/gigledger/gigledger/pkg/config"
	"github.com/gigledger/gigledger/pkg/logger"
	gigmongo "github.com/gigledger/gigledger/pkg/mongo"
)

type importerConfig struct {
	Log   logger.Config
	Mongo gigmongo.Config
}

func main() {
	var (
		csvPath   = flag.String("csv", "data/freelancer_earnings_bd.csv", "path to the dataset CSV")
		batchSize = flag.Int("batch", 500, "insert batch size")
		reset     = flag.Bool("reset", false, "remove existing listings before import")
	)
	flag.Parse()

	var cfg importerConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Log, logger.WithAttr(slog.String("app", "gigledger-importer")))

	if err := run(context.Background(), cfg, *csvPath, *batchSize, *reset, log); err != nil {
		log.Error("import failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg importerConfig, csvPath string, batchSize int, reset bool, log *slog.Logger) error {
	db, err := gigmongo.NewWithDatabase(ctx, cfg.Mongo, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	storage := listings.NewMongoStorage(db)
	if err := storage.EnsureIndexes(ctx); err != nil {
		return err
	}
	if reset {
		if err := storage.RemoveAll(ctx); err != nil {
			return err
		}
		log.Info("cleared existing listings")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	svc := listings.NewService(storage, log)

	total := 0
	err = readRecords(f, batchSize, func(batch []listings.Listing) error {
		if err := svc.Import(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("import finished", slog.Int("total", total))
	return nil
}

// readRecords streams rows from the CSV and hands them to flush in batches.
// The first row is treated as the header and used to map columns by name.
func readRecords(r io.Reader, batchSize int, flush func([]listings.Listing) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	batch := make([]listings.Listing, 0, batchSize)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}

		batch = append(batch, rowToListing(row, cols))
		if len(batch) >= batchSize {
			if err := flush(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		return flush(batch)
	}
	return nil
}

func rowToListing(row []string, cols map[string]int) listings.Listing {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}
	num := func(name string) float64 {
		v, _ := strconv.ParseFloat(field(name), 64)
		return v
	}
	count := func(name string) int {
		v, _ := strconv.Atoi(field(name))
		return v
	}

	return listings.Listing{
		FreelancerID:    field("Freelancer_ID"),
		JobCategory:     field("Job_Category"),
		Platform:        field("Platform"),
		ExperienceLevel: field("Experience_Level"),
		ClientRegion:    field("Client_Region"),
		PaymentMethod:   field("Payment_Method"),
		JobsCompleted:   count("Job_Completed"),
		EarningsUSD:     num("Earnings_USD"),
		HourlyRate:      num("Hourly_Rate"),
		JobSuccessRate:  num("Job_Success_Rate"),
		ClientRating:    num("Client_Rating"),
		JobDurationDays: num("Job_Duration_Days"),
		ProjectType:     field("Project_Type"),
		RehireRate:      num("Rehire_Rate"),
		MarketingSpend:  num("Marketing_Spend"),
	}
}
