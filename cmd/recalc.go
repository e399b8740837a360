package main

import (
	"context"
	"fmt"
	"os"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jekabolt/grbpwr-analytics/config"
	"github.com/jekabolt/grbpwr-analytics/internal/ltv"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var recalcWorkers int

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate lifetime value for every customer and guest identity",
	RunE:  runRecalc,
}

func init() {
	recalcCmd.Flags().IntVar(&recalcWorkers, "workers", 4, "number of concurrent recalculation workers")
}

// runRecalc rebuilds every customer_ltv row from the order history. Used
// after backfills and after changing tier or activity settings.
func runRecalc(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	ctx := context.Background()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(cfg.Logger.Level),
	}))
	slog.SetDefault(logger)

	db, err := store.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("couldn't connect to mysql: %w", err)
	}
	defer db.Close()

	aggregator := ltv.New(db, ltv.Config{
		Tiers:                 cfg.Analytics.LoyaltyTiers(),
		ActivityThresholdDays: cfg.Analytics.ActivityThresholdDays,
		CountryCode:           cfg.Analytics.PhoneCountryCode,
	})

	customerIDs, err := db.Orders().ListCustomerIds(ctx)
	if err != nil {
		return fmt.Errorf("can't list customer ids: %w", err)
	}
	phones, err := db.Orders().ListGuestPhones(ctx)
	if err != nil {
		return fmt.Errorf("can't list guest phones: %w", err)
	}

	runID := uuid.New().String()
	logger.InfoContext(ctx, "starting bulk ltv recalculation",
		slog.String("runId", runID),
		slog.Int("customers", len(customerIDs)),
		slog.Int("guests", len(phones)),
		slog.Int("workers", recalcWorkers),
	)

	bar := progressbar.Default(int64(len(customerIDs) + len(phones)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recalcWorkers)

	for _, id := range customerIDs {
		id := id
		g.Go(func() error {
			defer bar.Add(1)
			if err := aggregator.RecalculateCustomer(gctx, id); err != nil {
				return fmt.Errorf("customer %d: %w", id, err)
			}
			return nil
		})
	}
	for _, phone := range phones {
		phone := phone
		g.Go(func() error {
			defer bar.Add(1)
			if err := aggregator.RecalculatePhone(gctx, phone); err != nil {
				return fmt.Errorf("guest %s: %w", phone, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("recalculation failed: %w", err)
	}

	logger.InfoContext(ctx, "bulk ltv recalculation finished",
		slog.String("runId", runID),
	)
	return nil
}
