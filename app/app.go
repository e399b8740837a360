package app

import (
	"context"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/config"
	httpapi "github.com/jekabolt/grbpwr-analytics/internal/api/http"
	"github.com/jekabolt/grbpwr-analytics/internal/attribution"
	"github.com/jekabolt/grbpwr-analytics/internal/courier"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/ltv"
	"github.com/jekabolt/grbpwr-analytics/internal/profit"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting analytics service")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	tiers := a.c.Analytics.LoyaltyTiers()
	svc := httpapi.Services{
		Profit: profit.New(a.db, a.c.Analytics.ExcludeRefunded),
		LTV: ltv.New(a.db, ltv.Config{
			Tiers:                 tiers,
			ActivityThresholdDays: a.c.Analytics.ActivityThresholdDays,
			CountryCode:           a.c.Analytics.PhoneCountryCode,
		}),
		Attribution: attribution.New(a.db),
		Courier:     courier.New(a.db),
	}

	a.hs = httpapi.New(&a.c.HTTP, a.db, svc, tiers)
	if err = a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	a.db.Close()
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
