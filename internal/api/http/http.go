// Package httpapi exposes the analytics operations over a JSON REST API:
// host platform events in, reports out.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/jekabolt/grbpwr-analytics/internal/attribution"
	"github.com/jekabolt/grbpwr-analytics/internal/courier"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jekabolt/grbpwr-analytics/internal/ltv"
	"github.com/jekabolt/grbpwr-analytics/internal/profit"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimit      int      `mapstructure:"rate_limit"`
}

// Services bundles the domain services the handlers dispatch to.
type Services struct {
	Profit      *profit.Calculator
	LTV         *ltv.Aggregator
	Attribution *attribution.Recorder
	Courier     *courier.Tracker
}

// Server is the http server
type Server struct {
	hs    *http.Server
	c     *Config
	rep   dependency.Repository
	svc   Services
	tiers []entity.LoyaltyTier
	done  chan struct{}
}

// New creates a new server
func New(config *Config, rep dependency.Repository, svc Services, tiers []entity.LoyaltyTier) *Server {
	return &Server{
		c:     config,
		rep:   rep,
		svc:   svc,
		tiers: tiers,
		done:  make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
	})

	r.Use(c.Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	rateLimit := s.c.RateLimit
	if rateLimit <= 0 {
		rateLimit = 100
	}
	r.Use(httprate.Limit(
		rateLimit,
		15*time.Second,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	))

	r.Get("/", s.healthcheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(sr chi.Router) {
			sr.Post("/order-placed", s.handleOrderPlaced)
			sr.Post("/payment-complete", s.handlePaymentComplete)
			sr.Post("/order-completed", s.handleOrderCompleted)
		})

		r.Route("/attribution", func(sr chi.Router) {
			sr.Post("/checkout", s.captureCheckout)
			sr.Post("/spend", s.updateCampaignSpend)
		})

		r.Post("/couriers/{orderID}", s.updateCourier)

		r.Route("/reports", func(sr chi.Router) {
			sr.Get("/profit", s.getProfitSummary)
			sr.Get("/profit/rows", s.getProfitRows)
			sr.Get("/ltv", s.getLTVSummary)
			sr.Get("/ltv/top", s.getTopCustomers)
			sr.Get("/channels", s.getChannelPerformance)
			sr.Get("/channels/top", s.getTopChannels)
			sr.Get("/couriers", s.getCourierSummary)
			sr.Get("/couriers/rows", s.getCourierRows)
		})
	})

	return r
}

func (s *Server) healthcheck(w http.ResponseWriter, r *http.Request) {
	if err := s.rep.Ping(r.Context()); err != nil {
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	hsDone := make(chan struct{})

	go func() {
		<-hsDone
		close(s.done)
	}()

	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    listenerAddr,
		Handler: s.router(),
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("grbpwr-analytics new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		cancel()
		close(hsDone)
	}()

	return nil
}

// Stop shuts the server down, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}
