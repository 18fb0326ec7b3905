package api

import (
	"net/http"
	"time"

	"sportsbook/metrics"
	"sportsbook/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services are the ledger operations exposed over HTTP
type Services struct {
	Users      service.UserService
	Wagers     service.WagerService
	Settlement service.SettlementService
	Periods    service.PeriodService
	Ledgers    service.LedgerService
}

// Server holds the HTTP handlers
type Server struct {
	services   Services
	hub        *WSHub
	limiter    *RateLimiter
	adminToken string
}

// NewServer creates the HTTP boundary. hub may be nil to disable the live feed.
func NewServer(services Services, hub *WSHub, limiter *RateLimiter, adminToken string) *Server {
	return &Server{
		services:   services,
		hub:        hub,
		limiter:    limiter,
		adminToken: adminToken,
	}
}

// Router builds the chi router
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "sportsbook"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.hub != nil {
			r.Get("/ws", s.hub.HandleWS)
		}

		// Everything below may block on row locks
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Post("/users", s.createUser)
			r.Get("/users/{userID}", s.getUser)
			r.Get("/users/{userID}/history", s.getBalanceHistory)
			r.Get("/week/current", s.currentWeek)
			r.Get("/weeks/{week}/leaderboard", s.weekLeaderboard)

			r.Group(func(r chi.Router) {
				r.Use(requireUser)

				r.Get("/wagers", s.listWagers)
				r.Get("/wagers/pending", s.listPendingWagers)
				r.Get("/wagers/{wagerID}", s.getWager)
				r.Get("/ledgers", s.listWeeklyLedgers)
				r.Get("/ledgers/{week}", s.getWeeklyLedger)

				r.Group(func(r chi.Router) {
					if s.limiter != nil {
						r.Use(s.limiter.Middleware)
					}
					r.Post("/wagers", s.placeWager)
					r.Delete("/wagers/{wagerID}", s.cancelWager)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(requireAdmin(s.adminToken))

				r.Post("/wagers/{wagerID}/settle", s.settleWager)
				r.Get("/weeks/{week}/wagers", s.listWeekWagers)
				r.Get("/periods", s.listPeriods)
				r.Get("/periods/{week}", s.getPeriod)
				r.Put("/periods/{week}", s.setPeriod)
				r.Post("/periods/{week}/lock", s.lockPeriod)
				r.Post("/periods/{week}/unlock", s.unlockPeriod)
				r.Post("/periods/{week}/settle", s.settlePeriod)
			})
		})
	})

	return r
}
