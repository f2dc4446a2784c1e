package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chemtrack/chemtrack/internal/domain/chemicals"
	"github.com/chemtrack/chemtrack/internal/domain/inventory"
	"github.com/chemtrack/chemtrack/internal/domain/locations"
	"github.com/chemtrack/chemtrack/internal/domain/preferences"
	"github.com/chemtrack/chemtrack/internal/domain/reports"
	"github.com/chemtrack/chemtrack/internal/infra/cache"
)

// Deps wires the API surface. Cache may be nil when redis is disabled and
// APIKey empty when the key check is off (local dev).
type Deps struct {
	Log       *slog.Logger
	Inventory *inventory.Service
	Notify    *inventory.NotifyRepo
	Chemicals *chemicals.Repo
	Locations *locations.Repo
	Prefs     *preferences.Repo
	Reports   *reports.Repo
	Cache     *cache.ChemicalCache

	APIKey        string
	ExposeMetrics bool
}

type Server struct {
	srv *http.Server
}

func New(addr string, d Deps) *Server {
	h := &handlers{d: d}

	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)
	r.Use(requestID)
	r.Use(requestLogger(d.Log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if d.ExposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/backend", func(r chi.Router) {
		r.Use(apiKey(d.APIKey, d.Log))

		r.Post("/chemsearch", h.searchChemicals)
		r.Get("/chemical/{inventoryID}", h.getChemical)
		r.Post("/update_inventory", h.updateInventory)
		r.Get("/reorder_notif", h.reorderNotifications)

		r.Get("/buildings", h.buildings)
		r.Get("/lab_rooms", h.labRooms)
		r.Get("/locations", h.listLocations)

		r.Get("/preference", h.getPreferences)
		r.Post("/preference", h.setPreference)

		r.Get("/reports", h.listReports)
		r.Get("/report/{reportID}", h.getReport)
		r.Post("/report/{reportID}/run", h.runReport)
		r.Get("/report/{reportID}/export", h.exportReport)
	})

	return &Server{srv: &http.Server{Addr: addr, Handler: r}}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type handlers struct {
	d Deps
}
