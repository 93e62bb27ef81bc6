package app

import (
	"context"
	"net/http"
	"time"
	middle "uptime-monitor/internals/middleware"
	"uptime-monitor/internals/modules/monitor"
	"uptime-monitor/pkg/metrics"
	"uptime-monitor/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const readyTimeout = 2 * time.Second

type healthStatus struct {
	Status string `json:"status"`
}

// RegisterRoutes builds the api process router.
func RegisterRoutes(c *Container) chi.Router {
	apiMetrics := metrics.NewAPIMetrics(c.Registry)

	monitorSvc := monitor.NewService(c.Store)
	monitorHandler := monitor.NewHandler(monitorSvc, c.Logger)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.Config.API.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(middle.Metrics(apiMetrics))
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(c.Store))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(c.Registry))

	r.Mount("/monitors", monitor.Routes(monitorHandler))

	return r
}

// RegisterWorkerRoutes builds the small router served on the worker metrics port.
func RegisterWorkerRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(c.Store))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(c.Registry))

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	utils.WriteJSON(w, http.StatusOK, reqID, "alive", healthStatus{Status: "ok"})
}

func readyz(store monitor.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			utils.FromAppError(w, reqID, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, reqID, "ready", healthStatus{Status: "ok"})
	}
}
