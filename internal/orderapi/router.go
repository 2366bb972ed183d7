package orderapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/oschwald/geoip2-golang"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/pizzaorder/internal/middleware"
	"github.com/yanizio/pizzaorder/internal/requestinfo"
)

// RouterOptions tunes the middleware chain.
type RouterOptions struct {
	CORSOrigins []string
	ForceHTTPS  bool
	Log         *zap.SugaredLogger
	Geo         *geoip2.Reader // optional country lookup
}

// NewRouter mounts the order endpoints, /healthz, and /metrics.
func NewRouter(h *Handler, opts RouterOptions) chi.Router {
	log := opts.Log
	if log == nil {
		log = zap.S()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestinfo.Tag(opts.Geo))
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	if opts.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}
	r.Use(middleware.Security)

	// The order form may run in a browser on another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/order", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/recent", h.RecentOrders)
	})

	return r
}
