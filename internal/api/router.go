package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/rohits-web03/minitracker/docs"
	"github.com/rohits-web03/minitracker/internal/api/handlers"
	"github.com/rohits-web03/minitracker/internal/api/middleware"
	"github.com/rohits-web03/minitracker/internal/profile"
	"github.com/rohits-web03/minitracker/internal/swarm"
)

type Deps struct {
	Tracker  *swarm.Service
	Profiles *profile.Service
	// Archive is optional; without it the archive endpoint answers 503.
	Archive handlers.Archiver
	Log     zerolog.Logger
	Cors    cors.Options
	// Gatherer backs /metrics. Defaults to the global prometheus registry.
	Gatherer prometheus.Gatherer

	TickRateLimit float64
	TickRateBurst int
}

func SetupRouter(d Deps) http.Handler {
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /docs/", httpSwagger.WrapHandler)

	// ---------- TRACKER ----------
	tracker := handlers.NewTracker(d.Tracker, d.Archive, d.Log)
	tickLimit := middleware.RateLimit(d.TickRateLimit, d.TickRateBurst)

	mux.HandleFunc("GET /api/v1/tracker/files", tracker.ListFiles)
	mux.HandleFunc("POST /api/v1/tracker/files", tracker.RegisterFile)
	mux.HandleFunc("POST /api/v1/tracker/join", tracker.Join)
	mux.HandleFunc("POST /api/v1/tracker/leave", tracker.Leave)
	mux.HandleFunc("GET /api/v1/tracker/peers/{fileId}", tracker.ListPeers)
	mux.Handle("POST /api/v1/tracker/tick", tickLimit(http.HandlerFunc(tracker.Tick)))
	mux.HandleFunc("GET /api/v1/tracker/activity/{fileId}", tracker.ListActivity)
	mux.HandleFunc("POST /api/v1/tracker/activity/{fileId}/archive", tracker.ArchiveActivity)

	// ---------- USERS ----------
	users := handlers.NewUsers(d.Profiles, d.Log)
	mux.HandleFunc("POST /api/v1/users", users.RegisterUser)
	mux.HandleFunc("GET /api/v1/users/{id}", users.GetProfile)

	d.Log.Debug().Msg("Router initialized")

	var handler http.Handler = middleware.Logger(d.Log)(mux)
	handler = middleware.Identity(handler)
	handler = cors.New(d.Cors).Handler(handler)
	handler = middleware.Recoverer(d.Log)(handler)
	return otelhttp.NewHandler(handler, "tracker",
		otelhttp.WithFilter(func(r *http.Request) bool {
			p := r.URL.Path
			return p != "/metrics" && p != "/health" && !strings.HasPrefix(p, "/docs")
		}),
	)
}
