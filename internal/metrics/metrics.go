package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tracker",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5},
	}, []string{"method", "path"})

	FilesRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "files_registered_total",
		Help:      "Total number of files registered with the tracker.",
	})

	PeersJoinedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "peers_joined_total",
		Help:      "Total number of peers that joined a swarm, by initial status.",
	}, []string{"status"})

	PeersLeftTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "peers_left_total",
		Help:      "Total number of peers that left a swarm.",
	})

	TicksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "ticks_total",
		Help:      "Total number of simulation ticks executed.",
	})

	TickLeechers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracker",
		Name:      "tick_leechers",
		Help:      "Number of leechers in the snapshot of the most recent tick.",
	})

	TickSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "tick_skipped_peers_total",
		Help:      "Peers skipped by a tick because they left or changed concurrently.",
	})

	CompletionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "completions_total",
		Help:      "Total number of leechers that became seeders.",
	})

	ActivityFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "activity_failures_total",
		Help:      "Activity records that could not be delivered, by sink.",
	}, []string{"sink"})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		FilesRegisteredTotal,
		PeersJoinedTotal,
		PeersLeftTotal,
		TicksTotal,
		TickLeechers,
		TickSkippedTotal,
		CompletionsTotal,
		ActivityFailuresTotal,
	)
}
