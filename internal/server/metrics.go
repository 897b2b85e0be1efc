package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// adoption requests by the status they moved to
	requestTransitions *prometheus.CounterVec

	imageUploads *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) *metrics {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &metrics{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uprala",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by method and status",
			},
			[]string{"method", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "uprala",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method"},
		),
		requestTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uprala",
				Subsystem: "adoption",
				Name:      "requests_total",
				Help:      "Adoption requests created, approved and rejected",
			},
			[]string{"status"},
		),
		imageUploads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uprala",
				Subsystem: "events",
				Name:      "image_uploads_total",
				Help:      "Event image uploads by outcome",
			},
			[]string{"outcome"},
		),
	}
}
