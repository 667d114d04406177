package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_served_total",
			Help: "Total number of predictions served, by outcome",
		},
		[]string{"outcome"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_errors_total",
			Help: "Total number of failed prediction requests, by error code",
		},
		[]string{"error_code"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "prediction_duration_seconds",
			Help: "Duration of prediction requests in seconds",
		},
		[]string{"transport"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prediction_cache_hits_total",
			Help: "Total number of prediction cache hits",
		},
	)
)
