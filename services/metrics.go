package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "views_predictor_predictions_served_total",
		Help: "Total number of view estimates returned, by model.",
	}, []string{"model"})
	predictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "views_predictor_predictions_failed_total",
		Help: "Total number of prediction failures, by stage.",
	}, []string{"stage"})
	predictionsCached = promauto.NewCounter(prometheus.CounterOpts{
		Name: "views_predictor_cache_hits_total",
		Help: "Total number of predictions answered from Redis.",
	})
	predictionsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "views_predictor_predictions_published_total",
		Help: "Total number of prediction events published to Redis.",
	})
	predictDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "views_predictor_model_duration_seconds",
		Help:    "Duration of a single model predict call.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
	})
	estimatedViews = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "views_predictor_estimated_views",
		Help:    "Distribution of estimated view counts.",
		Buckets: prometheus.ExponentialBuckets(100, 10, 7),
	})
)
