package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	emailsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mailmate_emails_processed_total",
		Help: "Emails successfully enriched by the processing pipeline.",
	})

	emailsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mailmate_emails_failed_total",
		Help: "Emails whose enrichment failed and was left for retry.",
	})

	processingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mailmate_processing_duration_seconds",
		Help:    "Wall time of a full per-user enrichment job.",
		Buckets: prometheus.DefBuckets,
	})
)
