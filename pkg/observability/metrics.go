package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReceiptsProcessed tracks total receipts processed per strategy and outcome
	ReceiptsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipts_processed_total",
			Help: "Total number of receipts processed",
		},
		[]string{"strategy", "outcome"},
	)

	// FieldsDefaulted tracks fields that fell back to their sentinel values
	FieldsDefaulted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipts_fields_defaulted_total",
			Help: "Number of extracted fields that fell back to a default value",
		},
		[]string{"field"},
	)

	// ProcessDuration tracks per-receipt processing duration
	ProcessDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "receipts_process_duration_seconds",
			Help:    "Receipt processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)
)
