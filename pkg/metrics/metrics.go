package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for MatchRequests.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preset_match_requests_total",
			Help: "Total number of compatibility matching calls",
		},
		[]string{"matcher", "outcome"},
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "preset_match_duration_seconds",
			Help:    "Duration of compatibility matching calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"matcher"},
	)

	MatchCandidatesScored = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "preset_match_candidates_scored",
			Help:    "Number of candidates scored per matching call",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"matcher"},
	)

	MatchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preset_match_cache_lookups_total",
			Help: "Match cache lookups by result",
		},
		[]string{"matcher", "result"},
	)

	GearOffersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preset_gear_offers_created_total",
			Help: "Gear offers created, by origin",
		},
		[]string{"origin"},
	)
)
