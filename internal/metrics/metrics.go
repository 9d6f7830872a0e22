package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmobot_search_outcomes_total",
			Help: "Listing searches by outcome (found or degraded)",
		},
		[]string{"outcome"},
	)

	SearchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inmobot_search_cache_hits_total",
			Help: "Listing searches answered from the query cache",
		},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inmobot_search_provider_duration_seconds",
			Help:    "Latency of calls to the web search provider",
			Buckets: prometheus.DefBuckets,
		},
	)

	ChatCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmobot_chat_completions_total",
			Help: "Chat completion calls by result",
		},
		[]string{"result"},
	)

	ProfilesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmobot_profiles_created_total",
			Help: "Search profiles stored, by backend",
		},
		[]string{"store"},
	)

	HistoryWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inmobot_history_writes_total",
			Help: "Searches recorded by /rank, by result",
		},
		[]string{"result"},
	)

	SuggestionsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inmobot_suggestions_served_total",
			Help: "Property suggestions returned by /rank",
		},
	)
)

const (
	OutcomeFound    = "found"
	OutcomeDegraded = "degraded"

	ResultOK    = "ok"
	ResultError = "error"
)
