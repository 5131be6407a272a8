// Package metrics exposes Prometheus collectors for the arena server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchesCreated counts matches created since process start, by ruleset.
	MatchesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_matches_created_total",
		Help: "Matches created since process start, labelled by ruleset.",
	}, []string{"ruleset"})

	// PlacementsTotal counts placement attempts by outcome reason code.
	PlacementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_placements_total",
		Help: "Tile placement attempts, labelled by outcome (ok, occupied, out_of_bounds, not_your_turn, match_over, bad_symbol).",
	}, []string{"outcome"})

	// ActiveMatches tracks how many matches are currently held in memory.
	ActiveMatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_active_matches",
		Help: "Number of matches currently held in memory.",
	})

	// MatchesFinished counts matches that reached a terminal state, by result.
	MatchesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_matches_finished_total",
		Help: "Matches that reached a terminal state, labelled by result (win, draw).",
	}, []string{"result"})

	// MatchDuration observes wall-clock duration of finished matches in seconds.
	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arena_match_duration_seconds",
		Help:    "Wall-clock duration of finished matches.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	// ArchiveFailures counts failed attempts to write finished matches to the archive.
	ArchiveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_archive_failures_total",
		Help: "Failed attempts to archive finished matches.",
	})

	// AgentRetries counts invalid agent moves that triggered a retry prompt.
	AgentRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_agent_retries_total",
		Help: "Invalid agent moves that triggered a retry, labelled by agent kind.",
	}, []string{"agent"})
)
