package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the distribution pipeline. Label values are closed sets
// (outcome names and error kinds), never requester-supplied strings.
var (
	SubmissionAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stardrop",
		Subsystem: "submitter",
		Name:      "attempts_total",
		Help:      "Transaction submission attempts by classified result.",
	}, []string{"result"})

	Distributions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stardrop",
		Subsystem: "orchestrator",
		Name:      "distributions_total",
		Help:      "Completed distribution requests by outcome.",
	}, []string{"outcome"})

	CooldownRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stardrop",
		Subsystem: "cooldown",
		Name:      "rejections_total",
		Help:      "Requests rejected by the per-requester cooldown.",
	})

	FloodRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stardrop",
		Subsystem: "ingress",
		Name:      "flood_rejections_total",
		Help:      "Requests rejected by the ingress rate limiter.",
	})
)
