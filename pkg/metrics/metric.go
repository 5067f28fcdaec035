package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOptimal     = "optimal"
	OutcomeInterrupted = "interrupted"
	OutcomeDiverged    = "diverged"
	OutcomeError       = "error"

	OutcomeRoute         = "route"
	OutcomeInfeasible    = "infeasible_start"
	OutcomeStartNotFound = "start_not_found"
)

var (
	// Registry. dedicated registry, nothing is registered on the global default one.
	Registry = prometheus.NewRegistry()

	SolverRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tsp_solver_runs_total", Help: "Exact tour solver runs by outcome."},
		[]string{"outcome"},
	)
	NodesExpanded = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "tsp_nodes_expanded", Help: "Search nodes expanded per solve.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 14)},
	)
	PrunedBranches = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "tsp_pruned_branches", Help: "Branches pruned per solve.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 14)},
	)
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "tsp_solve_duration_seconds", Help: "Branch and bound wall time.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12)},
	)
	BudgetRoutes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "budget_routes_total", Help: "Budget route selections by outcome."},
		[]string{"outcome"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
)

var regOnce sync.Once

func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(SolverRuns, NodesExpanded, PrunedBranches, SolveDuration, BudgetRoutes,
			HTTPRequests, HTTPDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func ObserveTour(outcome string, nodesExpanded, pruned int64, elapsed time.Duration) {
	SolverRuns.WithLabelValues(outcome).Inc()
	NodesExpanded.Observe(float64(nodesExpanded))
	PrunedBranches.Observe(float64(pruned))
	SolveDuration.Observe(elapsed.Seconds())
}

func ObserveBudget(outcome string) {
	BudgetRoutes.WithLabelValues(outcome).Inc()
}

func ObserveRequest(method, path, status string, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, path, status).Inc()
	HTTPDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
