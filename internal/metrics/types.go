package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for a build run.
// Defining them in one place keeps naming and labeling consistent.
type Service struct {
	APIRequests          prometheus.Counter
	CacheHits            *prometheus.CounterVec
	CacheMisses          *prometheus.CounterVec
	TournamentsCollected prometheus.Counter
	RostersFetched       prometheus.Counter
	RosterFetchFailures  prometheus.Counter
	BuildDurationSeconds prometheus.Gauge
}
