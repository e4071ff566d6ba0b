package metrics

import (
	"bytes"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var _ Metrics = (*Service)(nil)

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		APIRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waterpolo_api_requests_total",
			Help: "The total number of requests sent to the Leverade API.",
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waterpolo_cache_hits_total",
			Help: "The total number of cache loads that found a file, per tier.",
		}, []string{"tier"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "waterpolo_cache_misses_total",
			Help: "The total number of cache loads that found nothing, per tier.",
		}, []string{"tier"}),
		TournamentsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waterpolo_tournaments_collected_total",
			Help: "The total number of tournaments collected from the API.",
		}),
		RostersFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waterpolo_rosters_fetched_total",
			Help: "The total number of team rosters fetched from the API.",
		}),
		RosterFetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waterpolo_roster_fetch_failures_total",
			Help: "The total number of roster fetches that failed and fell back to an empty roster.",
		}),
		BuildDurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "waterpolo_build_duration_seconds",
			Help: "The duration of the last site build in seconds.",
		}),
	}

	reg.MustRegister(
		s.APIRequests,
		s.CacheHits,
		s.CacheMisses,
		s.TournamentsCollected,
		s.RostersFetched,
		s.RosterFetchFailures,
		s.BuildDurationSeconds,
	)

	return s
}

func (s *Service) IncAPIRequest() {
	s.APIRequests.Inc()
}

func (s *Service) IncCacheHit(tier string) {
	s.CacheHits.WithLabelValues(tier).Inc()
}

func (s *Service) IncCacheMiss(tier string) {
	s.CacheMisses.WithLabelValues(tier).Inc()
}

func (s *Service) IncTournamentCollected() {
	s.TournamentsCollected.Inc()
}

func (s *Service) IncRosterFetched() {
	s.RostersFetched.Inc()
}

func (s *Service) IncRosterFetchFailed() {
	s.RosterFetchFailures.Inc()
}

func (s *Service) SetBuildDuration(seconds float64) {
	s.BuildDurationSeconds.Set(seconds)
}

// WriteTextfile gathers all registered metrics and writes them in the
// Prometheus text exposition format, suitable for the node-exporter
// textfile collector. A batch run has no server to scrape.
func WriteTextfile(path string, gatherer ...prometheus.Gatherer) error {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	families, err := gath.Gather()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
