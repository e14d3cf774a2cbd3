package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed implementation of Metrics.
type Service struct {
	MatchesRecorded     prometheus.Counter
	SchedulesGenerated  prometheus.Counter
	SchedulesInfeasible prometheus.Counter
	RatingReplays       prometheus.Counter
	RecordDuration      prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
