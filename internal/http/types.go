package http

import (
	"net/http"

	"github.com/rallyrank/rallyrank/internal/config"
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/rallyrank/rallyrank/internal/metrics"
	"github.com/rallyrank/rallyrank/internal/notifier"
	"github.com/rallyrank/rallyrank/internal/processor"
	"github.com/rallyrank/rallyrank/internal/pubsub"
)

type Server struct {
	Store          league.LeagueStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
