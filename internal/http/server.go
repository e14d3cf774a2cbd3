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

func NewServer(store league.LeagueStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /schedule/next", Chain(s.ScheduleNextHandler(), paramsMiddleware))
	s.Router.Handle("POST /schedule/round", Chain(s.ScheduleRoundHandler(), paramsMiddleware))
	s.Router.Handle("POST /groups", Chain(s.CreateGroupHandler(), paramsMiddleware))
	s.Router.Handle("GET /groups/{id}/players", Chain(s.GroupPlayersHandler(), paramsMiddleware))
	s.Router.Handle("GET /groups/{id}/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.RecordMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{id}", Chain(s.DeleteMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /replay", Chain(s.ReplayHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-recorded", Chain(s.MatchRecordedPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
