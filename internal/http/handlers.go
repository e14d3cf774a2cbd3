package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/rallyrank/rallyrank/internal/processor"
	"github.com/rallyrank/rallyrank/internal/scheduler"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// scheduleRequest is the shared body for the scheduling endpoints. Zero
// values for team size and court count fall back to the configured defaults.
type scheduleRequest struct {
	Players    []scheduler.Player `json:"players"`
	Matches    []scheduler.Match  `json:"matches"`
	TeamSize   int                `json:"team_size"`
	CourtCount int                `json:"court_count"`
	Count      int                `json:"count"`
}

func (s *Server) decodeScheduleRequest(r *http.Request) (scheduler.Session, int, int, error) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return scheduler.Session{}, 0, 0, fmt.Errorf("invalid request body: %w", err)
	}
	if req.TeamSize == 0 {
		req.TeamSize = s.Cfg.Scheduler.TeamSize
	}
	if req.CourtCount == 0 {
		req.CourtCount = s.Cfg.Scheduler.CourtCount
	}
	if req.Count == 0 {
		req.Count = 1
	}
	session := scheduler.Session{
		Players:  req.Players,
		Matches:  req.Matches,
		TeamSize: req.TeamSize,
	}
	return session, req.CourtCount, req.Count, nil
}

func (s *Server) ScheduleNextHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, courtCount, _, err := s.decodeScheduleRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		match, err := scheduler.NextMatch(session, courtCount)
		if err != nil {
			if errors.Is(err, scheduler.ErrNoFeasibleMatch) {
				s.Metrics.IncSchedulesInfeasible()
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.Metrics.IncSchedulesGenerated()
		log.Info("Proposed next match", "match", scheduler.FormatMatch(session, match), "court", match.Court)
		respondJSON(w, http.StatusOK, match)
	}
}

func (s *Server) ScheduleRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, courtCount, count, err := s.decodeScheduleRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		matches, err := scheduler.GenerateMatches(session, courtCount, count)
		if err != nil {
			if errors.Is(err, scheduler.ErrNoFeasibleMatch) {
				s.Metrics.IncSchedulesInfeasible()
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.Metrics.IncSchedulesGenerated()
		log.Info("Proposed round", "matches", len(matches))
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) CreateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name    string   `json:"name"`
			Players []string `json:"players"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "Group name is required", http.StatusBadRequest)
			return
		}

		group, err := s.Store.CreateGroup(req.Name)
		if err != nil {
			log.Error("Failed to create group", "error", err, "name", req.Name)
			http.Error(w, "Failed to create group", http.StatusInternalServerError)
			return
		}

		players := make([]league.Player, 0, len(req.Players))
		for _, name := range req.Players {
			player, err := s.Store.ResolvePlayer(group.ID, name)
			if err != nil {
				log.Error("Failed to create player", "error", err, "name", name)
				http.Error(w, "Failed to create player", http.StatusInternalServerError)
				return
			}
			players = append(players, *player)
		}

		log.Info("Created group", "group", group.Name, "players", len(players))
		respondJSON(w, http.StatusCreated, struct {
			Group   *league.Group   `json:"group"`
			Players []league.Player `json:"players"`
		}{group, players})
	}
}

func (s *Server) GroupPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.PathValue("id")
		if _, err := s.Store.GetGroup(groupID); err != nil {
			s.respondStoreError(w, err, "Failed to get group")
			return
		}

		players, err := s.Store.GetPlayers(groupID)
		if err != nil {
			s.respondStoreError(w, err, "Failed to get players")
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

// LeaderboardHandler serves the group standings, best rating first.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.PathValue("id")
		if _, err := s.Store.GetGroup(groupID); err != nil {
			s.respondStoreError(w, err, "Failed to get group")
			return
		}

		standings, err := s.Store.Leaderboard(groupID)
		if err != nil {
			s.respondStoreError(w, err, "Failed to get leaderboard")
			return
		}
		respondJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params processor.RecordMatchParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		match, err := s.Processor.RecordMatch(params, isDryRun)
		if err != nil {
			s.respondStoreError(w, err, "Failed to record match")
			return
		}
		respondJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := r.URL.Query().Get("group_id")
		if groupID == "" {
			http.Error(w, "group_id is required", http.StatusBadRequest)
			return
		}

		matches, err := s.Store.ListMatches(groupID)
		if err != nil {
			s.respondStoreError(w, err, "Failed to get matches")
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("id")
		replayAfter := r.URL.Query().Get("replay") == "true"
		isDryRun := isDryRunFromContext(r)

		if err := s.Processor.RemoveMatch(matchID, replayAfter, isDryRun); err != nil {
			s.respondStoreError(w, err, "Failed to remove match")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Match removed.")
	}
}

func (s *Server) ReplayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GroupID string `json:"group_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		if err := s.Processor.Recalculate(req.GroupID, isDryRun); err != nil {
			s.respondStoreError(w, err, "Failed to replay ratings")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Replay completed.")
	}
}

// MatchRecordedPushHandler receives the match-recorded event back from the
// pubsub push subscription and posts the group's refreshed standings.
func (s *Server) MatchRecordedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match-recorded message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		match := league.Match{}
		if err := s.pubsub.ProcessMessage(rawData, &match); err != nil {
			log.Error("Failed to decode match payload", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		group, err := s.Store.GetGroup(match.GroupID)
		if err != nil {
			s.respondStoreError(w, err, "Failed to get group")
			return
		}
		standings, err := s.Store.Leaderboard(match.GroupID)
		if err != nil {
			s.respondStoreError(w, err, "Failed to get leaderboard")
			return
		}
		if err := s.Notifier.SendLeaderboard(group.Name, standings, isDryRun); err != nil {
			log.Error("Failed to send leaderboard", "error", err, "group", group.Name)
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondStoreError maps store sentinel errors to HTTP statuses.
func (s *Server) respondStoreError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, league.ErrGroupNotFound),
		errors.Is(err, league.ErrPlayerNotFound),
		errors.Is(err, league.ErrMatchNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error(msg, "error", err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
