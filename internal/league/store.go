package league

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new LeagueStore. Players created through ResolvePlayer and
// ratings reset through ResetRatings use initialRating.
func New(db *sql.DB, initialRating int) LeagueStore {
	return &store{
		db:            db,
		initialRating: initialRating,
	}
}

func (s *store) CreateGroup(name string) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := &Group{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().Unix(),
	}

	res, err := s.db.Exec(`INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)`,
		group.ID, group.Name, group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("group insert affected no rows")
	}

	log.Info("Created group", "id", group.ID, "name", name)
	return group, nil
}

func (s *store) GetGroup(groupID string) (*Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var group Group
	err := s.db.QueryRow(`SELECT id, name, created_at FROM groups WHERE id = ?`, groupID).
		Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// ResolvePlayer is idempotent by name within a group: recording a match with
// a name that already exists reuses the player instead of creating a
// duplicate.
func (s *store) ResolvePlayer(groupID, name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var player Player
	err := s.db.QueryRow(
		`SELECT id, group_id, name, rating, created_at FROM players WHERE group_id = ? AND name = ?`,
		groupID, name,
	).Scan(&player.ID, &player.GroupID, &player.Name, &player.Rating, &player.CreatedAt)
	if err == nil {
		return &player, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up player %q: %w", name, err)
	}

	player = Player{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		Name:      name,
		Rating:    s.initialRating,
		CreatedAt: time.Now().Unix(),
	}
	res, err := s.db.Exec(
		`INSERT INTO players (id, group_id, name, rating, created_at) VALUES (?, ?, ?, ?, ?)`,
		player.ID, player.GroupID, player.Name, player.Rating, player.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create player %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("player insert affected no rows")
	}

	log.Info("Created player", "id", player.ID, "name", name, "group", groupID)
	return &player, nil
}

func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var player Player
	err := s.db.QueryRow(
		`SELECT id, group_id, name, rating, created_at FROM players WHERE id = ?`, playerID,
	).Scan(&player.ID, &player.GroupID, &player.Name, &player.Rating, &player.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

func (s *store) GetPlayers(groupID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, group_id, name, rating, created_at FROM players WHERE group_id = ? ORDER BY created_at, name`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func (s *store) GetRating(playerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rating int
	err := s.db.QueryRow(`SELECT rating FROM players WHERE id = ?`, playerID).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPlayerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}

// AdjustRating is a single-statement relative increment. Reading the old
// value first and writing back an absolute rating would race with a
// concurrent update; the RETURNING clause gives back the post-update rating
// from the same atomic step.
func (s *store) AdjustRating(playerID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rating int
	err := s.db.QueryRow(
		`UPDATE players SET rating = rating + ? WHERE id = ? RETURNING rating`,
		delta, playerID,
	).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPlayerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust rating: %w", err)
	}
	return rating, nil
}

func (s *store) ResetRatings(groupID string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE players SET rating = ? WHERE group_id = ?`, rating, groupID)
	if err != nil {
		return fmt.Errorf("failed to reset ratings: %w", err)
	}
	return nil
}

func (s *store) CreateMatch(match *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	if match.CreatedAt == 0 {
		match.CreatedAt = time.Now().Unix()
	}
	if match.Date == 0 {
		match.Date = match.CreatedAt
	}

	res, err := s.db.Exec(`
		INSERT INTO matches (id, group_id, date, created_at, team_a_score, team_b_score, inexact_score, ranked, court)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		match.ID, match.GroupID, match.Date, match.CreatedAt,
		match.TeamAScore, match.TeamBScore, match.InexactScore, match.Ranked, match.Court,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("match insert affected no rows")
	}
	return nil
}

func (s *store) CreateParticipants(matchID string, participants []Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO match_players (id, match_id, player_id, side, old_rating, new_rating)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare participant insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range participants {
		res, err := stmt.Exec(uuid.New().String(), matchID, p.PlayerID, p.Side, p.OldRating, p.NewRating)
		if err != nil {
			return fmt.Errorf("failed to create participant: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("participant insert affected no rows")
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit participants: %w", err)
	}
	return nil
}

func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match Match
	err := s.db.QueryRow(`
		SELECT id, group_id, date, created_at, team_a_score, team_b_score, inexact_score, ranked, court
		FROM matches WHERE id = ?`, matchID,
	).Scan(
		&match.ID, &match.GroupID, &match.Date, &match.CreatedAt,
		&match.TeamAScore, &match.TeamBScore, &match.InexactScore, &match.Ranked, &match.Court,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	if err := s.loadParticipants(map[string]*Match{match.ID: &match}); err != nil {
		return nil, err
	}
	return &match, nil
}

// ListMatches returns the group's matches with participants, ordered by play
// date ascending (creation time breaks date ties). This is the order the
// rating replay folds over.
func (s *store) ListMatches(groupID string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, group_id, date, created_at, team_a_score, team_b_score, inexact_score, ranked, court
		FROM matches WHERE group_id = ?
		ORDER BY date ASC, created_at ASC`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	byID := make(map[string]*Match)
	for rows.Next() {
		var match Match
		err := rows.Scan(
			&match.ID, &match.GroupID, &match.Date, &match.CreatedAt,
			&match.TeamAScore, &match.TeamBScore, &match.InexactScore, &match.Ranked, &match.Court,
		)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, &match)
		byID[match.ID] = &match
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	if err := s.loadParticipants(byID); err != nil {
		return nil, err
	}
	return matches, nil
}

// loadParticipants fills Participants for every match in the map, preserving
// insertion (slot) order via rowid.
func (s *store) loadParticipants(matches map[string]*Match) error {
	for id, match := range matches {
		rows, err := s.db.Query(`
			SELECT match_id, player_id, side, old_rating, new_rating
			FROM match_players WHERE match_id = ? ORDER BY rowid`, id,
		)
		if err != nil {
			return fmt.Errorf("failed to load participants: %w", err)
		}

		for rows.Next() {
			var p Participant
			var playerID sql.NullString
			var oldRating, newRating sql.NullInt64
			if err := rows.Scan(&p.MatchID, &playerID, &p.Side, &oldRating, &newRating); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan participant: %w", err)
			}
			if playerID.Valid {
				p.PlayerID = &playerID.String
			}
			if oldRating.Valid {
				v := int(oldRating.Int64)
				p.OldRating = &v
			}
			if newRating.Valid {
				v := int(newRating.Int64)
				p.NewRating = &v
			}
			match.Participants = append(match.Participants, p)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate participants: %w", err)
		}
		rows.Close()
	}
	return nil
}

func (s *store) DeleteMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM match_players WHERE match_id = ?`, matchID); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM matches WHERE id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMatchNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match deletion: %w", err)
	}
	log.Info("Deleted match", "matchID", matchID)
	return nil
}

func (s *store) UpdateRatingAudit(matchID, playerID string, oldRating, newRating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE match_players SET old_rating = ?, new_rating = ?
		WHERE match_id = ? AND player_id = ?`,
		oldRating, newRating, matchID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rating audit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no participant row for match %s player %s", matchID, playerID)
	}
	return nil
}

func (s *store) ClearRatingAudit(groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE match_players SET old_rating = NULL, new_rating = NULL
		WHERE match_id IN (SELECT id FROM matches WHERE group_id = ?)`, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear rating audit: %w", err)
	}
	return nil
}

func (s *store) Leaderboard(groupID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, group_id, name, rating, created_at FROM players WHERE group_id = ? ORDER BY rating DESC, name ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]Player, error) {
	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Rating, &p.CreatedAt); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}
