package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rallyrank/rallyrank/internal/database"
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/rallyrank/rallyrank/internal/rating"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "seed.db",
		"MIGRATIONS_DIR":    "./migrations",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := league.New(db, 1500)

	group, err := store.CreateGroup("Seeded league")
	if err != nil {
		log.Fatalf("Failed to create group: %s", err)
	}
	log.Info("Created group", "id", group.ID)

	names := []string{
		"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D",
		"Seeder Player E", "Seeder Player F", "Seeder Player G", "Seeder Player H",
	}
	playerIDs := make([]string, 0, len(names))
	for _, name := range names {
		player, err := store.ResolvePlayer(group.ID, name)
		if err != nil {
			log.Fatalf("Failed to create player %s: %s", name, err)
		}
		playerIDs = append(playerIDs, player.ID)
	}
	log.Info("Ensured seed players exist.", "count", len(playerIDs))

	const batchSize = 100
	const numMatches = 2000

	log.Info("Preparing to insert seed matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	matchValues := make([]string, 0, batchSize)
	matchArgs := make([]interface{}, 0, batchSize*9)
	playerValues := make([]string, 0, batchSize*4)
	playerArgs := make([]interface{}, 0, batchSize*4*4)

	flush := func(completed int) {
		matchStmt := fmt.Sprintf(`
			INSERT INTO matches (id, group_id, date, created_at, team_a_score, team_b_score, inexact_score, ranked, court)
			VALUES %s;`, strings.Join(matchValues, ","))
		if _, err := tx.Exec(matchStmt, matchArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute match batch insert: %s", err)
		}

		playerStmt := fmt.Sprintf(`
			INSERT INTO match_players (id, match_id, player_id, side)
			VALUES %s;`, strings.Join(playerValues, ","))
		if _, err := tx.Exec(playerStmt, playerArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute participant batch insert: %s", err)
		}

		matchValues = matchValues[:0]
		matchArgs = matchArgs[:0]
		playerValues = playerValues[:0]
		playerArgs = playerArgs[:0]
		log.Info("Inserted batch", "completed", completed, "total", numMatches)
	}

	for i := 0; i < numMatches; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		matchID := uuid.NewString()

		// Pick four distinct players for a doubles match.
		lineup := rand.Perm(len(playerIDs))[:4]
		scoreA, scoreB := 21, rand.Intn(20)
		if rand.Intn(2) == 0 {
			scoreA, scoreB = scoreB, scoreA
		}

		matchValues = append(matchValues, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		matchArgs = append(matchArgs,
			matchID,
			group.ID,
			matchTime.Unix(),
			matchTime.Unix(),
			scoreA,
			scoreB,
			0, // inexact_score
			1, // ranked
			rand.Intn(2),
		)

		for slot, idx := range lineup {
			side := "A"
			if slot >= 2 {
				side = "B"
			}
			playerValues = append(playerValues, "(?, ?, ?, ?)")
			playerArgs = append(playerArgs, uuid.NewString(), matchID, playerIDs[idx], side)
		}

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			flush(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}
	log.Info("Successfully inserted all seed matches.", "duration", time.Since(startTime))

	// Replay the full history so the seeded ratings are consistent.
	engine := rating.New(store, rating.DefaultConfig())
	if err := engine.Replay(group.ID); err != nil {
		log.Fatalf("Failed to replay seeded history: %s", err)
	}

	standings, err := store.Leaderboard(group.ID)
	if err != nil {
		log.Fatalf("Failed to load standings: %s", err)
	}
	for i, p := range standings {
		log.Info("Standing", "rank", i+1, "player", p.Name, "rating", p.Rating)
	}
	log.Info("Seeding finished.", "group", group.ID)
}
