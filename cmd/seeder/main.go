package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/courtsidehq/courtside/internal/players"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"DB_PATH": "courtside.db"}
	if value, ok := os.LookupEnv("DB_PATH"); ok {
		config["DB_PATH"] = value
	}
	if value, ok := os.LookupEnv("DATABASE_URL"); ok {
		config["DATABASE_URL"] = value
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	dsn := "file:" + cfg["DB_PATH"]
	if cfg["DATABASE_URL"] != "" {
		dsn = cfg["DATABASE_URL"]
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %s", err)
	}
	log.Info("Successfully connected to the database.")

	const numPlayers = 40

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	playerIDs := make([]int64, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		tgID := int64(900000 + i)
		username := fmt.Sprintf("seed_player_%02d", i)
		displayName := fmt.Sprintf("Seeder Player %02d", i)
		rating := 1500.0 + float64(rand.Intn(600)) - 300.0

		res, err := tx.Exec(`
			INSERT INTO players (tg_id, username, display_name, current_rating)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(tg_id) DO UPDATE SET current_rating = excluded.current_rating`,
			tgID, username, displayName, rating)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert dummy player %s: %s", displayName, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to read inserted player id: %s", err)
		}
		playerIDs = append(playerIDs, id)
	}
	log.Info("Ensured dummy players exist.", "total", numPlayers)

	// One stats row per player per mode so every rating table has content.
	valueStrings := make([]string, 0, numPlayers)
	valueArgs := make([]interface{}, 0, numPlayers*7)
	for _, mode := range players.Modes() {
		valueStrings = valueStrings[:0]
		valueArgs = valueArgs[:0]
		for _, id := range playerIDs {
			games := rand.Intn(30)
			wins := 0
			if games > 0 {
				wins = rand.Intn(games + 1)
			}
			valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?)")
			valueArgs = append(valueArgs,
				id,
				mode.Code,
				games,
				wins,
				games-wins,
				rand.Intn(200)-100, // delta_points
				rand.Intn(10)-5,    // delta_sets
			)
		}
		stmt := fmt.Sprintf(`
			INSERT INTO player_mode_stats (player_id, mode, games_played, wins_games, losses_games, delta_points, delta_sets)
			VALUES %s;`, strings.Join(valueStrings, ","))
		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert stats for mode %s: %s", mode.Code, err)
		}
		log.Info("Inserted mode stats", "mode", mode.Code, "players", len(playerIDs))
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}
	log.Info("Seeding complete.")
}
