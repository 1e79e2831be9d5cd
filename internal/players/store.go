package players

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned when no player matches the lookup.
var ErrNotFound = errors.New("player not found")

// searchLimit caps the number of rows returned by Search.
const searchLimit = 20

// New creates a new player Store backed by db.
func New(db *sql.DB) Store {
	return &store{db: db}
}

// Register inserts a new player or updates the username/display name of an
// existing one, keyed by the Telegram user id. The stored rating is never
// touched here.
func (s *store) Register(params RegisterParams) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return Player{}, err
	}

	_, err = tx.Exec(`
		INSERT INTO players (tg_id, username, display_name)
		VALUES (?, ?, ?)
		ON CONFLICT(tg_id) DO UPDATE SET
			username = excluded.username,
			display_name = excluded.display_name;
	`, params.TgID, params.Username, params.DisplayName)
	if err != nil {
		tx.Rollback()
		return Player{}, fmt.Errorf("upsert player: %w", err)
	}

	player, err := scanPlayer(tx.QueryRow(selectPlayer+" WHERE tg_id = ?", params.TgID))
	if err != nil {
		tx.Rollback()
		return Player{}, err
	}

	if err := tx.Commit(); err != nil {
		return Player{}, err
	}
	log.Debug("Registered player", "tg_id", params.TgID, "player_id", player.ID)
	return player, nil
}

// GetByTgID looks up a player by their Telegram user id.
func (s *store) GetByTgID(tgID int64) (Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scanPlayer(s.db.QueryRow(selectPlayer+" WHERE tg_id = ?", tgID))
}

// List returns all players ordered by rating descending, id ascending.
func (s *store) List() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectPlayer + " ORDER BY current_rating DESC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

// Search performs a case-insensitive partial match against display name,
// username, or the Telegram id rendered as text. Results are ordered by
// display name and capped at 20 rows.
func (s *store) Search(query string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + query + "%"
	rows, err := s.db.Query(selectPlayer+`
		WHERE LOWER(display_name) LIKE LOWER(?)
		   OR LOWER(COALESCE(username, '')) LIKE LOWER(?)
		   OR CAST(tg_id AS TEXT) LIKE ?
		ORDER BY display_name ASC
		LIMIT ?
	`, pattern, pattern, pattern, searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

// RatingTable joins players with their per-mode stats. Players without a
// stats row for the mode are excluded.
func (s *store) RatingTable(mode string) ([]RatingRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT
			p.id, p.display_name, p.username, p.gender, p.current_rating, p.rating_letter,
			ps.games_played, ps.wins_games, ps.draws_games, ps.losses_games,
			ps.wins_sets, ps.losses_sets, ps.points_scored, ps.points_conceded,
			ps.delta_points, ps.delta_sets
		FROM players p
		JOIN player_mode_stats ps ON ps.player_id = p.id
		WHERE ps.mode = ?
		ORDER BY p.current_rating DESC, ps.delta_points DESC
	`, mode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var table []RatingRow
	for rows.Next() {
		var r RatingRow
		err := rows.Scan(
			&r.PlayerID, &r.DisplayName, &r.Username, &r.Gender, &r.CurrentRating, &r.RatingLetter,
			&r.GamesPlayed, &r.WinsGames, &r.DrawsGames, &r.LossesGames,
			&r.WinsSets, &r.LossesSets, &r.PointsScored, &r.PointsConceded,
			&r.DeltaPoints, &r.DeltaSets,
		)
		if err != nil {
			return nil, err
		}
		table = append(table, r)
	}
	return table, rows.Err()
}

const selectPlayer = `SELECT id, tg_id, username, display_name, gender, current_rating, rating_letter FROM players`

func scanPlayer(row *sql.Row) (Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.TgID, &p.Username, &p.DisplayName, &p.Gender, &p.CurrentRating, &p.RatingLetter)
	if err == sql.ErrNoRows {
		return Player{}, ErrNotFound
	}
	if err != nil {
		return Player{}, err
	}
	return p, nil
}

func collectPlayers(rows *sql.Rows) ([]Player, error) {
	var result []Player
	for rows.Next() {
		var p Player
		err := rows.Scan(&p.ID, &p.TgID, &p.Username, &p.DisplayName, &p.Gender, &p.CurrentRating, &p.RatingLetter)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
