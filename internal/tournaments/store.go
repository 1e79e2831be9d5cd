package tournaments

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new tournament Store backed by db.
func New(db *sql.DB) Store {
	return &store{db: db}
}

// Create inserts a tournament in draft status together with one participant
// row per player id, all in one transaction. Participant ids are not
// existence-checked here; an unknown id fails the transaction on its foreign
// key.
func (s *store) Create(params CreateParams) (Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return Tournament{}, err
	}

	// Only the limit matching the scoring type is stored.
	var pointsLimit, setsLimit *int
	if params.ScoringType == ScoringPoints {
		pointsLimit = params.PointsLimit
	}
	if params.ScoringType == ScoringSets {
		setsLimit = params.SetsLimit
	}

	res, err := tx.Exec(`
		INSERT INTO tournaments (name, mode, status, scoring_type, points_limit, sets_limit, chat_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, params.Name, params.Mode, StatusDraft, params.ScoringType, pointsLimit, setsLimit, params.ChatID)
	if err != nil {
		tx.Rollback()
		return Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}

	tournamentID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return Tournament{}, err
	}

	for _, playerID := range params.Participants {
		_, err := tx.Exec(`
			INSERT INTO tournament_players (tournament_id, player_id)
			VALUES (?, ?)
		`, tournamentID, playerID)
		if err != nil {
			tx.Rollback()
			return Tournament{}, fmt.Errorf("insert participant %d: %w", playerID, err)
		}
	}

	var t Tournament
	err = tx.QueryRow(`
		SELECT id, name, mode, status, created_at, scoring_type, points_limit, sets_limit, chat_id
		FROM tournaments WHERE id = ?
	`, tournamentID).Scan(&t.ID, &t.Name, &t.Mode, &t.Status, &t.CreatedAt, &t.ScoringType, &t.PointsLimit, &t.SetsLimit, &t.ChatID)
	if err != nil {
		tx.Rollback()
		return Tournament{}, err
	}

	if err := tx.Commit(); err != nil {
		return Tournament{}, err
	}

	t.Participants = append([]int64{}, params.Participants...)
	if t.Participants == nil {
		t.Participants = []int64{}
	}
	log.Info("Created tournament", "tournament_id", t.ID, "name", t.Name, "mode", t.Mode)
	return t, nil
}

// CreateMatch records a match result. The tournament and player references
// are enforced by foreign keys only, and the score type is not cross-checked
// against the owning tournament's scoring type.
func (s *store) CreateMatch(params CreateMatchParams) (Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return Match{}, err
	}

	res, err := tx.Exec(`
		INSERT INTO tournament_matches
			(tournament_id, round_number, court_number, player1_id, player2_id, score_type, points1, points2, sets1, sets2)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, params.TournamentID, params.RoundNumber, params.CourtNumber, params.Player1ID, params.Player2ID,
		params.ScoreType, params.Points1, params.Points2, params.Sets1, params.Sets2)
	if err != nil {
		tx.Rollback()
		return Match{}, fmt.Errorf("insert match: %w", err)
	}

	matchID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return Match{}, err
	}

	var m Match
	err = tx.QueryRow(`
		SELECT id, tournament_id, round_number, court_number, player1_id, player2_id,
			score_type, points1, points2, sets1, sets2, created_at
		FROM tournament_matches WHERE id = ?
	`, matchID).Scan(&m.ID, &m.TournamentID, &m.RoundNumber, &m.CourtNumber, &m.Player1ID, &m.Player2ID,
		&m.ScoreType, &m.Points1, &m.Points2, &m.Sets1, &m.Sets2, &m.CreatedAt)
	if err != nil {
		tx.Rollback()
		return Match{}, err
	}

	if err := tx.Commit(); err != nil {
		return Match{}, err
	}
	log.Info("Recorded tournament match", "match_id", m.ID, "tournament_id", m.TournamentID)
	return m, nil
}
