package tournaments

import (
	"database/sql"
	"sync"
)

// store handles all database operations for tournaments and their matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Scoring types. A tournament (and each recorded match) is decided either by
// point totals or by set counts; the two limit fields are mutually exclusive.
const (
	ScoringPoints = "points"
	ScoringSets   = "sets"
)

// StatusDraft is the status assigned to every newly created tournament.
const StatusDraft = "draft"

// Tournament is the tournament projection returned by the API.
type Tournament struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Mode         string  `json:"mode"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	ScoringType  string  `json:"scoring_type"`
	PointsLimit  *int    `json:"points_limit"`
	SetsLimit    *int    `json:"sets_limit"`
	ChatID       *int64  `json:"chat_id,omitempty"`
	Participants []int64 `json:"participants"`
}

// CreateParams carries the input for creating a tournament.
type CreateParams struct {
	Name         string
	Mode         string
	ScoringType  string
	PointsLimit  *int
	SetsLimit    *int
	ChatID       *int64
	Participants []int64
}

// Match is one recorded match result inside a tournament.
type Match struct {
	ID           int64  `json:"id"`
	TournamentID int64  `json:"tournament_id"`
	RoundNumber  *int   `json:"round_number"`
	CourtNumber  *int   `json:"court_number"`
	Player1ID    int64  `json:"player1_id"`
	Player2ID    int64  `json:"player2_id"`
	ScoreType    string `json:"score_type"`
	Points1      *int   `json:"points1"`
	Points2      *int   `json:"points2"`
	Sets1        *int   `json:"sets1"`
	Sets2        *int   `json:"sets2"`
	CreatedAt    string `json:"created_at"`
}

// CreateMatchParams carries the input for recording a match.
type CreateMatchParams struct {
	TournamentID int64
	RoundNumber  *int
	CourtNumber  *int
	Player1ID    int64
	Player2ID    int64
	ScoreType    string
	Points1      *int
	Points2      *int
	Sets1        *int
	Sets2        *int
}
