package players

import (
	"database/sql"
	"sync"
)

// store handles all database operations for players and rating tables.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is the full player projection returned by the API.
type Player struct {
	ID            int64   `json:"id"`
	TgID          int64   `json:"tg_id"`
	Username      *string `json:"username"`
	DisplayName   string  `json:"display_name"`
	Gender        *string `json:"gender"`
	CurrentRating float64 `json:"current_rating"`
	RatingLetter  *string `json:"rating_letter"`
}

// RegisterParams carries the upsert input for a player.
type RegisterParams struct {
	TgID        int64
	Username    *string
	DisplayName string
}

// RatingRow is one row of the per-mode rating table: a player joined with
// their aggregate stats for that mode.
type RatingRow struct {
	PlayerID      int64   `json:"player_id"`
	DisplayName   string  `json:"display_name"`
	Username      *string `json:"username"`
	Gender        *string `json:"gender"`
	CurrentRating float64 `json:"current_rating"`
	RatingLetter  *string `json:"rating_letter"`

	GamesPlayed    int `json:"games_played"`
	WinsGames      int `json:"wins_games"`
	DrawsGames     int `json:"draws_games"`
	LossesGames    int `json:"losses_games"`
	WinsSets       int `json:"wins_sets"`
	LossesSets     int `json:"losses_sets"`
	PointsScored   int `json:"points_scored"`
	PointsConceded int `json:"points_conceded"`
	DeltaPoints    int `json:"delta_points"`
	DeltaSets      int `json:"delta_sets"`
}

// RatingMode is one supported tournament format.
type RatingMode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

const (
	ModeAmericanoClassic = "americano_classic"
	ModeAmericanoTeam    = "americano_team"
	ModeAmericanoMix     = "americano_mix"
	ModeMexicanoClassic  = "mexicano_classic"
	ModeMexicanoTeam     = "mexicano_team"
	ModeMexicanoMix      = "mexicano_mix"
	ModeKingOfCourt      = "king_of_court"
)

// Modes returns the static enumeration of supported rating modes.
func Modes() []RatingMode {
	return []RatingMode{
		{Code: ModeAmericanoClassic, Name: "Americano classic"},
		{Code: ModeAmericanoTeam, Name: "Americano team"},
		{Code: ModeAmericanoMix, Name: "Americano mix"},
		{Code: ModeMexicanoClassic, Name: "Mexicano classic"},
		{Code: ModeMexicanoTeam, Name: "Mexicano team"},
		{Code: ModeMexicanoMix, Name: "Mexicano mix"},
		{Code: ModeKingOfCourt, Name: "King of the court"},
	}
}

// IsKnownMode reports whether code is one of the supported rating modes.
func IsKnownMode(code string) bool {
	for _, m := range Modes() {
		if m.Code == code {
			return true
		}
	}
	return false
}
