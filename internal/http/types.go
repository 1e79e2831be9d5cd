package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/courtsidehq/courtside/internal/auth"
	"github.com/courtsidehq/courtside/internal/chats"
	"github.com/courtsidehq/courtside/internal/config"
	"github.com/courtsidehq/courtside/internal/metrics"
	"github.com/courtsidehq/courtside/internal/players"
	"github.com/courtsidehq/courtside/internal/tournaments"
)

type Server struct {
	Players        players.Store
	Tournaments    tournaments.Store
	Chats          chats.Store
	Auth           *auth.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         chi.Router
}

type registerPlayerRequest struct {
	TgID        int64   `json:"tg_id"`
	Username    *string `json:"username"`
	DisplayName string  `json:"display_name"`
}

type createTournamentRequest struct {
	Name         string  `json:"name"`
	Mode         string  `json:"mode"`
	ScoringType  string  `json:"scoring_type"`
	PointsLimit  *int    `json:"points_limit"`
	SetsLimit    *int    `json:"sets_limit"`
	ChatID       *int64  `json:"chat_id"`
	Participants []int64 `json:"participants"`
}

type createMatchRequest struct {
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
}

type registerChatRequest struct {
	TgChatID int64   `json:"tg_chat_id"`
	Title    *string `json:"title"`
	Type     *string `json:"type"`
}

type registerChatResponse struct {
	ID       int64   `json:"id"`
	TgChatID int64   `json:"tg_chat_id"`
	Title    *string `json:"title"`
	Type     *string `json:"type"`
	Created  bool    `json:"created"`
}

type syncMembersRequest struct {
	TgChatID int64               `json:"tg_chat_id"`
	Members  []chats.MemberInput `json:"members"`
}

type syncMembersResponse struct {
	Status           string `json:"status"`
	ChatID           int64  `json:"chat_id"`
	MembersProcessed int    `json:"members_processed"`
	PlayersCreated   int    `json:"players_created"`
	PlayersUpdated   int    `json:"players_updated"`
}

type updateMemberRequest struct {
	TgChatID    int64   `json:"tg_chat_id"`
	TgUserID    int64   `json:"tg_user_id"`
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Status      *string `json:"status"`
	IsAdmin     *bool   `json:"is_admin"`
}

type updateMemberResponse struct {
	Status   string `json:"status"`
	ChatID   int64  `json:"chat_id"`
	PlayerID int64  `json:"player_id"`
}
