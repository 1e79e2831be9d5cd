package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/courtsidehq/courtside/internal/auth"
	"github.com/courtsidehq/courtside/internal/chats"
	"github.com/courtsidehq/courtside/internal/config"
	"github.com/courtsidehq/courtside/internal/metrics"
	"github.com/courtsidehq/courtside/internal/players"
	"github.com/courtsidehq/courtside/internal/tournaments"
)

func NewServer(
	playersStore players.Store,
	tournamentsStore tournaments.Store,
	chatsStore chats.Store,
	authSvc *auth.Service,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
) *Server {
	server := &Server{
		Players:        playersStore,
		Tournaments:    tournamentsStore,
		Chats:          chatsStore,
		Auth:           authSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.Cfg.WebOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	s.Router.Use(requestIDMiddleware, s.metricsMiddleware)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Get("/health", s.HealthCheckHandler())

	s.Router.Post("/players/register", s.RegisterPlayerHandler())
	s.Router.Get("/players/by_tg/{tg_id}", s.GetPlayerByTgHandler())
	s.Router.Get("/players/search", s.SearchPlayersHandler())
	s.Router.Get("/players", s.ListPlayersHandler())

	s.Router.Get("/rating/modes", s.ListRatingModesHandler())
	s.Router.Get("/rating/{mode}", s.RatingTableHandler())

	s.Router.Post("/tournaments", s.CreateTournamentHandler())
	s.Router.Post("/matches", s.CreateMatchHandler())

	s.Router.Get("/chats", s.ListUserChatsHandler())

	s.Router.Post("/bot/chats/register", s.RegisterChatHandler())
	s.Router.Post("/bot/chats/members/sync", s.SyncMembersHandler())
	s.Router.Post("/bot/chats/members/update", s.UpdateMemberHandler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
