package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/courtsidehq/courtside/internal/chats"
	"github.com/courtsidehq/courtside/internal/players"
	"github.com/courtsidehq/courtside/internal/tournaments"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.TgID == 0 || req.DisplayName == "" {
			respondDetail(w, http.StatusBadRequest, "tg_id and display_name are required")
			return
		}

		player, err := s.Players.Register(players.RegisterParams{
			TgID:        req.TgID,
			Username:    req.Username,
			DisplayName: req.DisplayName,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.IncPlayersRegistered()
		respondJSON(w, http.StatusOK, player)
	}
}

func (s *Server) GetPlayerByTgHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tgID, err := strconv.ParseInt(chi.URLParam(r, "tg_id"), 10, 64)
		if err != nil {
			respondDetail(w, http.StatusBadRequest, "tg_id must be an integer")
			return
		}

		player, err := s.Players.GetByTgID(tgID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, player)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.Players.List()
		if err != nil {
			respondError(w, err)
			return
		}
		if list == nil {
			list = []players.Player{}
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) SearchPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			respondDetail(w, http.StatusBadRequest, "Query parameter q requires at least 1 character")
			return
		}

		found, err := s.Players.Search(query)
		if err != nil {
			respondError(w, err)
			return
		}
		if found == nil {
			found = []players.Player{}
		}
		respondJSON(w, http.StatusOK, found)
	}
}

func (s *Server) ListRatingModesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, players.Modes())
	}
}

func (s *Server) RatingTableHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := chi.URLParam(r, "mode")
		if !players.IsKnownMode(mode) {
			respondDetail(w, http.StatusBadRequest, "Unknown rating mode: "+mode)
			return
		}

		table, err := s.Players.RatingTable(mode)
		if err != nil {
			respondError(w, err)
			return
		}
		if table == nil {
			table = []players.RatingRow{}
		}
		respondJSON(w, http.StatusOK, table)
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTournamentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		// The limit matching the scoring type must be present and positive.
		if req.ScoringType == tournaments.ScoringPoints {
			if req.PointsLimit == nil || *req.PointsLimit <= 0 {
				respondDetail(w, http.StatusBadRequest, "A positive points_limit is required for points scoring")
				return
			}
		}
		if req.ScoringType == tournaments.ScoringSets {
			if req.SetsLimit == nil || *req.SetsLimit <= 0 {
				respondDetail(w, http.StatusBadRequest, "A positive sets_limit is required for sets scoring")
				return
			}
		}

		tournament, err := s.Tournaments.Create(tournaments.CreateParams{
			Name:         req.Name,
			Mode:         req.Mode,
			ScoringType:  req.ScoringType,
			PointsLimit:  req.PointsLimit,
			SetsLimit:    req.SetsLimit,
			ChatID:       req.ChatID,
			Participants: req.Participants,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, tournament)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if req.ScoreType == tournaments.ScoringPoints && (req.Points1 == nil || req.Points2 == nil) {
			respondDetail(w, http.StatusBadRequest, "points1 and points2 are required for score_type=points")
			return
		}
		if req.ScoreType == tournaments.ScoringSets && (req.Sets1 == nil || req.Sets2 == nil) {
			respondDetail(w, http.StatusBadRequest, "sets1 and sets2 are required for score_type=sets")
			return
		}

		match, err := s.Tournaments.CreateMatch(tournaments.CreateMatchParams{
			TournamentID: req.TournamentID,
			RoundNumber:  req.RoundNumber,
			CourtNumber:  req.CourtNumber,
			Player1ID:    req.Player1ID,
			Player2ID:    req.Player2ID,
			ScoreType:    req.ScoreType,
			Points1:      req.Points1,
			Points2:      req.Points2,
			Sets1:        req.Sets1,
			Sets2:        req.Sets2,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, match)
	}
}

func (s *Server) ListUserChatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Auth.CurrentUser(r)
		if err != nil {
			respondError(w, err)
			return
		}

		adminOnly := r.URL.Query().Get("admin_only") == "true"
		list, err := s.Auth.UserChats(user, adminOnly)
		if err != nil {
			respondError(w, err)
			return
		}
		if list == nil {
			list = []chats.Chat{}
		}
		respondJSON(w, http.StatusOK, list)
	}
}

func (s *Server) RegisterChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.TgChatID == 0 {
			respondDetail(w, http.StatusBadRequest, "tg_chat_id is required")
			return
		}

		chat, created, err := s.Chats.Register(req.TgChatID, req.Title, req.Type)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, registerChatResponse{
			ID:       chat.ID,
			TgChatID: chat.TgChatID,
			Title:    chat.Title,
			Type:     chat.Type,
			Created:  created,
		})
	}
}

func (s *Server) SyncMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req syncMembersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		result, err := s.Chats.SyncMembers(req.TgChatID, req.Members)
		if err != nil {
			respondError(w, err)
			return
		}
		s.Metrics.AddMembersSynced(result.MembersProcessed)
		respondJSON(w, http.StatusOK, syncMembersResponse{
			Status:           "success",
			ChatID:           result.ChatID,
			MembersProcessed: result.MembersProcessed,
			PlayersCreated:   result.PlayersCreated,
			PlayersUpdated:   result.PlayersUpdated,
		})
	}
}

func (s *Server) UpdateMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		result, err := s.Chats.UpdateMember(chats.UpdateMemberParams{
			TgChatID:    req.TgChatID,
			TgUserID:    req.TgUserID,
			Username:    req.Username,
			DisplayName: req.DisplayName,
			Status:      req.Status,
			IsAdmin:     req.IsAdmin,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, updateMemberResponse{
			Status:   "success",
			ChatID:   result.ChatID,
			PlayerID: result.PlayerID,
		})
	}
}
