// Package auth resolves the calling identity from the trusted X-User-Tg-Id
// header and checks chat-level access. Identity resolution is kept behind
// this single service so the header scheme can later be swapped for tokens
// without touching endpoint logic.
package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/courtsidehq/courtside/internal/chats"
	"github.com/courtsidehq/courtside/internal/players"
)

const (
	// HeaderUserTgID carries the caller's Telegram user id.
	HeaderUserTgID = "X-User-Tg-Id"
	// HeaderChatID is the header alternative to the chat_id query parameter.
	HeaderChatID = "X-Chat-Id"
)

var (
	// ErrUnauthenticated is returned when the identity header is missing or malformed.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the caller lacks the required chat role.
	ErrForbidden = errors.New("insufficient chat access")
	// ErrChatIDMissing is returned when neither the query parameter nor the header names a chat.
	ErrChatIDMissing = errors.New("chat id required")
)

// Service checks identities and chat roles against the stores.
type Service struct {
	players players.Store
	chats   chats.Store
}

// New creates a new auth Service.
func New(playersStore players.Store, chatsStore chats.Store) *Service {
	return &Service{players: playersStore, chats: chatsStore}
}

// CurrentUser resolves the caller from the identity header. A missing or
// malformed header yields ErrUnauthenticated; an id with no player row
// yields players.ErrNotFound.
func (s *Service) CurrentUser(r *http.Request) (players.Player, error) {
	raw := r.Header.Get(HeaderUserTgID)
	if raw == "" {
		return players.Player{}, ErrUnauthenticated
	}
	tgID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return players.Player{}, ErrUnauthenticated
	}
	return s.players.GetByTgID(tgID)
}

// CheckChatAdminAccess verifies the chat exists and that the user is one of
// its admins, or with allowMember true an active member. It returns the chat
// on success.
func (s *Service) CheckChatAdminAccess(chatID int64, user players.Player, allowMember bool) (chats.Chat, error) {
	chat, err := s.chats.GetByID(chatID)
	if err != nil {
		return chats.Chat{}, err
	}

	isAdmin, err := s.chats.IsAdmin(chatID, user.ID)
	if err != nil {
		return chats.Chat{}, err
	}
	if isAdmin {
		return chat, nil
	}

	if allowMember {
		isMember, err := s.chats.IsActiveMember(chatID, user.ID)
		if err != nil {
			return chats.Chat{}, err
		}
		if isMember {
			return chat, nil
		}
	}
	return chats.Chat{}, ErrForbidden
}

// UserChats lists the chats the user may see: those they administer, or
// with adminOnly false also those they are an active member of.
func (s *Service) UserChats(user players.Player, adminOnly bool) ([]chats.Chat, error) {
	return s.chats.UserChats(user.ID, adminOnly)
}

// ChatIDFromRequest reads the chat id from the ?chat_id= query parameter or
// the X-Chat-Id header, in that order.
func ChatIDFromRequest(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("chat_id")
	if raw == "" {
		raw = r.Header.Get(HeaderChatID)
	}
	if raw == "" {
		return 0, ErrChatIDMissing
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrChatIDMissing
	}
	return id, nil
}
