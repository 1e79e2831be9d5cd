package chats

import (
	"database/sql"
	"sync"
)

// store handles all database operations for chats, members and admins.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Member status values.
const (
	StatusActive = "active"
	StatusLeft   = "left"
	StatusKicked = "kicked"
)

// RoleAdmin is the role recorded for admin grants created by member sync.
const RoleAdmin = "admin"

// Chat is a registered Telegram chat.
type Chat struct {
	ID       int64   `json:"id"`
	TgChatID int64   `json:"tg_chat_id"`
	Title    *string `json:"title"`
	Type     *string `json:"type"`
}

// MemberInput is one member entry of a caller-supplied membership snapshot.
type MemberInput struct {
	TgID        int64   `json:"tg_id"`
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	IsAdmin     bool    `json:"is_admin"`
}

// SyncResult summarises one reconciliation pass.
type SyncResult struct {
	ChatID           int64 `json:"chat_id"`
	MembersProcessed int   `json:"members_processed"`
	PlayersCreated   int   `json:"players_created"`
	PlayersUpdated   int   `json:"players_updated"`
}

// UpdateMemberParams carries a single-member update.
type UpdateMemberParams struct {
	TgChatID    int64
	TgUserID    int64
	Username    *string
	DisplayName *string
	Status      *string
	IsAdmin     *bool
}

// UpdateResult identifies the rows touched by an UpdateMember call.
type UpdateResult struct {
	ChatID   int64 `json:"chat_id"`
	PlayerID int64 `json:"player_id"`
}
