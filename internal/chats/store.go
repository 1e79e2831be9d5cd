package chats

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrChatNotFound is returned when no chat matches the lookup. Member sync
// requires the chat to be registered first.
var ErrChatNotFound = errors.New("chat not found")

// New creates a new chat Store backed by db.
func New(db *sql.DB) Store {
	return &store{db: db}
}

// Register creates the chat row if absent, otherwise refreshes title/type.
// Empty values never overwrite stored ones. The second return value reports
// whether a new row was created.
func (s *store) Register(tgChatID int64, title, chatType *string) (Chat, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return Chat{}, false, err
	}

	var chat Chat
	created := false
	err = scanChat(tx.QueryRow(selectChat+" WHERE tg_chat_id = ?", tgChatID), &chat)
	switch {
	case err == sql.ErrNoRows:
		res, err := tx.Exec(`INSERT INTO tg_chats (tg_chat_id, title, type) VALUES (?, ?, ?)`, tgChatID, title, chatType)
		if err != nil {
			tx.Rollback()
			return Chat{}, false, fmt.Errorf("insert chat: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return Chat{}, false, err
		}
		chat = Chat{ID: id, TgChatID: tgChatID, Title: title, Type: chatType}
		created = true
	case err != nil:
		tx.Rollback()
		return Chat{}, false, err
	default:
		if title != nil && *title != "" {
			chat.Title = title
		}
		if chatType != nil && *chatType != "" {
			chat.Type = chatType
		}
		_, err := tx.Exec(`
			UPDATE tg_chats SET title = ?, type = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
		`, chat.Title, chat.Type, chat.ID)
		if err != nil {
			tx.Rollback()
			return Chat{}, false, fmt.Errorf("update chat: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Chat{}, false, err
	}
	log.Info("Registered chat", "tg_chat_id", tgChatID, "chat_id", chat.ID, "created", created)
	return chat, created, nil
}

// SyncMembers reconciles the caller-supplied membership snapshot against
// stored state: every listed member gets an upserted player row and an
// active membership row, and their admin grant is created or revoked to
// match the snapshot. Members absent from the snapshot are left untouched.
func (s *store) SyncMembers(tgChatID int64, members []MemberInput) (SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return SyncResult{}, err
	}

	var chat Chat
	if err := scanChat(tx.QueryRow(selectChat+" WHERE tg_chat_id = ?", tgChatID), &chat); err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return SyncResult{}, ErrChatNotFound
		}
		return SyncResult{}, err
	}

	result := SyncResult{ChatID: chat.ID, MembersProcessed: len(members)}
	for _, member := range members {
		if member.TgID == 0 {
			continue
		}

		playerID, playerCreated, err := upsertPlayerTx(tx, member.TgID, member.Username, member.DisplayName)
		if err != nil {
			tx.Rollback()
			return SyncResult{}, err
		}
		if playerCreated {
			result.PlayersCreated++
		} else {
			result.PlayersUpdated++
		}

		if err := upsertMemberTx(tx, chat.ID, playerID, StatusActive); err != nil {
			tx.Rollback()
			return SyncResult{}, err
		}

		if err := applyAdminTx(tx, chat.ID, playerID, member.IsAdmin); err != nil {
			tx.Rollback()
			return SyncResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SyncResult{}, err
	}
	log.Info("Synced chat members", "chat_id", chat.ID,
		"processed", result.MembersProcessed, "created", result.PlayersCreated, "updated", result.PlayersUpdated)
	return result, nil
}

// UpdateMember applies a single-member event. A "left" or "kicked" status
// only updates an existing membership row; it never fabricates one for a
// player that was never recorded as a member.
func (s *store) UpdateMember(params UpdateMemberParams) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return UpdateResult{}, err
	}

	var chat Chat
	if err := scanChat(tx.QueryRow(selectChat+" WHERE tg_chat_id = ?", params.TgChatID), &chat); err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return UpdateResult{}, ErrChatNotFound
		}
		return UpdateResult{}, err
	}

	playerID, _, err := upsertPlayerTx(tx, params.TgUserID, params.Username, params.DisplayName)
	if err != nil {
		tx.Rollback()
		return UpdateResult{}, err
	}

	if params.Status != nil && (*params.Status == StatusLeft || *params.Status == StatusKicked) {
		_, err = tx.Exec(`
			UPDATE chat_members SET status = ?, updated_at = CURRENT_TIMESTAMP
			WHERE chat_id = ? AND player_id = ?
		`, *params.Status, chat.ID, playerID)
		if err != nil {
			tx.Rollback()
			return UpdateResult{}, fmt.Errorf("update member status: %w", err)
		}
	} else {
		status := StatusActive
		if params.Status != nil && *params.Status != "" {
			status = *params.Status
		}
		if err := upsertMemberTx(tx, chat.ID, playerID, status); err != nil {
			tx.Rollback()
			return UpdateResult{}, err
		}
	}

	if params.IsAdmin != nil {
		if err := applyAdminTx(tx, chat.ID, playerID, *params.IsAdmin); err != nil {
			tx.Rollback()
			return UpdateResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return UpdateResult{}, err
	}
	log.Debug("Updated chat member", "chat_id", chat.ID, "player_id", playerID)
	return UpdateResult{ChatID: chat.ID, PlayerID: playerID}, nil
}

// GetByID looks up a chat by its internal id.
func (s *store) GetByID(id int64) (Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chat Chat
	err := scanChat(s.db.QueryRow(selectChat+" WHERE id = ?", id), &chat)
	if err == sql.ErrNoRows {
		return Chat{}, ErrChatNotFound
	}
	if err != nil {
		return Chat{}, err
	}
	return chat, nil
}

// IsAdmin reports whether the player holds an admin grant for the chat.
func (s *store) IsAdmin(chatID, playerID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM chat_admins WHERE chat_id = ? AND admin_player_id = ?)
	`, chatID, playerID).Scan(&exists)
	return exists, err
}

// IsActiveMember reports whether the player is an active member of the chat.
func (s *store) IsActiveMember(chatID, playerID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM chat_members WHERE chat_id = ? AND player_id = ? AND status = ?)
	`, chatID, playerID, StatusActive).Scan(&exists)
	return exists, err
}

// UserChats lists chats where the player is an admin, or with adminOnly
// false the union of chats where they are admin or active member, ordered
// by title.
func (s *store) UserChats(playerID int64, adminOnly bool) ([]Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectChat + `
		WHERE id IN (SELECT chat_id FROM chat_admins WHERE admin_player_id = ?)
		ORDER BY title`
	args := []any{playerID}
	if !adminOnly {
		query = selectChat + `
			WHERE id IN (SELECT chat_id FROM chat_admins WHERE admin_player_id = ?)
			   OR id IN (SELECT chat_id FROM chat_members WHERE player_id = ? AND status = ?)
			ORDER BY title`
		args = []any{playerID, playerID, StatusActive}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Chat
	for rows.Next() {
		var chat Chat
		if err := rows.Scan(&chat.ID, &chat.TgChatID, &chat.Title, &chat.Type); err != nil {
			return nil, err
		}
		result = append(result, chat)
	}
	return result, rows.Err()
}

const selectChat = `SELECT id, tg_chat_id, title, type FROM tg_chats`

func scanChat(row *sql.Row, chat *Chat) error {
	return row.Scan(&chat.ID, &chat.TgChatID, &chat.Title, &chat.Type)
}

// upsertPlayerTx creates the player on first sight or refreshes the fields
// the event carried. Missing display names fall back to "User <tg_id>".
func upsertPlayerTx(tx *sql.Tx, tgID int64, username, displayName *string) (int64, bool, error) {
	var playerID int64
	err := tx.QueryRow(`SELECT id FROM players WHERE tg_id = ?`, tgID).Scan(&playerID)
	if err == sql.ErrNoRows {
		name := fmt.Sprintf("User %d", tgID)
		if displayName != nil && *displayName != "" {
			name = *displayName
		}
		res, err := tx.Exec(`INSERT INTO players (tg_id, username, display_name) VALUES (?, ?, ?)`, tgID, username, name)
		if err != nil {
			return 0, false, fmt.Errorf("insert player: %w", err)
		}
		playerID, err = res.LastInsertId()
		if err != nil {
			return 0, false, err
		}
		return playerID, true, nil
	}
	if err != nil {
		return 0, false, err
	}

	if username != nil {
		if _, err := tx.Exec(`UPDATE players SET username = ? WHERE id = ?`, username, playerID); err != nil {
			return 0, false, fmt.Errorf("update player username: %w", err)
		}
	}
	if displayName != nil && *displayName != "" {
		if _, err := tx.Exec(`UPDATE players SET display_name = ? WHERE id = ?`, displayName, playerID); err != nil {
			return 0, false, fmt.Errorf("update player display name: %w", err)
		}
	}
	return playerID, false, nil
}

func upsertMemberTx(tx *sql.Tx, chatID, playerID int64, status string) error {
	_, err := tx.Exec(`
		INSERT INTO chat_members (chat_id, player_id, status)
		VALUES (?, ?, ?)
		ON CONFLICT(chat_id, player_id) DO UPDATE SET
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP;
	`, chatID, playerID, status)
	if err != nil {
		return fmt.Errorf("upsert chat member: %w", err)
	}
	return nil
}

// applyAdminTx ensures an admin grant exists when isAdmin is true and
// deletes it otherwise.
func applyAdminTx(tx *sql.Tx, chatID, playerID int64, isAdmin bool) error {
	if isAdmin {
		_, err := tx.Exec(`
			INSERT INTO chat_admins (chat_id, admin_player_id, role)
			VALUES (?, ?, ?)
			ON CONFLICT(chat_id, admin_player_id) DO NOTHING;
		`, chatID, playerID, RoleAdmin)
		if err != nil {
			return fmt.Errorf("grant chat admin: %w", err)
		}
		return nil
	}
	_, err := tx.Exec(`DELETE FROM chat_admins WHERE chat_id = ? AND admin_player_id = ?`, chatID, playerID)
	if err != nil {
		return fmt.Errorf("revoke chat admin: %w", err)
	}
	return nil
}
