package chats_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsidehq/courtside/internal/chats"
	"github.com/courtsidehq/courtside/internal/database"
)

func setupTestDB(t *testing.T) (chats.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "../../migrations")
	require.NoError(t, err)

	store := chats.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestRegisterChat(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	chat, created, err := store.Register(555, strPtr("Court A"), strPtr("supergroup"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(555), chat.TgChatID)
	require.NotNil(t, chat.Title)
	assert.Equal(t, "Court A", *chat.Title)

	// Registering again refreshes the title but reports created=false.
	again, created, err := store.Register(555, strPtr("Court A Renamed"), nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, chat.ID, again.ID)
	require.NotNil(t, again.Title)
	assert.Equal(t, "Court A Renamed", *again.Title)
}

func TestRegisterChatEmptyValuesDoNotOverwrite(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, _, err := store.Register(555, strPtr("Court A"), strPtr("group"))
	require.NoError(t, err)

	chat, _, err := store.Register(555, strPtr(""), nil)
	require.NoError(t, err)
	require.NotNil(t, chat.Title)
	assert.Equal(t, "Court A", *chat.Title)
	require.NotNil(t, chat.Type)
	assert.Equal(t, "group", *chat.Type)
}

func TestSyncMembersRequiresRegisteredChat(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.SyncMembers(999, []chats.MemberInput{{TgID: 1}})
	assert.ErrorIs(t, err, chats.ErrChatNotFound)
}

func TestSyncMembers(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	chat, _, err := store.Register(555, strPtr("Court A"), strPtr("supergroup"))
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO players (tg_id, display_name) VALUES (42, 'Known Admin')`)
	require.NoError(t, err)

	result, err := store.SyncMembers(555, []chats.MemberInput{
		{TgID: 42, Username: strPtr("admin42"), IsAdmin: true},
		{TgID: 43, DisplayName: strPtr("New Member")},
		{TgID: 0}, // no Telegram id, skipped
	})
	require.NoError(t, err)

	assert.Equal(t, chat.ID, result.ChatID)
	assert.Equal(t, 3, result.MembersProcessed)
	assert.Equal(t, 1, result.PlayersCreated)
	assert.Equal(t, 1, result.PlayersUpdated)

	var memberCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chat_members WHERE chat_id = ?`, chat.ID).Scan(&memberCount))
	assert.Equal(t, 2, memberCount)

	var adminID int64
	require.NoError(t, db.QueryRow(`SELECT id FROM players WHERE tg_id = 42`).Scan(&adminID))
	isAdmin, err := store.IsAdmin(chat.ID, adminID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestSyncMembersIsIdempotent(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, _, err := store.Register(555, strPtr("Court A"), nil)
	require.NoError(t, err)

	snapshot := []chats.MemberInput{
		{TgID: 42, DisplayName: strPtr("Alice"), IsAdmin: true},
		{TgID: 43, DisplayName: strPtr("Bob")},
	}

	first, err := store.SyncMembers(555, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, first.PlayersCreated)

	second, err := store.SyncMembers(555, snapshot)
	require.NoError(t, err)
	assert.Zero(t, second.PlayersCreated)
	assert.Equal(t, 2, second.PlayersUpdated)

	var playerCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&playerCount))
	assert.Equal(t, 2, playerCount)
}

func TestSyncMembersDisplayNameFallback(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, _, err := store.Register(555, nil, nil)
	require.NoError(t, err)

	_, err = store.SyncMembers(555, []chats.MemberInput{{TgID: 77}})
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow(`SELECT display_name FROM players WHERE tg_id = 77`).Scan(&name))
	assert.Equal(t, "User 77", name)
}

func TestUpdateMemberJoin(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	chat, _, err := store.Register(555, strPtr("Court A"), nil)
	require.NoError(t, err)

	result, err := store.UpdateMember(chats.UpdateMemberParams{
		TgChatID:    555,
		TgUserID:    42,
		Username:    strPtr("alice"),
		DisplayName: strPtr("Alice"),
		Status:      strPtr(chats.StatusActive),
	})
	require.NoError(t, err)
	assert.Equal(t, chat.ID, result.ChatID)

	active, err := store.IsActiveMember(chat.ID, result.PlayerID)
	require.NoError(t, err)
	assert.True(t, active)

	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM chat_members WHERE chat_id = ? AND player_id = ?`,
		chat.ID, result.PlayerID).Scan(&status))
	assert.Equal(t, chats.StatusActive, status)
}

func TestUpdateMemberLeftNeverFabricatesMembership(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, _, err := store.Register(555, strPtr("Court A"), nil)
	require.NoError(t, err)

	// The player was never a member; a "left" event must not create a row.
	_, err = store.UpdateMember(chats.UpdateMemberParams{
		TgChatID: 555,
		TgUserID: 42,
		Status:   strPtr(chats.StatusLeft),
	})
	require.NoError(t, err)

	var memberCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chat_members`).Scan(&memberCount))
	assert.Zero(t, memberCount)
}

func TestUpdateMemberLeftUpdatesExistingRow(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	chat, _, err := store.Register(555, strPtr("Court A"), nil)
	require.NoError(t, err)

	joined, err := store.UpdateMember(chats.UpdateMemberParams{TgChatID: 555, TgUserID: 42})
	require.NoError(t, err)

	_, err = store.UpdateMember(chats.UpdateMemberParams{
		TgChatID: 555,
		TgUserID: 42,
		Status:   strPtr(chats.StatusLeft),
	})
	require.NoError(t, err)

	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM chat_members WHERE chat_id = ? AND player_id = ?`,
		chat.ID, joined.PlayerID).Scan(&status))
	assert.Equal(t, chats.StatusLeft, status)

	active, err := store.IsActiveMember(chat.ID, joined.PlayerID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestUpdateMemberAdminGrantAndRevoke(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	chat, _, err := store.Register(555, strPtr("Court A"), nil)
	require.NoError(t, err)

	granted, err := store.UpdateMember(chats.UpdateMemberParams{
		TgChatID: 555,
		TgUserID: 42,
		IsAdmin:  boolPtr(true),
	})
	require.NoError(t, err)

	isAdmin, err := store.IsAdmin(chat.ID, granted.PlayerID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// Revoking admin keeps the membership but drops the grant.
	_, err = store.UpdateMember(chats.UpdateMemberParams{
		TgChatID: 555,
		TgUserID: 42,
		IsAdmin:  boolPtr(false),
	})
	require.NoError(t, err)

	isAdmin, err = store.IsAdmin(chat.ID, granted.PlayerID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	active, err := store.IsActiveMember(chat.ID, granted.PlayerID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestUserChats(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, _, err := store.Register(555, strPtr("B Chat"), nil)
	require.NoError(t, err)
	_, _, err = store.Register(556, strPtr("A Chat"), nil)
	require.NoError(t, err)

	// Admin of 555, plain member of 556.
	admin, err := store.UpdateMember(chats.UpdateMemberParams{TgChatID: 555, TgUserID: 42, IsAdmin: boolPtr(true)})
	require.NoError(t, err)
	_, err = store.UpdateMember(chats.UpdateMemberParams{TgChatID: 556, TgUserID: 42})
	require.NoError(t, err)

	all, err := store.UserChats(admin.PlayerID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A Chat", *all[0].Title)
	assert.Equal(t, "B Chat", *all[1].Title)

	adminOnly, err := store.UserChats(admin.PlayerID, true)
	require.NoError(t, err)
	require.Len(t, adminOnly, 1)
	assert.Equal(t, "B Chat", *adminOnly[0].Title)

	var playerCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&playerCount))
	assert.Equal(t, 1, playerCount)
}

func TestDeletingChatCascades(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	chat, _, err := store.Register(555, strPtr("Court A"), nil)
	require.NoError(t, err)

	_, err = store.SyncMembers(555, []chats.MemberInput{{TgID: 42, IsAdmin: true}})
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM tg_chats WHERE id = ?`, chat.ID)
	require.NoError(t, err)

	var members, admins int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chat_members`).Scan(&members))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chat_admins`).Scan(&admins))
	assert.Zero(t, members)
	assert.Zero(t, admins)

	// The player rows survive chat deletion.
	var playerCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&playerCount))
	assert.Equal(t, 1, playerCount)
}
