package telegram

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsidehq/courtside/internal/backend"
)

// fakeAPI records outgoing messages and serves a canned admin list.
type fakeAPI struct {
	sent   []tgbotapi.MessageConfig
	admins []tgbotapi.ChatMember
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error) {
	return f.admins, nil
}

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeAPI) StopReceivingUpdates() {}

func (f *fakeAPI) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func command(text string, length int, chat *tgbotapi.Chat, from *tgbotapi.User) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text:     text,
		Chat:     chat,
		From:     from,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}
}

func setupBot() (*Bot, *fakeAPI, *backend.MockClient) {
	api := &fakeAPI{}
	client := backend.NewMock()
	bot := NewBot(api, client, "https://padel.example.com")
	return bot, api, client
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice Smith", DisplayName(&tgbotapi.User{FirstName: "Alice", LastName: "Smith"}))
	assert.Equal(t, "Alice", DisplayName(&tgbotapi.User{FirstName: "Alice"}))
	assert.Equal(t, "alice42", DisplayName(&tgbotapi.User{UserName: "alice42"}))
	assert.Equal(t, "", DisplayName(&tgbotapi.User{}))
}

func TestMembersFromAdminsFiltersBots(t *testing.T) {
	admins := []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 42, FirstName: "Alice"}},
		{User: &tgbotapi.User{ID: 99, FirstName: "Helper", IsBot: true}},
		{User: nil},
	}

	members := MembersFromAdmins(admins)
	require.Len(t, members, 1)
	assert.Equal(t, int64(42), members[0].TgID)
	assert.True(t, members[0].IsAdmin)
	require.NotNil(t, members[0].DisplayName)
	assert.Equal(t, "Alice", *members[0].DisplayName)
}

func TestHandleStartRegistersPlayer(t *testing.T) {
	bot, api, client := setupBot()

	client.RegisterPlayerFunc = func(params backend.RegisterPlayerParams) (backend.Player, error) {
		return backend.Player{TgID: params.TgID, DisplayName: params.DisplayName, CurrentRating: 1500}, nil
	}

	msg := command("/start", 6,
		&tgbotapi.Chat{ID: 42, Type: "private"},
		&tgbotapi.User{ID: 42, FirstName: "Alice", UserName: "alice42"})
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	require.Len(t, client.RegisterPlayerCalls, 1)
	assert.Equal(t, int64(42), client.RegisterPlayerCalls[0].TgID)
	assert.Equal(t, "Alice", client.RegisterPlayerCalls[0].DisplayName)

	reply := api.lastMessage(t)
	assert.Contains(t, reply.Text, "Welcome, Alice")
	// Private chats get the web app button.
	assert.NotNil(t, reply.ReplyMarkup)
}

func TestHandleStartInGroupHasNoWebAppButton(t *testing.T) {
	bot, api, _ := setupBot()

	msg := command("/start", 6,
		&tgbotapi.Chat{ID: -100, Type: "supergroup"},
		&tgbotapi.User{ID: 42, FirstName: "Alice"})
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	reply := api.lastMessage(t)
	assert.Nil(t, reply.ReplyMarkup)
}

func TestHandleSyncRejectsPrivateChat(t *testing.T) {
	bot, api, client := setupBot()

	msg := command("/sync", 5,
		&tgbotapi.Chat{ID: 42, Type: "private"},
		&tgbotapi.User{ID: 42, FirstName: "Alice"})
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	assert.Empty(t, client.SyncMembersCalls)
	assert.Contains(t, api.lastMessage(t).Text, "group chats")
}

func TestHandleSyncRejectsNonAdmin(t *testing.T) {
	bot, api, client := setupBot()
	api.admins = []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 1, FirstName: "Boss"}},
	}

	msg := command("/sync", 5,
		&tgbotapi.Chat{ID: -100, Type: "supergroup"},
		&tgbotapi.User{ID: 42, FirstName: "Alice"})
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	assert.Empty(t, client.SyncMembersCalls)
	assert.Contains(t, api.lastMessage(t).Text, "administrators")
}

func TestHandleSyncSnapshotsAdmins(t *testing.T) {
	bot, api, client := setupBot()
	api.admins = []tgbotapi.ChatMember{
		{User: &tgbotapi.User{ID: 42, FirstName: "Alice"}},
		{User: &tgbotapi.User{ID: 99, FirstName: "Helper", IsBot: true}},
	}

	msg := command("/sync", 5,
		&tgbotapi.Chat{ID: -100, Type: "supergroup", Title: "Court A"},
		&tgbotapi.User{ID: 42, FirstName: "Alice"})
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	// The chat row is ensured before syncing.
	require.Len(t, client.RegisterChatCalls, 1)
	assert.Equal(t, int64(-100), client.RegisterChatCalls[0].TgChatID)

	require.Len(t, client.SyncMembersCalls, 1)
	call := client.SyncMembersCalls[0]
	assert.Equal(t, int64(-100), call.TgChatID)
	require.Len(t, call.Members, 1)
	assert.Equal(t, int64(42), call.Members[0].TgID)

	assert.Contains(t, api.lastMessage(t).Text, "Sync complete")
}

func TestHandleMyChatMemberRegistersChat(t *testing.T) {
	bot, _, client := setupBot()

	ev := &tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: -100, Type: "supergroup", Title: "Court A"},
		NewChatMember: tgbotapi.ChatMember{Status: "member"},
	}
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{MyChatMember: ev})
	require.NoError(t, err)

	require.Len(t, client.RegisterChatCalls, 1)
	call := client.RegisterChatCalls[0]
	assert.Equal(t, int64(-100), call.TgChatID)
	require.NotNil(t, call.Title)
	assert.Equal(t, "Court A", *call.Title)
}

func TestHandleMyChatMemberIgnoresPrivateAndRemoval(t *testing.T) {
	bot, _, client := setupBot()

	private := &tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: 42, Type: "private"},
		NewChatMember: tgbotapi.ChatMember{Status: "member"},
	}
	require.NoError(t, bot.handleUpdate(context.Background(), tgbotapi.Update{MyChatMember: private}))

	kicked := &tgbotapi.ChatMemberUpdated{
		Chat:          tgbotapi.Chat{ID: -100, Type: "supergroup"},
		NewChatMember: tgbotapi.ChatMember{Status: "kicked"},
	}
	require.NoError(t, bot.handleUpdate(context.Background(), tgbotapi.Update{MyChatMember: kicked}))

	assert.Empty(t, client.RegisterChatCalls)
}

func TestNewChatMembersRecorded(t *testing.T) {
	bot, _, client := setupBot()

	msg := &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: -100, Type: "supergroup"},
		NewChatMembers: []tgbotapi.User{
			{ID: 42, FirstName: "Alice"},
			{ID: 99, FirstName: "Helper", IsBot: true},
		},
	}
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	require.Len(t, client.UpdateMemberCalls, 1)
	call := client.UpdateMemberCalls[0]
	assert.Equal(t, int64(42), call.TgUserID)
	require.NotNil(t, call.Status)
	assert.Equal(t, "active", *call.Status)
}

func TestLeftChatMemberRecorded(t *testing.T) {
	bot, _, client := setupBot()

	msg := &tgbotapi.Message{
		Chat:           &tgbotapi.Chat{ID: -100, Type: "supergroup"},
		LeftChatMember: &tgbotapi.User{ID: 42, FirstName: "Alice"},
	}
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	require.Len(t, client.UpdateMemberCalls, 1)
	call := client.UpdateMemberCalls[0]
	assert.Equal(t, int64(42), call.TgUserID)
	require.NotNil(t, call.Status)
	assert.Equal(t, "left", *call.Status)
}

func TestHandleMeUnregistered(t *testing.T) {
	bot, api, client := setupBot()

	client.GetPlayerByTgIDFunc = func(tgID int64) (backend.Player, error) {
		return backend.Player{}, backend.ErrNotFound
	}

	msg := command("/me", 3,
		&tgbotapi.Chat{ID: 42, Type: "private"},
		&tgbotapi.User{ID: 42, FirstName: "Alice"})
	err := bot.handleUpdate(context.Background(), tgbotapi.Update{Message: msg})
	require.NoError(t, err)

	assert.Contains(t, api.lastMessage(t).Text, "/start")
}
