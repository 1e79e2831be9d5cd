package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/courtsidehq/courtside/internal/backend"
)

const (
	commandTimeout = 10 * time.Second
	syncTimeout    = 30 * time.Second
)

const replySomethingWrong = "Something went wrong, please try again later."

// Bot relays Telegram updates to the backend API: it registers players and
// chats, and keeps chat membership in sync with what Telegram reports.
type Bot struct {
	api       BotAPI
	backend   backend.Client
	webAppURL string
}

// BotAPI is the subset of tgbotapi.BotAPI the bot uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// NewBot creates a new bot instance.
func NewBot(api BotAPI, backendClient backend.Client, webAppURL string) *Bot {
	return &Bot{
		api:       api,
		backend:   backendClient,
		webAppURL: webAppURL,
	}
}

// Run consumes the long-poll update channel until the context is cancelled.
// Updates are handled sequentially; a failed update is logged and never stops
// the loop.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Info("Bot update loop started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.handleUpdate(ctx, update); err != nil {
				log.Error("Failed to handle update", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.MyChatMember != nil {
		return b.handleMyChatMember(ctx, update.MyChatMember)
	}
	if update.Message != nil {
		return b.handleMessage(ctx, update.Message)
	}
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if len(msg.NewChatMembers) > 0 {
		return b.handleNewChatMembers(ctx, msg)
	}
	if msg.LeftChatMember != nil {
		return b.handleLeftChatMember(ctx, msg)
	}
	if !msg.IsCommand() || msg.From == nil {
		return nil
	}

	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "me":
		return b.handleMe(ctx, msg)
	case "sync":
		return b.handleSync(ctx, msg)
	}
	return nil
}

// handleMyChatMember registers the chat when the bot is added to a group or
// supergroup. Leaving a chat needs no action: the rows stay until an admin
// removes them.
func (b *Bot) handleMyChatMember(ctx context.Context, ev *tgbotapi.ChatMemberUpdated) error {
	status := ev.NewChatMember.Status
	if status != "member" && status != "administrator" {
		return nil
	}
	if !isGroupChat(ev.Chat.Type) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	registration, err := b.backend.RegisterChat(ctx, backend.RegisterChatParams{
		TgChatID: ev.Chat.ID,
		Title:    optional(ev.Chat.Title),
		Type:     optional(ev.Chat.Type),
	})
	if err != nil {
		return fmt.Errorf("failed to register chat %d: %w", ev.Chat.ID, err)
	}
	log.Info("Chat registered", "tg_chat_id", ev.Chat.ID, "created", registration.Created)
	return nil
}

func (b *Bot) handleNewChatMembers(ctx context.Context, msg *tgbotapi.Message) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	for _, user := range msg.NewChatMembers {
		if user.IsBot {
			continue
		}
		status := "active"
		err := b.backend.UpdateMember(ctx, backend.UpdateMemberParams{
			TgChatID:    msg.Chat.ID,
			TgUserID:    user.ID,
			Username:    optional(user.UserName),
			DisplayName: optional(DisplayName(&user)),
			Status:      &status,
		})
		if err != nil {
			log.Error("Failed to record joined member", "tg_chat_id", msg.Chat.ID, "tg_user_id", user.ID, "error", err)
		}
	}
	return nil
}

func (b *Bot) handleLeftChatMember(ctx context.Context, msg *tgbotapi.Message) error {
	user := msg.LeftChatMember
	if user.IsBot {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	status := "left"
	err := b.backend.UpdateMember(ctx, backend.UpdateMemberParams{
		TgChatID: msg.Chat.ID,
		TgUserID: user.ID,
		Status:   &status,
	})
	if err != nil {
		log.Error("Failed to record left member", "tg_chat_id", msg.Chat.ID, "tg_user_id", user.ID, "error", err)
	}
	return nil
}

// handleStart registers the sender as a player and offers the web app.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	player, err := b.backend.RegisterPlayer(ctx, backend.RegisterPlayerParams{
		TgID:        msg.From.ID,
		Username:    optional(msg.From.UserName),
		DisplayName: DisplayName(msg.From),
	})
	if err != nil {
		log.Error("Failed to register player", "tg_user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, replySomethingWrong)
		return nil
	}

	text := fmt.Sprintf("Welcome, %s! Your current rating is %.0f.", player.DisplayName, player.CurrentRating)
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	// WebApp buttons only work in private chats.
	if b.webAppURL != "" && msg.Chat.IsPrivate() {
		reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			[]tgbotapi.InlineKeyboardButton{
				{Text: "Open app", WebApp: &tgbotapi.WebAppInfo{URL: b.webAppURL}},
			},
		)
	}
	if _, err := b.api.Send(reply); err != nil {
		return fmt.Errorf("failed to send start reply: %w", err)
	}
	return nil
}

func (b *Bot) handleMe(ctx context.Context, msg *tgbotapi.Message) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	player, err := b.backend.GetPlayerByTgID(ctx, msg.From.ID)
	if errors.Is(err, backend.ErrNotFound) {
		b.reply(msg.Chat.ID, "You are not registered yet. Send /start first.")
		return nil
	}
	if err != nil {
		log.Error("Failed to fetch player", "tg_user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, replySomethingWrong)
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", player.DisplayName)
	if player.Username != nil {
		fmt.Fprintf(&sb, "@%s\n", *player.Username)
	}
	fmt.Fprintf(&sb, "Rating: %.0f", player.CurrentRating)
	if player.RatingLetter != nil {
		fmt.Fprintf(&sb, " (%s)", *player.RatingLetter)
	}
	b.reply(msg.Chat.ID, sb.String())
	return nil
}

// handleSync snapshots the chat administrators and reconciles them with the
// backend. Telegram does not expose the full member list to bots, so the
// snapshot covers admins only; regular members arrive through join events.
func (b *Bot) handleSync(ctx context.Context, msg *tgbotapi.Message) error {
	if !isGroupChat(msg.Chat.Type) {
		b.reply(msg.Chat.ID, "/sync only works in group chats.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	admins, err := b.api.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: msg.Chat.ID},
	})
	if err != nil {
		log.Error("Failed to fetch chat administrators", "tg_chat_id", msg.Chat.ID, "error", err)
		b.reply(msg.Chat.ID, replySomethingWrong)
		return nil
	}

	if !isChatAdmin(admins, msg.From.ID) {
		b.reply(msg.Chat.ID, "Only chat administrators can run /sync.")
		return nil
	}

	// Make sure the chat row exists even if the add event was missed.
	if _, err := b.backend.RegisterChat(ctx, backend.RegisterChatParams{
		TgChatID: msg.Chat.ID,
		Title:    optional(msg.Chat.Title),
		Type:     optional(msg.Chat.Type),
	}); err != nil {
		log.Error("Failed to register chat before sync", "tg_chat_id", msg.Chat.ID, "error", err)
		b.reply(msg.Chat.ID, replySomethingWrong)
		return nil
	}

	summary, err := b.backend.SyncMembers(ctx, msg.Chat.ID, MembersFromAdmins(admins))
	if err != nil {
		log.Error("Failed to sync members", "tg_chat_id", msg.Chat.ID, "error", err)
		b.reply(msg.Chat.ID, replySomethingWrong)
		return nil
	}

	b.reply(msg.Chat.ID, fmt.Sprintf(
		"Sync complete: %d members processed, %d created, %d updated.",
		summary.MembersProcessed, summary.PlayersCreated, summary.PlayersUpdated))
	return nil
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error("Failed to send message", "tg_chat_id", chatID, "error", err)
	}
}

// DisplayName builds a human-readable name from a Telegram user, falling
// back to the username when no real name is set.
func DisplayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	return u.UserName
}

// MembersFromAdmins converts a chat administrator list into a membership
// snapshot, skipping bot accounts.
func MembersFromAdmins(admins []tgbotapi.ChatMember) []backend.Member {
	members := make([]backend.Member, 0, len(admins))
	for _, admin := range admins {
		if admin.User == nil || admin.User.IsBot {
			continue
		}
		members = append(members, backend.Member{
			TgID:        admin.User.ID,
			Username:    optional(admin.User.UserName),
			DisplayName: optional(DisplayName(admin.User)),
			IsAdmin:     true,
		})
	}
	return members
}

func isGroupChat(chatType string) bool {
	return chatType == "group" || chatType == "supergroup"
}

func isChatAdmin(admins []tgbotapi.ChatMember, userID int64) bool {
	for _, admin := range admins {
		if admin.User != nil && admin.User.ID == userID {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
