package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/courtsidehq/courtside/internal/backend"
	"github.com/courtsidehq/courtside/internal/config"
	"github.com/courtsidehq/courtside/internal/metrics"
	"github.com/courtsidehq/courtside/internal/telegram"
)

func main() {
	log.SetFormatter(log.JSONFormatter)
	cfg := config.LoadBot()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to create bot API: %s", err)
	}
	log.Info("Bot authorized", "username", api.Self.UserName)

	metricsSvc := metrics.NewService()
	client := backend.NewClient(cfg.BackendURL, metricsSvc)
	bot := telegram.NewBot(api, client, cfg.WebAppURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot stopped with error: %s", err)
	}
	log.Info("Bot process shutting down")
}
