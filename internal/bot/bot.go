// Package bot routes inbound Telegram commands and button presses to the
// record store, and exposes the broadcast side used by the login watcher.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/luminohq/lumino-bot/internal/config"
	"github.com/luminohq/lumino-bot/internal/session"
	"github.com/luminohq/lumino-bot/internal/store"
)

// API is the slice of the Telegram client the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Store is the slice of the record store gateway the router calls.
type Store interface {
	SearchUsers(ctx context.Context, query string) ([]store.UserProfile, error)
	ListUsers(ctx context.Context) ([]store.UserProfile, error)
	GetUser(ctx context.Context, id string) (store.UserProfile, error)
	GetLoginByID(ctx context.Context, id string) (store.LoginRecord, error)
	SetApproval(ctx context.Context, id string, approved bool, entry store.AuditEntry) error
}

// Bot dispatches updates. Every command and button press passes the same
// operator allow-list gate before touching the store or a session.
type Bot struct {
	api           API
	store         Store
	sessions      *session.Registry
	admins        map[int64]struct{}
	broadcastChat string
	pageSize      int
	logger        *slog.Logger
}

func New(log *slog.Logger, api API, gateway Store, sessions *session.Registry, cfg config.TelegramConfig, pageSize int) *Bot {
	if log == nil {
		log = slog.Default()
	}
	admins := make(map[int64]struct{}, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = struct{}{}
	}
	return &Bot{
		api:           api,
		store:         gateway,
		sessions:      sessions,
		admins:        admins,
		broadcastChat: cfg.BroadcastChat,
		pageSize:      pageSize,
		logger:        log.With(slog.String("service", "bot")),
	}
}

// Run consumes the update stream until ctx is cancelled. Updates are handled
// sequentially, so actions from one operator apply in arrival order.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	b.logger.Info("bot started", slog.Int("admins", len(b.admins)))
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("updates channel closed")
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "show":
		b.handleShow(ctx, msg)
	case "showall":
		b.handleShowAll(ctx, msg)
	}
}

// authorized is the single allow-list gate for both commands and callbacks.
func (b *Bot) authorized(operatorID int64) bool {
	_, ok := b.admins[operatorID]
	return ok
}

// Broadcast sends text to the configured broadcast chat. The target is a
// numeric chat id or an @channel name.
func (b *Bot) Broadcast(_ context.Context, text string) error {
	return b.sendText(b.broadcastChat, text)
}

func (b *Bot) sendText(target, text string) error {
	if strings.HasPrefix(target, "@") {
		message := tgbotapi.NewMessageToChannel(target, text)
		message.ParseMode = tgbotapi.ModeHTML
		_, err := b.api.Send(message)
		return err
	}
	chatID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return fmt.Errorf("broadcast target must be @channel or chat_id")
	}
	return b.reply(chatID, text)
}

func (b *Bot) reply(chatID int64, text string) error {
	message := tgbotapi.NewMessage(chatID, text)
	message.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(message)
	if err != nil {
		b.logger.Error("send failed", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
	return err
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	message := tgbotapi.NewMessage(chatID, text)
	message.ParseMode = tgbotapi.ModeHTML
	message.ReplyMarkup = keyboard
	_, err := b.api.Send(message)
	if err != nil {
		b.logger.Error("send failed", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
	return err
}

// operatorName mirrors how the audit log names the acting operator: username
// when set, else the first/last name pair.
func operatorName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = strings.TrimSpace(user.UserName)
	}
	return name
}
