package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/luminohq/lumino-bot/internal/callback"
	"github.com/luminohq/lumino-bot/internal/pagination"
	"github.com/luminohq/lumino-bot/internal/render"
	"github.com/luminohq/lumino-bot/internal/session"
	"github.com/luminohq/lumino-bot/internal/store"
)

const (
	msgHelp = "👋 Welcome to Lumino Bot!\n\n" +
		"Available commands:\n" +
		"/showall – Show all users\n" +
		"/show &lt;uuid/email/name&gt; – Search users"
	msgDenied        = "🚫 Access denied."
	msgNotAuthorized = "🚫 Not authorized."
	msgShowUsage     = "❗Usage: /show &lt;uuid/email/name&gt;"
	msgNoMatch       = "❌ No matching user found."
	msgNoUsers       = "📭 No users found."
	msgNoListing     = "❗No active listing. Use /showall first."
	msgSearchFailed  = "⚠️ Error searching user."
	msgListFailed    = "⚠️ Error loading users."
	msgToggleFailed  = "⚠️ Failed to update approval."
	msgBadToken      = "⚠️ This button is no longer valid."
)

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, msgHelp)
}

func (b *Bot) handleShow(ctx context.Context, msg *tgbotapi.Message) {
	if !b.authorized(msg.From.ID) {
		b.reply(msg.Chat.ID, msgDenied)
		return
	}
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 1 {
		b.reply(msg.Chat.ID, msgShowUsage)
		return
	}
	query := args[0]

	users, err := b.store.SearchUsers(ctx, query)
	if err != nil {
		b.logger.Error("search users failed", slog.String("query", query), slog.Any("error", err))
		b.reply(msg.Chat.ID, msgSearchFailed)
		return
	}
	if len(users) == 0 {
		b.reply(msg.Chat.ID, msgNoMatch)
		return
	}

	for _, user := range users {
		login, hasLogin, err := b.loginFor(ctx, user.ID)
		if err != nil {
			b.logger.Error("fetch login failed", slog.String("user_id", user.ID), slog.Any("error", err))
			b.reply(msg.Chat.ID, msgSearchFailed)
			return
		}
		b.sendDetailBlock(msg.Chat.ID, user, login, hasLogin)
	}
}

func (b *Bot) handleShowAll(ctx context.Context, msg *tgbotapi.Message) {
	if !b.authorized(msg.From.ID) {
		b.reply(msg.Chat.ID, msgDenied)
		return
	}
	b.sessions.Start(msg.From.ID, msg.Chat.ID)
	b.sendUserPage(ctx, msg.From.ID)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.logger.Warn("answer callback failed", slog.Any("error", err))
	}
	if cq.From == nil || cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	if !b.authorized(cq.From.ID) {
		b.editText(chatID, cq.Message.MessageID, msgNotAuthorized)
		return
	}

	action, err := callback.Decode(cq.Data)
	if err != nil {
		// should not happen for buttons this bot rendered
		b.logger.Warn("bad callback token", slog.String("data", cq.Data), slog.Any("error", err))
		b.reply(chatID, msgBadToken)
		return
	}

	switch act := action.(type) {
	case callback.PageAction:
		b.handlePageNav(ctx, cq, act)
	case callback.ToggleAction:
		b.handleToggle(ctx, cq, act)
	}
}

func (b *Bot) handlePageNav(ctx context.Context, cq *tgbotapi.CallbackQuery, act callback.PageAction) {
	if err := b.sessions.SetPage(cq.From.ID, act.Index); err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			b.reply(cq.Message.Chat.ID, msgNoListing)
			return
		}
		b.logger.Error("set page failed", slog.Any("error", err))
		b.reply(cq.Message.Chat.ID, msgListFailed)
		return
	}
	b.sendUserPage(ctx, cq.From.ID)
}

func (b *Bot) handleToggle(ctx context.Context, cq *tgbotapi.CallbackQuery, act callback.ToggleAction) {
	chatID := cq.Message.Chat.ID
	newState := !act.Approved

	entry := store.AuditEntry{
		AdminID:      strconv.FormatInt(cq.From.ID, 10),
		AdminName:    operatorName(cq.From),
		TargetUserID: act.TargetID,
		NewStatus:    newState,
		CreatedAt:    time.Now().UTC(),
	}
	if err := b.store.SetApproval(ctx, act.TargetID, newState, entry); err != nil {
		b.logger.Error("toggle approval failed",
			slog.String("target_id", act.TargetID),
			slog.Any("error", err))
		b.editText(chatID, cq.Message.MessageID, msgToggleFailed)
		return
	}

	user, err := b.store.GetUser(ctx, act.TargetID)
	if err != nil {
		b.logger.Error("refetch user failed", slog.String("target_id", act.TargetID), slog.Any("error", err))
		b.editText(chatID, cq.Message.MessageID, msgToggleFailed)
		return
	}
	login, hasLogin, err := b.loginFor(ctx, act.TargetID)
	if err != nil {
		b.logger.Error("refetch login failed", slog.String("target_id", act.TargetID), slog.Any("error", err))
		b.editText(chatID, cq.Message.MessageID, msgToggleFailed)
		return
	}

	text := render.UserDetail(user, login, hasLogin)
	if keyboard, ok := b.toggleKeyboard(user); ok {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cq.Message.MessageID, text, keyboard)
		edit.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(edit); err != nil {
			b.logger.Error("edit message failed", slog.Any("error", err))
		}
		return
	}
	b.editText(chatID, cq.Message.MessageID, text)
}

// sendUserPage renders the operator's current page into their session chat.
func (b *Bot) sendUserPage(ctx context.Context, operatorID int64) {
	sess, err := b.sessions.Get(operatorID)
	if err != nil {
		b.logger.Error("session lookup failed", slog.Int64("operator_id", operatorID), slog.Any("error", err))
		return
	}

	users, err := b.store.ListUsers(ctx)
	if err != nil {
		b.logger.Error("list users failed", slog.Any("error", err))
		b.reply(sess.ChatID, msgListFailed)
		return
	}
	if len(users) == 0 {
		b.reply(sess.ChatID, msgNoUsers)
		return
	}

	page := pagination.Compute(len(users), sess.PageIndex, b.pageSize)
	rows := make([]string, 0, page.End-page.Start)
	for _, user := range users[page.Start:page.End] {
		rows = append(rows, render.CompactUser(user))
	}
	if len(rows) > 0 {
		b.reply(sess.ChatID, strings.Join(rows, "\n\n"))
	}

	if keyboard, ok := navKeyboard(page); ok {
		b.replyWithKeyboard(sess.ChatID, render.PageFooter(page.Index, page.TotalPages), keyboard)
	}
}

func (b *Bot) sendDetailBlock(chatID int64, user store.UserProfile, login store.LoginRecord, hasLogin bool) {
	text := render.UserDetail(user, login, hasLogin)
	if keyboard, ok := b.toggleKeyboard(user); ok {
		b.replyWithKeyboard(chatID, text, keyboard)
		return
	}
	b.reply(chatID, text)
}

func (b *Bot) loginFor(ctx context.Context, id string) (store.LoginRecord, bool, error) {
	login, err := b.store.GetLoginByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.LoginRecord{}, false, nil
		}
		return store.LoginRecord{}, false, err
	}
	return login, true, nil
}

func (b *Bot) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("edit message failed", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}
