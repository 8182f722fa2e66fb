package bot

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/luminohq/lumino-bot/internal/callback"
	"github.com/luminohq/lumino-bot/internal/pagination"
	"github.com/luminohq/lumino-bot/internal/render"
	"github.com/luminohq/lumino-bot/internal/store"
)

// toggleKeyboard builds the approval toggle button for a detail block. The
// token encodes the state the block was rendered with; ids that cannot be
// encoded (defensively possible with a malformed store row) drop the button
// rather than the whole block.
func (b *Bot) toggleKeyboard(user store.UserProfile) (tgbotapi.InlineKeyboardMarkup, bool) {
	token, err := callback.EncodeToggle(user.ID, user.Approved)
	if err != nil {
		b.logger.Warn("toggle token rejected", slog.String("user_id", user.ID), slog.Any("error", err))
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(render.ToggleButtonLabel(user.Approved), token),
		),
	), true
}

// navKeyboard builds the prev/next row for a listing page. It returns false
// when the page has no navigation affordances at all.
func navKeyboard(page pagination.Page) (tgbotapi.InlineKeyboardMarkup, bool) {
	var buttons []tgbotapi.InlineKeyboardButton
	if page.HasPrev {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("⏮ Prev", callback.EncodePage(page.Index-1)))
	}
	if page.HasNext {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("⏭ Next", callback.EncodePage(page.Index+1)))
	}
	if len(buttons) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons), true
}
