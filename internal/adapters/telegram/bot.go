// Package telegram is the presentation layer: it renders menus, drives the
// spread flow over callback queries and hands free text to the reading
// service. All state lives in the injected services; the bot itself is
// stateless between updates.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avetisdav94/TarotBot/internal/app"
	"github.com/avetisdav94/TarotBot/internal/ports"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	cards   ports.CardCatalog
	spreads ports.SpreadCatalog
	reading *app.ReadingService
	draw    *app.DrawService
	history ports.HistoryStore
	logger  *slog.Logger
}

func New(
	token string,
	cards ports.CardCatalog,
	spreads ports.SpreadCatalog,
	reading *app.ReadingService,
	draw *app.DrawService,
	history ports.HistoryStore,
	logger *slog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{
		api:     api,
		cards:   cards,
		spreads: spreads,
		reading: reading,
		draw:    draw,
		history: history,
		logger:  logger,
	}, nil
}

// Username returns the authenticated bot account name.
func (b *Bot) Username() string { return b.api.Self.UserName }

// Run polls for updates until ctx is cancelled. Handlers run to completion
// one update at a time; there is no intra-handler preemption.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.sendWelcome(msg)
		case "help":
			b.sendHelp(msg.Chat.ID, 0)
		case "menu":
			b.sendMainMenu(msg.Chat.ID)
		}
		return
	}
	b.handleText(ctx, msg)
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.ackCallback(query.ID, "")
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	switch {
	case data == "main_menu":
		b.showMainMenu(chatID, messageID)
	case data == "cards_menu":
		b.showCardsMenu(chatID, messageID)
	case data == "arcana_major":
		b.showArcana(chatID, messageID, "major", 0)
	case data == "arcana_wands", data == "arcana_cups", data == "arcana_swords", data == "arcana_pentacles":
		b.showArcana(chatID, messageID, strings.TrimPrefix(data, "arcana_"), 0)
	case strings.HasPrefix(data, "cards_page_"):
		arcana, page, ok := parsePageRef(strings.TrimPrefix(data, "cards_page_"))
		if ok {
			b.showArcana(chatID, messageID, arcana, page)
		}
	case strings.HasPrefix(data, "show_card_"):
		arcana, index, ok := parsePageRef(strings.TrimPrefix(data, "show_card_"))
		if ok {
			b.showCard(chatID, messageID, arcana, index)
		}
	case data == "spreads_menu":
		b.showSpreadsMenu(chatID, messageID)
	case strings.HasPrefix(data, "start_spread_"):
		b.startSpread(query, chatID, messageID, strings.TrimPrefix(data, "start_spread_"))
		return
	case strings.HasPrefix(data, "spread_"):
		b.showSpread(query, chatID, messageID, strings.TrimPrefix(data, "spread_"))
		return
	case data == "card_of_day":
		b.showCardOfDay(chatID, messageID)
	case data == "quick_answer":
		b.showQuickAnswerIntro(chatID, messageID)
	case data == "draw_quick_answer":
		b.drawQuickAnswer(chatID, messageID)
	case data == "show_history":
		b.showHistory(chatID, messageID, 0)
	case strings.HasPrefix(data, "history_page_"):
		if page, err := strconv.Atoi(strings.TrimPrefix(data, "history_page_")); err == nil {
			b.showHistory(chatID, messageID, page)
		}
	case strings.HasPrefix(data, "view_history_"):
		b.viewHistoryEntry(query, chatID, messageID, strings.TrimPrefix(data, "view_history_"))
		return
	case strings.HasPrefix(data, "delete_history_"):
		b.deleteHistoryEntry(query, chatID, messageID, strings.TrimPrefix(data, "delete_history_"))
		return
	case data == "clear_history_confirm":
		b.confirmClearHistory(chatID, messageID)
	case data == "clear_history_confirmed":
		b.clearHistory(query, chatID, messageID)
		return
	case data == "show_stats":
		b.showStats(chatID, messageID)
	case data == "help":
		b.sendHelp(chatID, messageID)
	case data == "about":
		b.showAbout(chatID, messageID)
	case data == "ignore":
		b.ackCallback(query.ID, "")
		return
	}

	// Cases that answer the query themselves return above; Telegram rejects
	// a second answer for the same query.
	b.ackCallback(query.ID, "")
}

// parsePageRef splits callback payloads of the form "<arcana>_<number>".
func parsePageRef(ref string) (string, int, bool) {
	idx := strings.LastIndex(ref, "_")
	if idx < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(ref[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return ref[:idx], n, true
}

// ackCallback answers a pending callback query. Best effort: a failed ack is
// logged, never propagated.
func (b *Bot) ackCallback(queryID, text string) {
	cb := tgbotapi.NewCallback(queryID, text)
	if _, err := b.api.Request(cb); err != nil {
		b.logger.Warn("callback ack failed", "error", err)
	}
}

func (b *Bot) alertCallback(queryID, text string) {
	cb := tgbotapi.NewCallbackWithAlert(queryID, text)
	if _, err := b.api.Request(cb); err != nil {
		b.logger.Warn("callback alert failed", "error", err)
	}
}

// send delivers an HTML message with an optional inline keyboard.
// Fire-and-forget: a send failure is logged and the flow continues.
func (b *Bot) send(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("send failed", "chat_id", chatID, "error", err)
	}
}

// replace deletes the previous message (best effort) and sends a fresh one.
// Editing in place breaks when the old message was a photo, so every screen
// transition deletes and resends.
func (b *Bot) replace(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	if messageID != 0 {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
			b.logger.Debug("delete failed", "chat_id", chatID, "message_id", messageID, "error", err)
		}
	}
	b.send(chatID, text, kb)
}

// replaceWithPhoto is replace with a captioned photo; falls back to plain
// text when the photo cannot be sent.
func (b *Bot) replaceWithPhoto(chatID int64, messageID int, imageURL, caption string, kb *tgbotapi.InlineKeyboardMarkup) {
	if messageID != 0 {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
			b.logger.Debug("delete failed", "chat_id", chatID, "message_id", messageID, "error", err)
		}
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(imageURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		photo.ReplyMarkup = *kb
	}
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Warn("photo send failed, falling back to text", "chat_id", chatID, "error", err)
		b.send(chatID, caption, kb)
	}
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug("chat action failed", "chat_id", chatID, "error", err)
	}
}
