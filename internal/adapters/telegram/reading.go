package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

// fallbackTips are rotated when a user writes text with no active session.
var fallbackTips = []string{
	"💡 Хотите узнать о картах Таро? Используйте /menu",
	"🔮 Готовы сделать расклад? Нажмите /start",
	"❓ Нужна помощь? Команда /help",
	"🎴 Попробуйте \"Карту дня\" для быстрого совета!",
	"✨ Выберите расклад в главном меню /menu",
}

// handleText routes free text: card input when a session is open, a random
// tip otherwise.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if _, ok := b.reading.Sessions().Get(chatID); !ok {
		tip := fallbackTips[b.draw.Roll(len(fallbackTips))]
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔮 Открыть меню", "main_menu"),
			),
		)
		b.send(chatID, tip, &kb)
		return
	}

	b.handleCardsInput(ctx, chatID, msg.Text)
}

func (b *Bot) handleCardsInput(ctx context.Context, chatID int64, text string) {
	b.sendTyping(chatID)

	session, cards, err := b.reading.ValidateCards(chatID, text)
	if err != nil {
		b.handleReadingError(chatID, session, err)
		return
	}

	// Echo the recognized cards and warn about the wait before the slow
	// upstream call starts.
	b.send(chatID, formatCardsList(cards, session.Positions), nil)
	b.send(chatID, emojiAI+" Анализирую расклад...\nЭто может занять несколько секунд.", nil)
	b.sendTyping(chatID)

	reading, err := b.reading.CompleteReading(ctx, chatID, session, cards)
	if err != nil {
		b.handleReadingError(chatID, session, err)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if reading.Saved {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Сохранено в историю", "view_history_"+reading.Entry.ID),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiSpread+" Новый расклад", "spreads_menu"),
			tgbotapi.NewInlineKeyboardButtonData("📜 История", "show_history"),
		),
		backToMainRow(),
	)
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	b.send(chatID, fmt.Sprintf("🔮 <b>Толкование расклада \"%s\"</b>\n\n%s", reading.Session.SpreadName, reading.Interpretation), &kb)

	b.logger.Info("reading delivered",
		"user_id", chatID,
		"spread", reading.Session.SpreadName,
		"latency_ms", reading.LatencyMS,
		"saved", reading.Saved,
	)
}

func (b *Bot) handleReadingError(chatID int64, session domain.Session, err error) {
	var parseErrs *domain.ParseErrors
	var countErr *domain.CountMismatchError

	switch {
	case errors.As(err, &parseErrs):
		// Session stays open for another attempt.
		lines := make([]string, len(parseErrs.Messages))
		for i, m := range parseErrs.Messages {
			lines[i] = "❌ " + m
		}
		b.send(chatID,
			"❌ <b>Ошибки при распознавании карт:</b>\n\n"+strings.Join(lines, "\n")+
				"\n\nПожалуйста, проверьте названия карт и попробуйте снова.",
			nil)

	case errors.As(err, &countErr):
		// Session stays open for another attempt.
		b.send(chatID, fmt.Sprintf(
			"❌ Неверное количество карт!\n\n"+
				"Для расклада \"%s\" нужно %d карт(ы), а вы ввели %d.\n\n"+
				"Попробуйте еще раз.",
			countErr.SpreadName, countErr.Expected, countErr.Got,
		), nil)

	case errors.Is(err, domain.ErrNoSession):
		// No session to resume; back to the menu.
		b.sendMainMenu(chatID)

	default:
		// Upstream failure: the session is already aborted.
		b.logger.Error("interpretation failed", "user_id", chatID, "spread", session.SpreadName, "error", err)
		kb := tgbotapi.NewInlineKeyboardMarkup(backToMainRow())
		b.send(chatID,
			"❌ Произошла ошибка при получении толкования.\n\n"+
				"Пожалуйста, попробуйте позже или выберите другой расклад.",
			&kb)
	}
}

func formatCardsList(cards []domain.ResolvedCard, positions []string) string {
	var s strings.Builder
	s.WriteString("🎴 <b>Ваши карты:</b>\n\n")

	for i, rc := range cards {
		label := fmt.Sprintf("%d.", i+1)
		if i < len(positions) {
			// Positions read "1. Прошлое - истоки"; the short label is
			// everything before the dash.
			label, _, _ = strings.Cut(positions[i], " - ")
		}
		orientation := "⬆️ прямая"
		if rc.Reversed {
			orientation = "⬇️ перевернутая"
		}
		emoji := rc.Card.Emoji
		if emoji == "" {
			emoji = "🎴"
		}
		fmt.Fprintf(&s, "%s %s %s (%s)\n", label, emoji, rc.Card.Name, orientation)
	}

	return s.String()
}
