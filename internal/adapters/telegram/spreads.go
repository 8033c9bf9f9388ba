package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

func (b *Bot) showSpreadsMenu(chatID int64, messageID int) {
	// Reaching the menu also serves as the cancel target for an open
	// session. Close is idempotent.
	b.reading.Sessions().Close(chatID)

	text := emojiSpread + " <b>Расклады Таро</b>\n\n" +
		"Выберите расклад для гадания.\n\n" +
		"💡 <b>Совет:</b> Перед раскладом сформулируйте четкий вопрос и сосредоточьтесь на нем.\n\n" +
		"Каждый расклад имеет свое назначение:"

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, spread := range b.spreads.Spreads() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s (%d карт)", spread.Emoji, spread.Name, spread.CardsCount),
				"spread_"+spread.ID,
			),
		))
	}
	rows = append(rows, backToMainRow())

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.replace(chatID, messageID, text, &kb)
}

func (b *Bot) showSpread(query *tgbotapi.CallbackQuery, chatID int64, messageID int, spreadID string) {
	spread, ok := b.spreads.SpreadByID(spreadID)
	if !ok {
		b.alertCallback(query.ID, "❌ Расклад не найден")
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiCards+" Начать расклад", "start_spread_"+spread.ID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiBack+" К выбору расклада", "spreads_menu"),
		),
		backToMainRow(),
	)

	b.replace(chatID, messageID, formatSpreadDescription(spread), &kb)
	b.ackCallback(query.ID, "")
	b.logger.Info("spread selected", "user_id", chatID, "spread", spread.Name)
}

func formatSpreadDescription(spread domain.Spread) string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s <b>%s</b>\n\n", spread.Emoji, spread.Name)
	fmt.Fprintf(&s, "📋 <b>Описание:</b>\n%s\n\n", spread.Description)
	fmt.Fprintf(&s, "🎴 <b>Количество карт:</b> %d\n\n", spread.CardsCount)
	s.WriteString("<b>Позиции карт:</b>\n")
	for _, position := range spread.Positions {
		s.WriteString(position)
		s.WriteString("\n")
	}
	fmt.Fprintf(&s, "\n💡 <b>Инструкция:</b>\n%s", spread.Instruction)
	return s.String()
}

// startSpread opens a session for the user; any previous session is
// replaced without warning.
func (b *Bot) startSpread(query *tgbotapi.CallbackQuery, chatID int64, messageID int, spreadID string) {
	spread, ok := b.spreads.SpreadByID(spreadID)
	if !ok {
		b.alertCallback(query.ID, "❌ Расклад не найден")
		return
	}

	b.reading.Sessions().Open(chatID, spread)

	text := fmt.Sprintf(
		"%s <b>Расклад \"%s\"</b>\n\n"+
			"Введите названия %d карт(ы) через запятую.\n\n"+
			"<b>Пример:</b>\n"+
			"Шут, Маг, Императрица перевернутая\n\n"+
			"<i>Если карта выпала в перевернутом положении, добавьте слово \"перевернутая\" после названия.</i>\n\n"+
			"Введите карты:",
		spread.Emoji, spread.Name, spread.CardsCount,
	)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiBack+" Отмена", "spreads_menu"),
		),
	)
	b.replace(chatID, messageID, text, &kb)
	b.ackCallback(query.ID, "")

	b.logger.Info("spread started", "user_id", chatID, "spread", spread.Name)
}
