package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

const (
	historyPerPage = 5
	// Telegram caps messages at 4096 characters; long interpretations are
	// truncated with a notice.
	maxViewLength  = 4000
	viewTruncateAt = 3950
)

func (b *Bot) showHistory(chatID int64, messageID int, page int) {
	entries := b.history.List(chatID, 0)

	text := "📜 <b>История гаданий</b>\n\nУ вас пока нет сохраненных раскладов.\n\nСделайте первый расклад!"
	if len(entries) > 0 {
		text = fmt.Sprintf("📜 <b>История ваших гаданий</b>\n\nВсего раскладов: %d\n\nВыберите расклад для просмотра:", len(entries))
	}

	kb := b.historyKeyboard(entries, page)
	b.replace(chatID, messageID, text, &kb)
}

func (b *Bot) historyKeyboard(entries []domain.HistoryEntry, page int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if len(entries) == 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 История пуста", "ignore"),
		))
	} else {
		totalPages := (len(entries) + historyPerPage - 1) / historyPerPage
		if page < 0 || page >= totalPages {
			page = 0
		}
		start := page * historyPerPage
		end := min(start+historyPerPage, len(entries))

		for _, entry := range entries[start:end] {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s - %s", entry.SpreadName, entry.Date),
					"view_history_"+entry.ID,
				),
			))
		}

		if totalPages > 1 {
			var nav []tgbotapi.InlineKeyboardButton
			if page > 0 {
				nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("history_page_%d", page-1)))
			}
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page+1, totalPages), "ignore"))
			if page < totalPages-1 {
				nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("history_page_%d", page+1)))
			}
			rows = append(rows, nav)
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Очистить историю", "clear_history_confirm"),
		))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiSpread+" Новый расклад", "spreads_menu"),
		),
		backToMainRow(),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) viewHistoryEntry(query *tgbotapi.CallbackQuery, chatID int64, messageID int, entryID string) {
	entry, ok := b.history.GetByID(chatID, entryID)
	if !ok {
		b.alertCallback(query.ID, "❌ Расклад не найден")
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Удалить этот расклад", "delete_history_"+entry.ID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiBack+" К истории", "show_history"),
		),
		backToMainRow(),
	)
	b.replace(chatID, messageID, formatHistoryEntry(entry), &kb)
	b.ackCallback(query.ID, "")
}

func formatHistoryEntry(entry domain.HistoryEntry) string {
	var s strings.Builder
	fmt.Fprintf(&s, "🔮 <b>%s</b>\n", entry.SpreadName)
	fmt.Fprintf(&s, "📅 %s\n\n", entry.Date)

	s.WriteString("🎴 <b>Карты:</b>\n")
	for i, card := range entry.Cards {
		orientation := "⬆️"
		if card.Reversed {
			orientation = "⬇️"
		}
		emoji := card.Emoji
		if emoji == "" {
			emoji = "🎴"
		}
		fmt.Fprintf(&s, "%d. %s %s %s\n", i+1, emoji, card.Name, orientation)
	}

	fmt.Fprintf(&s, "\n📖 <b>Толкование:</b>\n%s", entry.Interpretation)

	text := s.String()
	if len([]rune(text)) > maxViewLength {
		runes := []rune(text)
		text = string(runes[:viewTruncateAt]) + "...\n\n<i>(Толкование слишком длинное, показана часть)</i>"
	}
	return text
}

func (b *Bot) deleteHistoryEntry(query *tgbotapi.CallbackQuery, chatID int64, messageID int, entryID string) {
	if b.history.DeleteByID(chatID, entryID) {
		b.ackCallback(query.ID, "✅ Расклад удален")
	} else {
		b.alertCallback(query.ID, "❌ Расклад не найден")
	}

	entries := b.history.List(chatID, 0)
	text := "📜 <b>История гаданий</b>\n\nВсе расклады удалены."
	if len(entries) > 0 {
		text = fmt.Sprintf("📜 <b>История ваших гаданий</b>\n\nВсего раскладов: %d\n\nВыберите расклад для просмотра:", len(entries))
	}
	kb := b.historyKeyboard(entries, 0)
	b.replace(chatID, messageID, text, &kb)
}

func (b *Bot) confirmClearHistory(chatID int64, messageID int) {
	text := "⚠️ <b>Очистка истории</b>\n\n" +
		"Вы уверены, что хотите удалить ВСЕ расклады из истории?\n\n" +
		"Это действие нельзя отменить!"

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить все", "clear_history_confirmed"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "show_history"),
		),
	)
	b.replace(chatID, messageID, text, &kb)
}

func (b *Bot) clearHistory(query *tgbotapi.CallbackQuery, chatID int64, messageID int) {
	if err := b.history.Clear(chatID); err != nil {
		b.logger.Warn("history clear failed", "user_id", chatID, "error", err)
		b.alertCallback(query.ID, "❌ Не удалось очистить историю")
		return
	}
	b.ackCallback(query.ID, "✅ История очищена")

	kb := b.historyKeyboard(nil, 0)
	b.replace(chatID, messageID, "📜 <b>История гаданий</b>\n\nИстория успешно очищена.\n\nСделайте первый расклад!", &kb)
}

func (b *Bot) showStats(chatID int64, messageID int) {
	stats := b.history.Stats(chatID)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 История гаданий", "show_history"),
		),
		backToMainRow(),
	)
	b.replace(chatID, messageID, formatStats(stats), &kb)
}

func formatStats(stats domain.Stats) string {
	if stats.TotalSpreads == 0 {
		return "📊 <b>Статистика</b>\n\nУ вас пока нет раскладов в истории."
	}

	var s strings.Builder
	s.WriteString("📊 <b>Ваша статистика</b>\n\n")
	fmt.Fprintf(&s, "🔢 Всего раскладов: %d\n", stats.TotalSpreads)
	fmt.Fprintf(&s, "📅 Первый расклад: %s\n", stats.FirstDate)
	fmt.Fprintf(&s, "📅 Последний расклад: %s\n\n", stats.LastDate)

	if top := domain.TopN(stats.SpreadFreq, 3); len(top) > 0 {
		s.WriteString("🔮 <b>Любимые расклады:</b>\n")
		for _, nc := range top {
			fmt.Fprintf(&s, "• %s: %d раз\n", nc.Name, nc.Count)
		}
		s.WriteString("\n")
	}

	if top := domain.TopN(stats.CardFreq, 5); len(top) > 0 {
		s.WriteString("🎴 <b>Чаще всего выпадают:</b>\n")
		for _, nc := range top {
			fmt.Fprintf(&s, "• %s: %d раз\n", nc.Name, nc.Count)
		}
	}

	return s.String()
}
