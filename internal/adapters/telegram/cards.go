package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

const cardsPerPage = 10

var suitTitles = map[string]string{
	"wands":     "🔥 Жезлы",
	"cups":      "💧 Кубки",
	"swords":    "⚔️ Мечи",
	"pentacles": "🪙 Пентакли",
}

func (b *Bot) showCardsMenu(chatID int64, messageID int) {
	text := emojiCards + " <b>Справочник карт Таро</b>\n\n" +
		"Таро состоит из 78 карт:\n\n" +
		"✨ <b>Старшие Арканы (22 карты)</b>\n" +
		"Основные жизненные уроки и духовные принципы\n\n" +
		"🎴 <b>Младшие Арканы (56 карт)</b>\n" +
		"Повседневные события и ситуации:\n" +
		"• 🔥 Жезлы - действие, энергия, карьера\n" +
		"• 💧 Кубки - эмоции, отношения, чувства\n" +
		"• ⚔️ Мечи - мысли, конфликты, решения\n" +
		"• 🪙 Пентакли - материальное, финансы, здоровье\n\n" +
		"Выберите, что хотите изучить:"

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiMajor+" Старшие Арканы (22 карты)", "arcana_major"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔥 Жезлы (14 карт)", "arcana_wands"),
			tgbotapi.NewInlineKeyboardButtonData("💧 Кубки (14 карт)", "arcana_cups"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚔️ Мечи (14 карт)", "arcana_swords"),
			tgbotapi.NewInlineKeyboardButtonData("🪙 Пентакли (14 карт)", "arcana_pentacles"),
		),
		backToMainRow(),
	)
	b.replace(chatID, messageID, text, &kb)
}

func (b *Bot) arcanaCards(arcana string) []domain.Card {
	if arcana == "major" {
		return b.cards.MajorArcana()
	}
	return b.cards.SuitCards(domain.Suit(arcana))
}

func (b *Bot) showArcana(chatID int64, messageID int, arcana string, page int) {
	cards := b.arcanaCards(arcana)
	if len(cards) == 0 {
		return
	}

	title := emojiMajor + " <b>Старшие Арканы</b>\n\nВыберите карту для просмотра:"
	if arcana != "major" {
		title = suitTitles[arcana] + " <b>Младшие Арканы</b>\n\nВыберите карту для просмотра:"
	}

	totalPages := (len(cards) + cardsPerPage - 1) / cardsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}
	start := page * cardsPerPage
	end := min(start+cardsPerPage, len(cards))

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := start; i < end; i++ {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", cards[i].Emoji, cards[i].Name),
				fmt.Sprintf("show_card_%s_%d", arcana, i),
			),
		))
	}

	if totalPages > 1 {
		var nav []tgbotapi.InlineKeyboardButton
		if page > 0 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", fmt.Sprintf("cards_page_%s_%d", arcana, page-1)))
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📄 %d/%d", page+1, totalPages), "ignore"))
		if page < totalPages-1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Вперед ➡️", fmt.Sprintf("cards_page_%s_%d", arcana, page+1)))
		}
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(emojiBack+" К выбору аркана", "cards_menu"),
	))

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.replace(chatID, messageID, title, &kb)
}

func (b *Bot) showCard(chatID int64, messageID int, arcana string, index int) {
	cards := b.arcanaCards(arcana)
	if index < 0 || index >= len(cards) {
		return
	}
	card := cards[index]

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiBack+" К списку карт", "arcana_"+arcana),
		),
		backToMainRow(),
	)

	text := formatCardInfo(card)
	if card.Image != "" {
		b.replaceWithPhoto(chatID, messageID, card.Image, text, &kb)
	} else {
		b.replace(chatID, messageID, text, &kb)
	}

	b.logger.Info("card viewed", "user_id", chatID, "card", card.Name)
}

func formatCardInfo(card domain.Card) string {
	emoji := card.Emoji
	if emoji == "" {
		emoji = "🎴"
	}

	var s strings.Builder
	fmt.Fprintf(&s, "%s <b>%s</b>\n", emoji, card.Name)
	fmt.Fprintf(&s, "<i>%s</i>\n\n", card.NameEn)
	fmt.Fprintf(&s, "📖 <b>Описание:</b>\n%s\n\n", card.Description)
	fmt.Fprintf(&s, "⬆️ <b>Прямое положение:</b>\n%s\n\n", card.Upright)
	fmt.Fprintf(&s, "⬇️ <b>Перевернутое положение:</b>\n%s\n\n", card.Reversed)
	fmt.Fprintf(&s, "🔑 <b>Ключевые слова:</b>\n%s", strings.Join(card.Keywords, ", "))
	return s.String()
}
