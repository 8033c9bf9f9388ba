package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showCardOfDay(chatID int64, messageID int) {
	rc := b.draw.CardOfDay()

	orientation := "⬆️ Прямая"
	if rc.Reversed {
		orientation = "⬇️ Перевернутая"
	}

	text := fmt.Sprintf(
		"🎴 <b>Ваша карта дня</b>\n\n"+
			"%s <b>%s</b>\n"+
			"<i>%s</i>\n\n"+
			"Положение: %s\n\n"+
			"💫 <b>Значение:</b>\n%s\n\n"+
			"📝 <b>Совет:</b>\n%s\n\n"+
			"<i>Позвольте энергии этой карты направлять вас сегодня!</i>",
		rc.Card.Emoji, rc.Card.Name, rc.Card.NameEn,
		orientation, rc.Card.Meaning(rc.Reversed), rc.Card.Description,
	)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Другая карта", "card_of_day"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiSpread+" Сделать расклад", "spreads_menu"),
		),
		backToMainRow(),
	)

	if rc.Card.Image != "" {
		b.replaceWithPhoto(chatID, messageID, rc.Card.Image, text, &kb)
	} else {
		b.replace(chatID, messageID, text, &kb)
	}

	b.logger.Info("card of day drawn", "user_id", chatID, "card", rc.Card.Name, "reversed", rc.Reversed)
}

func (b *Bot) showQuickAnswerIntro(chatID int64, messageID int) {
	text := "❓ <b>Быстрый ответ</b>\n\n" +
		"Сейчас я вытяну карту и дам ответ на ваш вопрос.\n\n" +
		"💭 Сформулируйте вопрос в уме, чтобы ответ был Да или Нет.\n\n" +
		"Например:\n" +
		"• \"Стоит ли мне принять это предложение?\"\n" +
		"• \"Это правильное решение?\"\n" +
		"• \"Будет ли успешным этот проект?\"\n\n" +
		"Когда будете готовы, нажмите кнопку ниже:"

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎴 Вытянуть карту", "draw_quick_answer"),
		),
		backToMainRow(),
	)
	b.replace(chatID, messageID, text, &kb)
}

func (b *Bot) drawQuickAnswer(chatID int64, messageID int) {
	answer := b.draw.QuickYesNo()
	rc := answer.Card

	answerEmoji := "✅"
	if !answer.Yes {
		answerEmoji = "❌"
	}
	orientation := "прямом"
	if rc.Reversed {
		orientation = "перевернутом"
	}

	text := fmt.Sprintf(
		"%s <b>Ответ: %s</b>\n\n"+
			"Выпала карта:\n"+
			"%s <b>%s</b> (в %s положении)\n\n"+
			"💬 <b>Пояснение:</b>\n%s\n\n"+
			"🔮 <b>Совет:</b>\n%s",
		answerEmoji, answer.Verdict,
		rc.Card.Emoji, rc.Card.Name, orientation,
		rc.Card.Meaning(rc.Reversed), rc.Card.Description,
	)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Задать другой вопрос", "quick_answer"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiSpread+" Подробный расклад", "spreads_menu"),
		),
		backToMainRow(),
	)

	if rc.Card.Image != "" {
		b.replaceWithPhoto(chatID, messageID, rc.Card.Image, text, &kb)
	} else {
		b.replace(chatID, messageID, text, &kb)
	}

	b.logger.Info("quick answer drawn", "user_id", chatID, "verdict", answer.Verdict, "card", rc.Card.Name)
}
