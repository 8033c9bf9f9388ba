package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	emojiCards  = "🃏"
	emojiSpread = "🔮"
	emojiInfo   = "ℹ️"
	emojiBack   = "⬅️"
	emojiMajor  = "✨"
	emojiAI     = "🤖"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiCards+" Узнать о картах Таро", "cards_menu"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiSpread+" Выбрать расклад", "spreads_menu"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎴 Карта дня", "card_of_day"),
			tgbotapi.NewInlineKeyboardButtonData("❓ Быстрый ответ", "quick_answer"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 История гаданий", "show_history"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "show_stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(emojiInfo+" О боте", "about"),
			tgbotapi.NewInlineKeyboardButtonData("📚 Помощь", "help"),
		),
	)
}

func backToMainRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(emojiBack+" Главное меню", "main_menu"),
	)
}

func (b *Bot) sendWelcome(msg *tgbotapi.Message) {
	firstName := "друг"
	if msg.From != nil && msg.From.FirstName != "" {
		firstName = msg.From.FirstName
	}

	text := fmt.Sprintf(
		"🔮 <b>Добро пожаловать, %s!</b>\n\n"+
			"Я бот для работы с картами Таро, использующий искусственный интеллект для глубоких толкований.\n\n"+
			"✨ <b>Что я умею:</b>\n\n"+
			"🎴 <b>Справочник карт</b>\n"+
			"• Все 78 карт Таро с описаниями\n"+
			"• Значения в прямом и перевернутом положении\n\n"+
			"🔮 <b>Расклады</b>\n"+
			"• 5 различных типов раскладов\n"+
			"• AI-толкование с учетом контекста\n"+
			"• Поддержка перевернутых карт\n\n"+
			"⚡ <b>Быстрые функции</b>\n"+
			"• Карта дня\n"+
			"• Быстрый ответ Да/Нет\n"+
			"• История гаданий\n"+
			"• Статистика\n\n"+
			"Выберите действие из меню ниже:",
		firstName,
	)

	kb := mainMenuKeyboard()
	b.send(msg.Chat.ID, text, &kb)

	username := ""
	if msg.From != nil {
		username = msg.From.UserName
	}
	b.logger.Info("new user", "user_id", msg.Chat.ID, "username", username)
}

func (b *Bot) sendMainMenu(chatID int64) {
	kb := mainMenuKeyboard()
	b.send(chatID, "🔮 <b>Главное меню</b>\n\nВыберите действие:", &kb)
}

func (b *Bot) showMainMenu(chatID int64, messageID int) {
	kb := mainMenuKeyboard()
	b.replace(chatID, messageID, "🔮 <b>Главное меню</b>\n\nВыберите действие:", &kb)
}

// sendHelp replaces messageID when non-zero, otherwise sends a new message.
func (b *Bot) sendHelp(chatID int64, messageID int) {
	text := "📖 <b>Помощь по использованию бота</b>\n\n" +
		"<b>🎯 Основные команды:</b>\n" +
		"/start - Главное меню\n" +
		"/help - Эта справка\n" +
		"/menu - Вернуться в главное меню\n\n" +
		"<b>📚 Как изучать карты:</b>\n" +
		"1. Выберите \"Узнать о картах Таро\"\n" +
		"2. Выберите Старшие Арканы или масть\n" +
		"3. Кликните на интересующую карту\n\n" +
		"<b>🔮 Как делать расклады:</b>\n" +
		"1. Выберите \"Выбрать расклад\"\n" +
		"2. Выберите тип расклада\n" +
		"3. Нажмите \"Начать расклад\"\n" +
		"4. Введите карты через запятую\n" +
		"5. Получите AI-толкование\n\n" +
		"<b>✍️ Формат ввода карт:</b>\n" +
		"• Карты вводятся <b>через запятую</b>\n" +
		"• Используйте русские названия\n" +
		"• Для перевернутой карты добавьте слово \"перевернутая\"\n\n" +
		"<b>Примеры:</b>\n" +
		"✅ Шут, Маг, Императрица\n" +
		"✅ Шут перевернутый, Маг, Луна перевернутая\n" +
		"✅ Туз Кубков, Десятка Мечей перевернутая\n\n" +
		"<i>Помните: Таро - инструмент для самопознания и размышления! 🌟</i>"

	kb := tgbotapi.NewInlineKeyboardMarkup(backToMainRow())
	if messageID != 0 {
		b.replace(chatID, messageID, text, &kb)
	} else {
		b.send(chatID, text, &kb)
	}
}

func (b *Bot) showAbout(chatID int64, messageID int) {
	text := emojiInfo + " <b>О боте Таро</b>\n\n" +
		"🔮 Полнофункциональный бот для работы с картами Таро, использующий искусственный интеллект для глубоких и точных толкований.\n\n" +
		"<b>✨ Особенности:</b>\n\n" +
		"📚 <b>Полная колода</b>\n" +
		"• 22 Старших Аркана\n" +
		"• 56 Младших Арканов (4 масти)\n" +
		"• Подробные описания каждой карты\n\n" +
		"🔮 <b>Расклады</b>\n" +
		"• 5 различных типов раскладов\n" +
		"• AI-толкование с учетом контекста\n" +
		"• Поддержка перевернутых карт\n\n" +
		"🤖 <b>Искусственный интеллект</b>\n" +
		"• Технология Groq (llama-3.3-70b)\n" +
		"• Учет взаимосвязи карт\n" +
		"• Практические советы\n\n" +
		"⚡ <b>Дополнительно</b>\n" +
		"• Карта дня с советом\n" +
		"• Быстрый ответ Да/Нет\n" +
		"• История гаданий (10 последних)\n" +
		"• Статистика использования\n\n" +
		"<b>📖 Философия:</b>\n" +
		"Таро - это не предсказание будущего, а инструмент для самопознания, размышления и получения новых перспектив.\n\n" +
		"<i>Создано с 🔮 для изучения Таро</i>"

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Помощь", "help"),
		),
		backToMainRow(),
	)
	b.replace(chatID, messageID, text, &kb)
}
