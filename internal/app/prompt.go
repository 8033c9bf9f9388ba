package app

import (
	"fmt"
	"strings"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

// SystemPrompt is the system role content sent with every interpretation
// request.
const SystemPrompt = "Ты опытный таролог, который дает глубокие и точные толкования карт Таро. " +
	"Твои ответы структурированы, понятны и помогают людям."

// ComposePrompt deterministically renders the user-role instruction for a
// reading. Card order is preserved exactly: position semantics depend on it.
func ComposePrompt(spreadName string, positions []string, cards []domain.ResolvedCard) string {
	var b strings.Builder

	b.WriteString("Ты профессиональный таролог с многолетним опытом. ")
	fmt.Fprintf(&b, "Пользователь сделал расклад \"%s\" и получил следующие карты:\n\n", spreadName)

	for i, rc := range cards {
		position := fmt.Sprintf("Позиция %d", i+1)
		if i < len(positions) {
			position = positions[i]
		}
		orientation := "прямая"
		if rc.Reversed {
			orientation = "перевернутая"
		}
		fmt.Fprintf(&b, "%s: %s (%s)\n", position, rc.Card.Name, orientation)
	}

	b.WriteString("\nДай подробное, структурированное толкование этого расклада. ")
	b.WriteString("Учитывай значение каждой позиции и взаимосвязь карт между собой. ")
	b.WriteString("Ответ должен быть понятным, поддерживающим и давать практические советы. ")
	b.WriteString("Используй эмодзи для лучшего восприятия. ")
	b.WriteString("Структурируй ответ по позициям, а в конце дай общий вывод и совет.")

	return b.String()
}
