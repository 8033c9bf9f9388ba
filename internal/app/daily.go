package app

import (
	"strings"

	"github.com/avetisdav94/TarotBot/internal/domain"
	"github.com/avetisdav94/TarotBot/internal/ports"
)

// positiveCardNames is the fixed membership list behind the quick yes/no
// answer. The test is a substring match against the drawn card's name, so
// "Туз" covers every ace.
var positiveCardNames = []string{
	"Шут",
	"Маг",
	"Солнце",
	"Звезда",
	"Мир",
	"Туз",
	"Четверка Жезлов",
	"Шестерка Жезлов",
	"Девятка Кубков",
	"Десятка Кубков",
}

// QuickAnswer is the verdict of a one-card yes/no draw.
type QuickAnswer struct {
	Card    domain.ResolvedCard
	Verdict string
	Yes     bool
}

// DrawService produces the single-card quick features: card of the day and
// the yes/no answer.
type DrawService struct {
	catalog ports.CardCatalog
	rng     domain.RNG
}

func NewDrawService(catalog ports.CardCatalog, rng domain.RNG) *DrawService {
	return &DrawService{catalog: catalog, rng: rng}
}

// Roll exposes the RNG to presentation code that only needs an index.
func (s *DrawService) Roll(n int) int { return s.rng.Intn(n) }

// CardOfDay draws a uniform random card, reversed with 30% probability.
func (s *DrawService) CardOfDay() domain.ResolvedCard {
	cards := s.catalog.AllCards()
	card := cards[s.rng.Intn(len(cards))]
	return domain.ResolvedCard{
		Card:     card,
		Reversed: s.rng.Intn(10) < 3,
	}
}

// QuickYesNo draws a random card, reversed with 50% probability, and maps its
// energy to a yes/no verdict.
func (s *DrawService) QuickYesNo() QuickAnswer {
	cards := s.catalog.AllCards()
	card := cards[s.rng.Intn(len(cards))]
	reversed := s.rng.Intn(2) == 1

	positive := false
	for _, name := range positiveCardNames {
		if strings.Contains(card.Name, name) {
			positive = true
			break
		}
	}

	var verdict string
	var yes bool
	switch {
	case reversed && positive:
		verdict = "Скорее НЕТ"
	case reversed:
		verdict = "Точно НЕТ"
	case positive:
		verdict = "Точно ДА"
		yes = true
	default:
		verdict = "Скорее ДА"
		yes = true
	}

	return QuickAnswer{
		Card:    domain.ResolvedCard{Card: card, Reversed: reversed},
		Verdict: verdict,
		Yes:     yes,
	}
}
