package ports

import "github.com/avetisdav94/TarotBot/internal/domain"

// CardCatalog provides read-only access to the card reference data.
type CardCatalog interface {
	// AllCards returns every card, major arcana first.
	AllCards() []domain.Card
	// MajorArcana returns the 22 major arcana cards in order.
	MajorArcana() []domain.Card
	// SuitCards returns one minor arcana suit in rank order.
	SuitCards(suit domain.Suit) []domain.Card
	// FindByName resolves a normalized name against primary and alternate
	// card names, case-insensitively. Exact match only.
	FindByName(name string) (domain.Card, bool)
}

// SpreadCatalog provides read-only access to the spread reference data.
type SpreadCatalog interface {
	// Spreads returns every spread in catalog order.
	Spreads() []domain.Spread
	// SpreadByID looks a spread up by its identifier.
	SpreadByID(id string) (domain.Spread, bool)
}
