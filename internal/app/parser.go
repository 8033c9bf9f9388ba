package app

import (
	"fmt"
	"strings"

	"github.com/avetisdav94/TarotBot/internal/domain"
	"github.com/avetisdav94/TarotBot/internal/ports"
)

// reversalMarkers are the words stripped from a token to obtain the lookup
// key. Matching on the Russian stem below covers every inflection.
var reversalMarkers = []string{
	"перевернутая",
	"перевернутый",
	"перевернутое",
	"reversed",
}

// reversalStems signal that the card was drawn reversed.
var reversalStems = []string{"перевернут", "reversed"}

// ParseResult is the full outcome of parsing one card input. Resolution does
// not short-circuit: every token is either resolved or reported.
type ParseResult struct {
	Resolved []domain.ResolvedCard
	Errors   []string
}

// Complete reports whether every token resolved.
func (r ParseResult) Complete() bool { return len(r.Errors) == 0 }

// CardParser matches free-text card input against the catalog.
// It validates per-token resolvability only; the caller checks the count.
type CardParser struct {
	catalog ports.CardCatalog
}

func NewCardParser(catalog ports.CardCatalog) *CardParser {
	return &CardParser{catalog: catalog}
}

// Parse splits raw input on commas and resolves each token to a card plus
// orientation. An empty token (e.g. a trailing comma) is an error, not a
// skip. Unresolved tokens keep their literal text for user feedback.
func (p *CardParser) Parse(raw string) ParseResult {
	var result ParseResult

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		folded := strings.ToLower(token)

		reversed := false
		for _, stem := range reversalStems {
			if strings.Contains(folded, stem) {
				reversed = true
				break
			}
		}

		key := folded
		for _, marker := range reversalMarkers {
			key = strings.ReplaceAll(key, marker, "")
		}
		key = strings.TrimSpace(key)

		card, ok := p.catalog.FindByName(key)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Карта \"%s\" не найдена", token))
			continue
		}

		result.Resolved = append(result.Resolved, domain.ResolvedCard{Card: card, Reversed: reversed})
	}

	return result
}
