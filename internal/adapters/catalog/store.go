// Package catalog loads the embedded card and spread reference data.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avetisdav94/TarotBot/internal/domain"
)

//go:embed data/*.json
var catalogFS embed.FS

type cardsFile struct {
	MajorArcana []domain.Card            `json:"majorArcana"`
	MinorArcana map[string][]domain.Card `json:"minorArcana"`
}

type spreadsFile struct {
	Spreads []domain.Spread `json:"spreads"`
}

// suitOrder fixes the presentation order of the minor arcana suits.
var suitOrder = []domain.Suit{
	domain.SuitWands,
	domain.SuitCups,
	domain.SuitSwords,
	domain.SuitPentacles,
}

// Store holds the immutable catalogs plus a precomputed case-folded
// name index built once at load time.
type Store struct {
	major     []domain.Card
	suits     map[domain.Suit][]domain.Card
	all       []domain.Card
	nameIndex map[string]domain.Card
	spreads   []domain.Spread
	spreadIDs map[string]domain.Spread
}

// Load parses and validates the embedded catalogs. Any schema violation is a
// startup failure: the process must refuse to run on broken reference data.
func Load() (*Store, error) {
	rawCards, err := catalogFS.ReadFile("data/cards.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded cards: %w", err)
	}
	var cf cardsFile
	if err := json.Unmarshal(rawCards, &cf); err != nil {
		return nil, fmt.Errorf("parse embedded cards: %w", err)
	}

	rawSpreads, err := catalogFS.ReadFile("data/spreads.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded spreads: %w", err)
	}
	var sf spreadsFile
	if err := json.Unmarshal(rawSpreads, &sf); err != nil {
		return nil, fmt.Errorf("parse embedded spreads: %w", err)
	}

	s := &Store{
		suits:     make(map[domain.Suit][]domain.Card, len(suitOrder)),
		nameIndex: make(map[string]domain.Card),
		spreadIDs: make(map[string]domain.Spread, len(sf.Spreads)),
	}

	for _, c := range cf.MajorArcana {
		c.Arcana = domain.ArcanaMajor
		if err := s.addCard(c); err != nil {
			return nil, err
		}
		s.major = append(s.major, c)
	}

	for _, suit := range suitOrder {
		cards, ok := cf.MinorArcana[string(suit)]
		if !ok {
			return nil, fmt.Errorf("cards catalog: missing suit %q", suit)
		}
		for _, c := range cards {
			c.Arcana = domain.ArcanaMinor
			c.Suit = suit
			if err := s.addCard(c); err != nil {
				return nil, err
			}
			s.suits[suit] = append(s.suits[suit], c)
		}
	}

	s.all = make([]domain.Card, 0, len(s.nameIndex))
	s.all = append(s.all, s.major...)
	for _, suit := range suitOrder {
		s.all = append(s.all, s.suits[suit]...)
	}

	for _, sp := range sf.Spreads {
		if sp.ID == "" || sp.Name == "" {
			return nil, fmt.Errorf("spreads catalog: spread with empty id or name")
		}
		if sp.CardsCount < 1 {
			return nil, fmt.Errorf("spread %q: cardsCount must be positive, got %d", sp.ID, sp.CardsCount)
		}
		if len(sp.Positions) != sp.CardsCount {
			return nil, fmt.Errorf("spread %q: %d positions for %d cards", sp.ID, len(sp.Positions), sp.CardsCount)
		}
		if _, dup := s.spreadIDs[sp.ID]; dup {
			return nil, fmt.Errorf("spread %q: duplicate id", sp.ID)
		}
		s.spreads = append(s.spreads, sp)
		s.spreadIDs[sp.ID] = sp
	}

	return s, nil
}

func (s *Store) addCard(c domain.Card) error {
	if c.Name == "" {
		return fmt.Errorf("cards catalog: card with empty name")
	}
	primary := strings.ToLower(c.Name)
	if _, dup := s.nameIndex[primary]; dup {
		return fmt.Errorf("cards catalog: duplicate card name %q", c.Name)
	}
	s.nameIndex[primary] = c
	if alt := strings.ToLower(c.NameEn); alt != "" && alt != primary {
		if _, dup := s.nameIndex[alt]; dup {
			return fmt.Errorf("cards catalog: duplicate card name %q", c.NameEn)
		}
		s.nameIndex[alt] = c
	}
	return nil
}

func (s *Store) AllCards() []domain.Card { return s.all }

func (s *Store) MajorArcana() []domain.Card { return s.major }

func (s *Store) SuitCards(suit domain.Suit) []domain.Card { return s.suits[suit] }

func (s *Store) FindByName(name string) (domain.Card, bool) {
	c, ok := s.nameIndex[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

func (s *Store) Spreads() []domain.Spread { return s.spreads }

func (s *Store) SpreadByID(id string) (domain.Spread, bool) {
	sp, ok := s.spreadIDs[id]
	return sp, ok
}
