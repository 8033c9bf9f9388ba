package app_test

import (
	"testing"

	"github.com/avetisdav94/TarotBot/internal/app"
)

func TestCardOfDay_Orientation(t *testing.T) {
	catalog := newMockCatalog()

	// Second roll < 3 out of 10 means reversed.
	svc := app.NewDrawService(catalog, &fixedRNG{values: []int{0, 2}})
	rc := svc.CardOfDay()
	if rc.Card.Name != "Шут" {
		t.Errorf("expected first card, got %s", rc.Card.Name)
	}
	if !rc.Reversed {
		t.Error("roll of 2/10 must be reversed")
	}

	svc = app.NewDrawService(catalog, &fixedRNG{values: []int{1, 3}})
	rc = svc.CardOfDay()
	if rc.Reversed {
		t.Error("roll of 3/10 must be upright")
	}
}

func TestQuickYesNo_Verdicts(t *testing.T) {
	catalog := newMockCatalog()

	tests := []struct {
		name     string
		rolls    []int // card index, then orientation
		verdict  string
		yes      bool
		card     string
		reversed bool
	}{
		// Шут is on the positive list.
		{"positive upright", []int{0, 0}, "Точно ДА", true, "Шут", false},
		{"positive reversed", []int{0, 1}, "Скорее НЕТ", false, "Шут", true},
		// Луна is not on the positive list.
		{"neutral upright", []int{3, 0}, "Скорее ДА", true, "Луна", false},
		{"neutral reversed", []int{3, 1}, "Точно НЕТ", false, "Луна", true},
		// Десятка Кубков matches the list by substring.
		{"list substring match", []int{4, 0}, "Точно ДА", true, "Десятка Кубков", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := app.NewDrawService(catalog, &fixedRNG{values: tt.rolls})
			answer := svc.QuickYesNo()

			if answer.Card.Card.Name != tt.card {
				t.Errorf("expected card %s, got %s", tt.card, answer.Card.Card.Name)
			}
			if answer.Card.Reversed != tt.reversed {
				t.Errorf("reversed = %v, want %v", answer.Card.Reversed, tt.reversed)
			}
			if answer.Verdict != tt.verdict {
				t.Errorf("verdict = %q, want %q", answer.Verdict, tt.verdict)
			}
			if answer.Yes != tt.yes {
				t.Errorf("yes = %v, want %v", answer.Yes, tt.yes)
			}
		})
	}
}
