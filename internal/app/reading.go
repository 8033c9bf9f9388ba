package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avetisdav94/TarotBot/internal/domain"
	"github.com/avetisdav94/TarotBot/internal/ports"
)

// Reading is the application-level result of a completed interpretation.
type Reading struct {
	Session        domain.Session
	Cards          []domain.ResolvedCard
	Interpretation string
	Entry          domain.HistoryEntry
	// Saved is false when the history write failed; the reading is still
	// delivered, only the "view in history" reference is unavailable.
	Saved     bool
	LatencyMS int64
}

// ReadingService orchestrates the spread flow: session lookup, card input
// parsing, prompt composition, LLM interpretation and history persistence.
//
// The flow is split in two so the transport can talk to the user between
// validation and the slow upstream call: ValidateCards resolves the input
// without side effects, CompleteReading does the interpretation and closes
// the session.
type ReadingService struct {
	sessions    *SessionRegistry
	parser      *CardParser
	interpreter ports.Interpreter
	history     ports.HistoryStore
	logger      *slog.Logger
}

func NewReadingService(
	sessions *SessionRegistry,
	parser *CardParser,
	interpreter ports.Interpreter,
	history ports.HistoryStore,
	logger *slog.Logger,
) *ReadingService {
	return &ReadingService{
		sessions:    sessions,
		parser:      parser,
		interpreter: interpreter,
		history:     history,
		logger:      logger,
	}
}

// Sessions exposes the registry to the transport layer.
func (s *ReadingService) Sessions() *SessionRegistry { return s.sessions }

// ValidateCards resolves one free-text card input against the user's active
// session. It never reaches the LLM: parse errors and a wrong card count are
// returned with the session left open for another attempt. The session is
// returned alongside those errors so the caller can report against it.
func (s *ReadingService) ValidateCards(userID int64, rawText string) (domain.Session, []domain.ResolvedCard, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return domain.Session{}, nil, domain.ErrNoSession
	}

	parsed := s.parser.Parse(rawText)
	if !parsed.Complete() {
		return session, nil, &domain.ParseErrors{Messages: parsed.Errors}
	}

	if len(parsed.Resolved) != session.CardsCount {
		return session, nil, &domain.CountMismatchError{
			SpreadName: session.SpreadName,
			Expected:   session.CardsCount,
			Got:        len(parsed.Resolved),
		}
	}

	return session, parsed.Resolved, nil
}

// CompleteReading interprets validated cards and persists the result. An
// upstream failure aborts the session. On success the session is closed and
// the reading is appended to history; a failed history write is logged and
// reported via Reading.Saved, never as an error.
func (s *ReadingService) CompleteReading(ctx context.Context, userID int64, session domain.Session, cards []domain.ResolvedCard) (Reading, error) {
	prompt := ComposePrompt(session.SpreadName, session.Positions, cards)

	start := time.Now()
	interpretation, err := s.interpreter.Interpret(ctx, prompt)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		s.sessions.Close(userID)
		return Reading{}, fmt.Errorf("interpret: %w", err)
	}

	snapshots := make([]domain.CardSnapshot, len(cards))
	for i, rc := range cards {
		snapshots[i] = domain.Snapshot(rc)
	}

	entry, saveErr := s.history.Append(userID, domain.HistoryEntry{
		SpreadName:     session.SpreadName,
		Cards:          snapshots,
		Interpretation: interpretation,
	})
	if saveErr != nil {
		s.logger.Warn("history append failed", "user_id", userID, "error", saveErr)
	}

	s.sessions.Close(userID)

	return Reading{
		Session:        session,
		Cards:          cards,
		Interpretation: interpretation,
		Entry:          entry,
		Saved:          saveErr == nil,
		LatencyMS:      latency,
	}, nil
}
