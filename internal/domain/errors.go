package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSession   = errors.New("no active spread session")
	ErrUpstreamLLM = errors.New("upstream LLM failure")
	ErrPersistence = errors.New("history persistence failure")
)

// ParseErrors carries the per-token failures of one card input. It is
// collected, never thrown past the submit flow.
type ParseErrors struct {
	Messages []string
}

func (e *ParseErrors) Error() string {
	return fmt.Sprintf("card input: %s", strings.Join(e.Messages, "; "))
}

// CountMismatchError reports that the input resolved to the wrong number of
// cards for the active spread.
type CountMismatchError struct {
	SpreadName string
	Expected   int
	Got        int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("spread %q expects %d cards, got %d", e.SpreadName, e.Expected, e.Got)
}
