package ports

import "context"

// Interpreter generates a tarot interpretation for a composed prompt via an
// LLM. The prompt goes in as-is; the completion text comes back verbatim.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}
