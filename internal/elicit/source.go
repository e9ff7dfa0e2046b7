package elicit

import (
	"context"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
)

// Prompt describes a single question put to a Source.
type Prompt struct {
	Key      string
	Question string
	// Current is the stored value or default. A blank answer resolves to it.
	Current any
	// Choices is empty for free-form values.
	Choices config.Choices
	// Info marks an acknowledgment-only step; the answer is discarded.
	Info bool
	// Problem explains why the previous answer was rejected.
	Problem string
	// Attempt counts from 1 for each property.
	Attempt int
}

// Source supplies answers to prompts.
type Source interface {
	Ask(ctx context.Context, p Prompt) (any, error)
}

// AskFunc adapts a function to a Source. It is the capability programmatic
// hosts implement.
type AskFunc func(ctx context.Context, p Prompt) (any, error)

// Ask calls f.
func (f AskFunc) Ask(ctx context.Context, p Prompt) (any, error) {
	return f(ctx, p)
}

// InteractiveSource is a Source attached to a user.
type InteractiveSource interface {
	Source
	// IsTerminal reports whether a user can answer at all.
	IsTerminal() bool
	// Confirm asks a yes/no question. It must return once ctx is done.
	Confirm(ctx context.Context, question string) (bool, error)
	// Countdown reports the seconds left before defaults are used.
	Countdown(remaining int)
}

// Noticer is implemented by sources that display progress messages.
type Noticer interface {
	Notice(msg string)
}

// ExitConfirmer is implemented by sources whose Ask can be interrupted by
// the user. After an interrupt the engine asks whether to exit; a false
// answer repeats the interrupted prompt.
type ExitConfirmer interface {
	ConfirmExit(ctx context.Context) (bool, error)
}
