// Package session runs a persistent line-input loop with a confirmed exit.
//
// A Session reads lines from a LineReader and hands them to a Handler.
// The words exit, quit and q, or an interrupt from the reader, open the
// exit confirmation: an empty answer or y/yes terminates, anything else
// returns to reading lines, and a second interrupt terminates at once.
package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/logging"
)

// State is the position of a Session in its input loop.
type State int

const (
	StateIdle State = iota
	StateAwaitingLine
	StatePaused
	StateExitConfirming
)

func (s State) String() string {
	switch s {
	case StateAwaitingLine:
		return "awaiting-line"
	case StatePaused:
		return "paused"
	case StateExitConfirming:
		return "exit-confirming"
	}
	return "idle"
}

// LineReader reads one line of user input. An interrupt (Ctrl+C) is
// reported as an error for which errors.IsInterrupted is true.
type LineReader interface {
	ReadLine(ctx context.Context, placeholder string) (string, error)
}

// Handler processes a line. It returns false when the line is not a
// command it understands.
type Handler func(ctx context.Context, line string) (bool, error)

var affirmative = regexp.MustCompile(`(?i)^y(es)?$`)

// Session is the interactive input loop.
type Session struct {
	reader  LineReader
	handler Handler
	exit    func(code int)
	notify  func(msg string)
	logger  *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures a Session.
type Option func(*Session)

// WithHandler sets the line handler.
func WithHandler(h Handler) Option {
	return func(s *Session) {
		s.handler = h
	}
}

// WithExit replaces os.Exit as the termination hook.
func WithExit(fn func(code int)) Option {
	return func(s *Session) {
		s.exit = fn
	}
}

// WithNotice sets where user-facing messages go.
func WithNotice(fn func(msg string)) Option {
	return func(s *Session) {
		s.notify = fn
	}
}

// WithLogger sets the session's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New creates a Session reading from reader.
func New(reader LineReader, opts ...Option) *Session {
	s := &Session{
		reader: reader,
		exit:   os.Exit,
		notify: func(msg string) { logging.UserInfo("%s", msg) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logging.Component("session")
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	prev := s.state
	s.state = state
	s.mu.Unlock()
	if prev != state {
		s.log().Debug("session state", "from", prev.String(), "to", state.String())
	}
}

// Run reads and dispatches lines until the user confirms an exit, the
// reader reaches EOF, or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	defer s.setState(StateIdle)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.setState(StateAwaitingLine)
		line, err := s.reader.ReadLine(ctx, "")
		if err != nil {
			switch {
			case errors.IsInterrupted(err):
				exited, err := s.ConfirmExit(ctx)
				if err != nil || exited {
					return err
				}
				continue
			case errors.Is(err, io.EOF):
				return nil
			case ctx.Err() != nil:
				return ctx.Err()
			}
			return err
		}

		s.setState(StatePaused)
		s.log().Debug("data entered", "line", line)

		switch strings.TrimSpace(line) {
		case "exit", "quit", "q":
			exited, err := s.ConfirmExit(ctx)
			if err != nil || exited {
				return err
			}
		case "":
		default:
			s.dispatch(ctx, line)
		}
	}
}

func (s *Session) dispatch(ctx context.Context, line string) {
	if s.handler == nil {
		s.notify("User entered invalid command, ignoring")
		return
	}
	handled, err := s.handler(ctx, line)
	if err != nil {
		s.log().Warn("command failed", "line", line, "error", err)
		s.notify(err.Error())
		return
	}
	if !handled {
		s.notify("User entered invalid command, ignoring")
	}
}

// ConfirmExit asks whether to exit and terminates on an empty or
// affirmative answer, or on a second interrupt. It reports whether
// termination was requested; false means the user cancelled.
func (s *Session) ConfirmExit(ctx context.Context) (bool, error) {
	s.setState(StateExitConfirming)
	s.notify("Are you sure you want to exit? (y, n)")

	answer, err := s.reader.ReadLine(ctx, "yes")
	if err != nil {
		if !errors.IsInterrupted(err) {
			return false, err
		}
		answer = "yes"
	}

	answer = strings.TrimSpace(answer)
	if answer == "" || affirmative.MatchString(answer) {
		s.notify("Process exited by user command")
		s.setState(StateIdle)
		s.exit(0)
		return true, nil
	}

	s.notify("Exit canceled")
	s.setState(StateAwaitingLine)
	return false, nil
}
