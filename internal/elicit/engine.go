package elicit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/logging"
)

// StartQuestion opens an interactive session.
const StartQuestion = "Create custom config?"

// Engine resolves values for a Config's entries.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger
	tick   time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTick sets the countdown interval. Tests shorten it.
func WithTick(d time.Duration) Option {
	return func(e *Engine) {
		e.tick = d
	}
}

// New creates an Engine for cfg.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:  cfg,
		tick: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return logging.Component("elicit")
}

// RunProgrammatic elicits every eligible entry from ask, saves the result
// to file and calls done.
func (e *Engine) RunProgrammatic(ctx context.Context, file string, ask AskFunc, done func()) error {
	if err := e.Run(ctx, file, ask); err != nil {
		return err
	}
	if done != nil {
		done()
	}
	return nil
}

// RunInteractive asks the user whether to customise the configuration and,
// if so, elicits every eligible entry from src. Without a terminal, on a
// "no", or when timeout elapses before an answer, the current values are
// saved unchanged.
func (e *Engine) RunInteractive(ctx context.Context, file string, timeout time.Duration, src InteractiveSource) error {
	if !src.IsTerminal() {
		e.log().Debug("no terminal attached, saving current configuration")
		return e.cfg.Save(file)
	}

	start, err := e.confirmStart(ctx, src, timeout)
	if err != nil {
		return err
	}
	if !start {
		return e.cfg.Save(file)
	}

	return e.Run(ctx, file, src)
}

// confirmStart races the start confirmation against the countdown. The
// losing side is cancelled.
func (e *Engine) confirmStart(ctx context.Context, src InteractiveSource, timeout time.Duration) (bool, error) {
	remaining := int(timeout / time.Second)
	if timeout <= 0 {
		return src.Confirm(ctx, StartQuestion)
	}
	if remaining < 1 {
		remaining = 1
	}
	total := remaining

	e.notice(src, fmt.Sprintf("If no input is detected for %d seconds, the default configuration will be used", total))
	src.Countdown(remaining)

	confirmCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type answer struct {
		start bool
		err   error
	}
	answers := make(chan answer, 1)
	go func() {
		start, err := src.Confirm(confirmCtx, StartQuestion)
		answers <- answer{start: start, err: err}
	}()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case a := <-answers:
			return a.start, a.err
		case <-ticker.C:
			remaining--
			if remaining < 1 {
				cancel()
				<-answers
				e.notice(src, fmt.Sprintf("No input for %d seconds, default config will be used", total))
				return false, nil
			}
			src.Countdown(remaining)
		case <-ctx.Done():
			cancel()
			<-answers
			return false, ctx.Err()
		}
	}
}

// Run walks the entries in registration order, assigns accepted answers
// from src and saves the result to file.
func (e *Engine) Run(ctx context.Context, file string, src Source) error {
	e.notice(src, "Entering configuration")

	for _, entry := range e.cfg.Entries() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.cfg.Eligible(entry) {
			e.log().Debug("skipping property, dependency not met", "property", entry.Key)
			continue
		}

		prompt := Prompt{
			Key:      entry.Key,
			Question: entry.Prompt(),
			Current:  e.cfg.Get(entry.Key),
			Choices:  entry.Choices,
		}
		e.log().Debug("prompting", "property", entry.Key, "question", prompt.Question)

		if entry.Kind == config.KindInfo {
			prompt.Info = true
			prompt.Current = true
			prompt.Choices = nil
			if _, err := e.ask(ctx, src, prompt); err != nil {
				return err
			}
			continue
		}

		value, err := e.resolve(ctx, src, prompt)
		if err != nil {
			return err
		}
		if e.cfg.IsCollection(entry.Key) {
			if err := e.cfg.Set(entry.Key, value); err != nil {
				return err
			}
			continue
		}
		e.cfg.Assign(entry.Key, value)
	}

	e.cfg.Print(func(line string) { e.notice(src, line) })
	if err := e.cfg.Save(file); err != nil {
		return err
	}
	e.notice(src, "Finished configuration")
	return nil
}

// resolve asks until an acceptable answer arrives.
func (e *Engine) resolve(ctx context.Context, src Source, p Prompt) (any, error) {
	for attempt := 1; ; attempt++ {
		p.Attempt = attempt
		answer, err := e.ask(ctx, src, p)
		if err != nil {
			return nil, err
		}
		if blank(answer) {
			answer = p.Current
		}
		problem := e.check(p, answer)
		if problem == "" {
			return answer, nil
		}

		p.Problem = problem
		e.log().Debug("rejected answer", "property", p.Key, "value", answer, "attempt", attempt)
		e.notice(src, p.Problem)
	}
}

// check returns why answer cannot be stored for p, or "" when it can.
func (e *Engine) check(p Prompt, answer any) string {
	if len(p.Choices) > 0 && !p.Choices.Contains(answer) {
		return fmt.Sprintf("%v is not a valid value for %s, must be one of: %s", answer, p.Key, p.Choices)
	}
	if e.cfg.IsCollection(p.Key) {
		if _, err := config.ToRecords(answer); err != nil {
			return fmt.Sprintf("%v is not a valid value for %s: %v", answer, p.Key, err)
		}
	}
	return ""
}

// ask performs one Ask, routing user interrupts through the source's exit
// confirmation when it has one.
func (e *Engine) ask(ctx context.Context, src Source, p Prompt) (any, error) {
	for {
		answer, err := src.Ask(ctx, p)
		if err == nil {
			return answer, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if !errors.IsInterrupted(err) {
			return nil, errors.InputError(p.Key, err)
		}

		confirmer, ok := src.(ExitConfirmer)
		if !ok {
			return nil, err
		}
		exit, cerr := confirmer.ConfirmExit(ctx)
		if cerr != nil || exit {
			return nil, err
		}
	}
}

func (e *Engine) notice(src Source, msg string) {
	if n, ok := src.(Noticer); ok {
		n.Notice(msg)
		return
	}
	e.log().Info(msg)
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
