package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/elicit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
)

var (
	yesNo = config.Choices{{Value: true, Label: "Yes"}, {Value: false, Label: "No"}}
	next  = config.Choices{{Value: true, Label: "Next"}}
)

// Terminal answers prompts and reads session lines on a terminal.
type Terminal struct {
	in       io.Reader
	out      io.Writer
	terminal bool

	mu        sync.Mutex
	program   *tea.Program
	remaining int
}

// NewTerminal creates a Terminal reading from in and drawing to out.
// It is considered interactive only when both are terminals.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:       in,
		out:      out,
		terminal: isTerminal(in) && isTerminal(out),
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsTerminal reports whether a user is attached.
func (t *Terminal) IsTerminal() bool {
	return t.terminal
}

// Ask renders p as a selection when it has choices and as a text input
// otherwise. Typed answers keep the type of the current value when they
// parse as one.
func (t *Terminal) Ask(ctx context.Context, p elicit.Prompt) (any, error) {
	question := p.Question
	if question == "" {
		question = config.DefaultQuestion
	}
	lbl := label(question, p.Key)

	switch {
	case p.Info:
		if _, err := t.choose(ctx, lbl, "", next, true); err != nil {
			return nil, err
		}
		return true, nil
	case len(p.Choices) > 0:
		c, err := t.choose(ctx, lbl, p.Problem, p.Choices, p.Current)
		if err != nil {
			return nil, err
		}
		return c.Value, nil
	}

	placeholder := ""
	if p.Current != nil {
		placeholder = fmt.Sprint(p.Current)
	}
	line, err := t.line(ctx, lbl, placeholder, p.Problem)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}
	return coerce(line, p.Current), nil
}

// Confirm asks a yes/no question, defaulting to yes.
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	c, err := t.choose(ctx, questionStyle.Render(question), "", yesNo, true)
	if err != nil {
		return false, err
	}
	yes, _ := c.Value.(bool)
	return yes, nil
}

// Countdown updates the seconds shown under the running prompt.
func (t *Terminal) Countdown(remaining int) {
	t.mu.Lock()
	t.remaining = remaining
	p := t.program
	t.mu.Unlock()

	if p != nil {
		p.Send(countdownMsg{remaining: remaining})
	}
}

// Notice prints a progress message.
func (t *Terminal) Notice(msg string) {
	fmt.Fprintln(t.out, noticeStyle.Render(msg))
}

// ReadLine reads a raw line. Blank input returns "".
func (t *Terminal) ReadLine(ctx context.Context, placeholder string) (string, error) {
	return t.line(ctx, "", placeholder, "")
}

func (t *Terminal) line(ctx context.Context, lbl, placeholder, problem string) (string, error) {
	final, err := t.run(ctx, newInputModel(lbl, placeholder, problem))
	if err != nil {
		return "", err
	}
	m := final.(*inputModel)
	if m.interrupted {
		return "", errors.Interrupted()
	}
	return m.value, nil
}

func (t *Terminal) choose(ctx context.Context, lbl, problem string, choices config.Choices, current any) (config.Choice, error) {
	m := newSelectModel(lbl, problem, choices, current)
	t.mu.Lock()
	m.remaining = t.remaining
	t.mu.Unlock()

	final, err := t.run(ctx, m)
	if err != nil {
		return config.Choice{}, err
	}
	m = final.(*selectModel)
	if m.interrupted {
		return config.Choice{}, errors.Interrupted()
	}
	return m.selected, nil
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	t.mu.Lock()
	t.program = p
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.program = nil
		t.remaining = 0
		t.mu.Unlock()
	}()

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("terminal prompt failed: %w", err)
	}
	return final, nil
}

// coerce converts typed text to the type of current when it parses.
func coerce(line string, current any) any {
	switch current.(type) {
	case bool:
		if b, err := strconv.ParseBool(strings.ToLower(line)); err == nil {
			return b
		}
	case int, int8, int16, int32, int64:
		if n, err := strconv.ParseInt(line, 10, 64); err == nil {
			return int(n)
		}
	case uint, uint8, uint16, uint32, uint64:
		if n, err := strconv.ParseUint(line, 10, 64); err == nil {
			return uint(n)
		}
	case float32, float64:
		if f, err := strconv.ParseFloat(line, 64); err == nil {
			return f
		}
	}
	return line
}
