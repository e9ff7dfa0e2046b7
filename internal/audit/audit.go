// Package audit keeps a journal of configuration changes.
// Events are stored as JSON Lines (JSONL) in {dir}/data/changes.jsonl.
package audit

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/logging"
)

// JournalFile is the journal's file name inside the data directory.
const JournalFile = "changes.jsonl"

// EventType classifies a journal entry.
type EventType string

const (
	EventSet        EventType = "set"
	EventCollection EventType = "collection"
	EventReload     EventType = "reload"
)

// Event represents a single journal entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Property  string    `json:"property,omitempty"`
	Value     any       `json:"value"`
	Details   string    `json:"details,omitempty"`
}

// Journal appends and reads change events.
type Journal struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewJournal creates a journal for the configuration rooted at dir.
func NewJournal(dir string) *Journal {
	return &Journal{path: filepath.Join(dir, config.DataDir, JournalFile)}
}

// WithLogger sets the logger used to report failed writes from Attach.
func (j *Journal) WithLogger(l *slog.Logger) *Journal {
	j.logger = l
	return j
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Log appends an event to the journal.
func (j *Journal) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// Attach subscribes the journal to cfg. Every assignment is logged; write
// failures are reported through the logger and do not affect cfg. The
// returned function detaches the journal.
func (j *Journal) Attach(cfg *config.Config) func() {
	return cfg.Subscribe(func(change config.Change) {
		eventType := EventSet
		if cfg.IsCollection(change.Property) {
			eventType = EventCollection
		}

		err := j.Log(Event{
			Type:     eventType,
			Property: change.Property,
			Value:    change.Value,
		})
		if err != nil {
			j.log().Warn("failed to journal change", "property", change.Property, "error", err)
		}
	})
}

func (j *Journal) log() *slog.Logger {
	if j.logger != nil {
		return j.logger
	}
	return logging.Component("audit")
}

// Events reads all events in the order they were written.
func (j *Journal) Events() ([]Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading journal: %w", err)
	}

	return events, nil
}

// Clear deletes the journal.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
