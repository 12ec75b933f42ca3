// Package eventlog persists agent lifecycle events to SQLite so traces
// survive the process. It plugs into an agent as an observer; conversation
// memory itself is never persisted, only the event stream.
package eventlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/martinemde/liteagent/agent"
)

// Store writes agent events to a SQLite database. It is safe to share one
// Store across agents (SQLite serializes writes).
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates a Store at the given database path. The schema is created
// automatically on first use. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	s, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an open database handle. The caller retains ownership of
// db unless the Store was built via Open.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db, logger: slog.Default()}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate event log: %w", err)
	}
	return s, nil
}

// SetLogger replaces the logger used to report write failures.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agent_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT NOT NULL,
		agent_id   TEXT NOT NULL,
		agent_name TEXT NOT NULL DEFAULT '',
		context_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		payload    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_agent_events_agent ON agent_events (agent_id, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// OnEvent implements agent.Observer. Write failures are logged, never
// surfaced; the observer must not disturb the turn.
func (s *Store) OnEvent(event agent.AgentEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("event log encode failed", "kind", event.Kind, "error", err)
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO agent_events (kind, agent_id, agent_name, context_id, created_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(event.Kind), event.AgentID, event.AgentName, event.ContextID,
		event.Timestamp.UTC().Format(time.RFC3339Nano), string(payload),
	)
	if err != nil {
		s.logger.Warn("event log write failed", "kind", event.Kind, "error", err)
	}
}

// StoredEvent is one persisted event row.
type StoredEvent struct {
	ID        int64
	Kind      string
	AgentID   string
	AgentName string
	ContextID string
	CreatedAt time.Time
	Event     agent.AgentEvent
}

// Events returns all persisted events for an agent in insertion order. An
// empty agentID returns events for every agent.
func (s *Store) Events(agentID string) ([]StoredEvent, error) {
	query := `SELECT id, kind, agent_id, agent_name, context_id, created_at, payload
		FROM agent_events`
	args := []any{}
	if agentID != "" {
		query += ` WHERE agent_id = ?`
		args = append(args, agentID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query event log: %w", err)
	}
	defer rows.Close()

	var events []StoredEvent
	for rows.Next() {
		var ev StoredEvent
		var createdAt, payload string
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.AgentID, &ev.AgentName, &ev.ContextID, &createdAt, &payload); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		if err := json.Unmarshal([]byte(payload), &ev.Event); err != nil {
			return nil, fmt.Errorf("decode event payload: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Count returns the number of persisted events.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM agent_events`).Scan(&n)
	return n, err
}
