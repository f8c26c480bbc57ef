package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"clueless/internal/room"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_snapshots (
	session_id TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	over       INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME NOT NULL
);`

// SnapshotRow is one mirrored session.
type SnapshotRow struct {
	SessionID string    `db:"session_id"`
	Payload   string    `db:"payload"`
	Over      bool      `db:"over"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SQLiteMirror keeps the latest snapshot of every session in sqlite for crash
// inspection. Save never blocks: a single worker drains a bounded queue and
// snapshots that do not fit are dropped.
type SQLiteMirror struct {
	db    *sqlx.DB
	queue chan room.Snapshot
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func OpenSQLiteMirror(dsn string, queueSize int) (*SQLiteMirror, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mirror: %w", err)
	}
	// ":memory:" databases live per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create mirror schema: %w", err)
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	m := &SQLiteMirror{db: db, queue: make(chan room.Snapshot, queueSize)}
	m.wg.Add(1)
	go m.run()
	return m, nil
}

func (m *SQLiteMirror) Save(snap room.Snapshot) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	select {
	case m.queue <- snap:
	default:
		log.Warn().Str("session", snap.SessionID).Msg("mirror queue full, snapshot dropped")
	}
}

func (m *SQLiteMirror) run() {
	defer m.wg.Done()
	for snap := range m.queue {
		if err := m.write(snap); err != nil {
			log.Error().Err(err).Str("session", snap.SessionID).Msg("mirror write failed")
		}
	}
}

func (m *SQLiteMirror) write(snap room.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = m.db.NamedExec(`
		INSERT INTO session_snapshots (session_id, payload, over, updated_at)
		VALUES (:session_id, :payload, :over, :updated_at)
		ON CONFLICT(session_id) DO UPDATE SET
			payload = excluded.payload,
			over = excluded.over,
			updated_at = excluded.updated_at`,
		SnapshotRow{
			SessionID: snap.SessionID,
			Payload:   string(payload),
			Over:      snap.IsOver,
			UpdatedAt: snap.UpdatedAt,
		})
	return err
}

// ListOpen returns the sessions whose last snapshot was not a finished game.
func (m *SQLiteMirror) ListOpen(ctx context.Context) ([]SnapshotRow, error) {
	var rows []SnapshotRow
	err := m.db.SelectContext(ctx, &rows, `SELECT session_id, payload, over, updated_at FROM session_snapshots WHERE over = 0 ORDER BY updated_at`)
	return rows, err
}

// Close drains the queue and closes the database.
func (m *SQLiteMirror) Close() error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()
	m.wg.Wait()
	return m.db.Close()
}
