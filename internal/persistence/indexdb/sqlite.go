package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteIndex is a read-model of sandbox sessions: which gameplay modes were
// started on which map and what transitions players took. It never feeds
// back into the simulation.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqSession reqKind = iota + 1
	reqTransition
	reqFlush
)

type req struct {
	kind reqKind

	session    SessionRecord
	transition transitionRow
	done       chan struct{}
}

type SessionRecord struct {
	ID        string
	MapName   string
	Mode      string
	Scenario  string
	Agents    int
	Seed      int64
	Baseline  bool
	StartedAt time.Time
}

type transitionRow struct {
	SessionID  string
	Kind       string
	NextMode   string
	RecordedAt string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 4096),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			map_name TEXT NOT NULL,
			mode TEXT NOT NULL,
			scenario TEXT NOT NULL,
			agents INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			baseline INTEGER NOT NULL,
			started_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_map ON sessions(map_name, started_at);`,
		`CREATE TABLE IF NOT EXISTS transitions (
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			next_mode TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordSession queues a session row and returns its id, generating one when
// r.ID is empty.
func (s *SQLiteIndex) RecordSession(r SessionRecord) string {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if s == nil || s.closed.Load() {
		return r.ID
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	select {
	case s.ch <- req{kind: reqSession, session: r}:
	default:
		// Drop if the indexer falls behind.
	}
	return r.ID
}

func (s *SQLiteIndex) RecordTransition(sessionID, kind, nextMode string) {
	if s == nil || s.closed.Load() || sessionID == "" {
		return
	}
	r := transitionRow{
		SessionID:  sessionID,
		Kind:       kind,
		NextMode:   nextMode,
		RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case s.ch <- req{kind: reqTransition, transition: r}:
	default:
	}
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertSession, _ := s.db.Prepare(`INSERT OR REPLACE INTO sessions(id,map_name,mode,scenario,agents,seed,baseline,started_at) VALUES(?,?,?,?,?,?,?,?)`)
	insertTransition, _ := s.db.Prepare(`INSERT OR REPLACE INTO transitions(session_id,seq,kind,next_mode,recorded_at) VALUES(?,?,?,?,?)`)
	defer func() {
		if insertSession != nil {
			_ = insertSession.Close()
		}
		if insertTransition != nil {
			_ = insertTransition.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 256
		commitMaxWait = time.Second

		seqBySession = map[string]int{}
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range s.ch {
		if r.kind == reqFlush {
			commit()
			close(r.done)
			continue
		}
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqSession:
			se := r.session
			baseline := 0
			if se.Baseline {
				baseline = 1
			}
			if insertSession != nil {
				if _, err := tx.Stmt(insertSession).Exec(
					se.ID,
					se.MapName,
					se.Mode,
					se.Scenario,
					se.Agents,
					se.Seed,
					baseline,
					se.StartedAt.UTC().Format(time.RFC3339Nano),
				); err != nil {
					rollback()
					continue
				}
				opCount++
			}

		case reqTransition:
			tr := r.transition
			seq := seqBySession[tr.SessionID]
			seqBySession[tr.SessionID] = seq + 1
			if insertTransition != nil {
				if _, err := tx.Stmt(insertTransition).Exec(tr.SessionID, seq, tr.Kind, tr.NextMode, tr.RecordedAt); err != nil {
					rollback()
					continue
				}
				opCount++
			}
		}
		// Commit when idle too: Sessions shares the single connection.
		if len(s.ch) == 0 || opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	commit()
}

// Flush blocks until every record queued before the call is committed.
func (s *SQLiteIndex) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	done := make(chan struct{})
	s.ch <- req{kind: reqFlush, done: done}
	<-done
}

// Sessions lists recorded sessions for a map, oldest first. Records queued
// before the call are included.
func (s *SQLiteIndex) Sessions(mapName string) ([]SessionRecord, error) {
	s.Flush()
	rows, err := s.db.Query(`SELECT id,map_name,mode,scenario,agents,seed,baseline,started_at FROM sessions WHERE map_name=? ORDER BY started_at`, mapName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			r        SessionRecord
			baseline int
			started  string
		)
		if err := rows.Scan(&r.ID, &r.MapName, &r.Mode, &r.Scenario, &r.Agents, &r.Seed, &baseline, &started); err != nil {
			return nil, err
		}
		r.Baseline = baseline != 0
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		out = append(out, r)
	}
	return out, rows.Err()
}
