// Package recorder сохраняет результаты шагов прогона в SQLite.
package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/iwtcode/proteusAdapter/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT NOT NULL,
	started_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	step INTEGER NOT NULL,
	sim_time REAL NOT NULL,
	command TEXT NOT NULL,
	object TEXT NOT NULL,
	idx INTEGER NOT NULL,
	value REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, command, object);
CREATE TABLE IF NOT EXISTS dampers (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	step INTEGER NOT NULL,
	sim_time REAL NOT NULL,
	object TEXT NOT NULL,
	velocity REAL NOT NULL,
	position REAL NOT NULL,
	force REAL NOT NULL
);
`

// Recorder пишет шаги одного прогона в базу. Реализует runner.Sink.
type Recorder struct {
	db     *sql.DB
	mu     sync.Mutex
	path   string
	runID  int64
	label  string
	closed bool
}

// Open открывает (или создает) базу по указанному пути.
func Open(path string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Recorder{db: db, path: path}, nil
}

// Path возвращает путь к базе.
func (r *Recorder) Path() string {
	return r.path
}

// BeginRun регистрирует новый прогон; последующие Write относятся к нему.
func (r *Recorder) BeginRun(label string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`INSERT INTO runs (label, started_at) VALUES (?, ?)`, label, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	r.runID = id
	r.label = label
	return id, nil
}

// Write сохраняет один шаг в одной транзакции.
func (r *Recorder) Write(result *models.StepResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runID == 0 {
		return fmt.Errorf("no run started")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sampleStmt, err := tx.Prepare(`INSERT INTO samples (run_id, step, sim_time, command, object, idx, value) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer sampleStmt.Close()

	for _, s := range result.Samples {
		for idx, v := range s.Values {
			if _, err := sampleStmt.Exec(r.runID, result.Step, s.Time, s.Command, s.Object, idx, v); err != nil {
				return fmt.Errorf("failed to insert sample %s/%s[%d]: %w", s.Command, s.Object, idx, err)
			}
		}
	}

	for _, d := range result.Dampers {
		if _, err := tx.Exec(`INSERT INTO dampers (run_id, step, sim_time, object, velocity, position, force) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.runID, result.Step, result.Time, d.Object, d.Velocity, d.Position, d.Force); err != nil {
			return fmt.Errorf("failed to insert damper %s: %w", d.Object, err)
		}
	}

	return tx.Commit()
}

// Series возвращает ряд значений одного атрибута прогона в порядке шагов.
func (r *Recorder) Series(runID int64, command, object string, idx int) ([]float64, error) {
	rows, err := r.db.Query(`SELECT value FROM samples WHERE run_id = ? AND command = ? AND object = ? AND idx = ? ORDER BY step`,
		runID, command, object, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Forces возвращает силы демпфера по шагам.
func (r *Recorder) Forces(runID int64, object string) ([]float64, error) {
	rows, err := r.db.Query(`SELECT force FROM dampers WHERE run_id = ? AND object = ? ORDER BY step`, runID, object)
	if err != nil {
		return nil, fmt.Errorf("failed to query forces: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close закрывает базу.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.db.Close()
}
