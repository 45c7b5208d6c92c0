// Package sqlite persists schedule runs to a local SQLite database so that
// past planning output can be inspected after the fact. Each run is stored
// as a single JSON blob row; the store never feeds back into scheduling.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/moldworks/layup/pkg/domain/entities"
)

// Run is one recorded scheduling run
type Run struct {
	CreatedAt   time.Time
	Horizon     time.Time
	MaxWeeks    int
	Slots       []entities.ScheduleSlot
	Unscheduled []entities.OrderID
}

// RunSummary is the listing view of a stored run
type RunSummary struct {
	ID          int64
	CreatedAt   time.Time
	Scheduled   int
	Unscheduled int
}

// Store is a SQLite-backed history of schedule runs
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens (creating if needed) the run-history database at path
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "layup.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		scheduled INTEGER NOT NULL,
		unscheduled INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

type runPayload struct {
	CreatedAt   time.Time     `json:"created_at"`
	Horizon     time.Time     `json:"horizon"`
	MaxWeeks    int           `json:"max_weeks"`
	Slots       []slotPayload `json:"slots"`
	Unscheduled []string      `json:"unscheduled"`
}

type slotPayload struct {
	OrderID    string    `json:"order_id"`
	MoldID     string    `json:"mold_id"`
	EmployeeID string    `json:"employee_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Date       time.Time `json:"date"`
}

// SaveRun appends a run to the history and returns its row id
func (s *Store) SaveRun(run Run) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(toPayload(run))
	if err != nil {
		return 0, fmt.Errorf("marshal run: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (created_at, scheduled, unscheduled, payload) VALUES (?, ?, ?, ?)`,
		run.CreatedAt.Format(time.RFC3339), len(run.Slots), len(run.Unscheduled), payload,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// ListRuns returns summaries of all stored runs, oldest first
func (s *Store) ListRuns() ([]RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, created_at, scheduled, unscheduled FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		var createdAt string
		if err := rows.Scan(&summary.ID, &createdAt, &summary.Scheduled, &summary.Unscheduled); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summary.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// LoadRun returns the full stored run with the given id
func (s *Store) LoadRun(id int64) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select run %d: %w", id, err)
	}

	var stored runPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal run %d: %w", id, err)
	}

	run := fromPayload(stored)
	return &run, nil
}

func toPayload(run Run) runPayload {
	payload := runPayload{
		CreatedAt: run.CreatedAt,
		Horizon:   run.Horizon,
		MaxWeeks:  run.MaxWeeks,
	}
	for _, slot := range run.Slots {
		payload.Slots = append(payload.Slots, slotPayload{
			OrderID:    string(slot.OrderID),
			MoldID:     string(slot.MoldID),
			EmployeeID: string(slot.EmployeeID),
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Date:       slot.Date,
		})
	}
	for _, orderID := range run.Unscheduled {
		payload.Unscheduled = append(payload.Unscheduled, string(orderID))
	}
	return payload
}

func fromPayload(payload runPayload) Run {
	run := Run{
		CreatedAt: payload.CreatedAt,
		Horizon:   payload.Horizon,
		MaxWeeks:  payload.MaxWeeks,
	}
	for _, slot := range payload.Slots {
		run.Slots = append(run.Slots, entities.ScheduleSlot{
			OrderID:    entities.OrderID(slot.OrderID),
			MoldID:     entities.MoldID(slot.MoldID),
			EmployeeID: entities.EmployeeID(slot.EmployeeID),
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			Date:       slot.Date,
		})
	}
	for _, orderID := range payload.Unscheduled {
		run.Unscheduled = append(run.Unscheduled, entities.OrderID(orderID))
	}
	return run
}
