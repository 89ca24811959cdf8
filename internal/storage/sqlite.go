package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hancal/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			description TEXT DEFAULT '',
			location TEXT DEFAULT '',
			category TEXT DEFAULT '',
			repeat_type TEXT DEFAULT 'none',
			repeat_interval INTEGER DEFAULT 0,
			repeat_end_date TEXT DEFAULT '',
			notification_time INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			// Ignore "duplicate column" errors for ALTER TABLE
			if !strings.Contains(err.Error(), "duplicate column") {
				return fmt.Errorf("exec migration: %w", err)
			}
		}
	}
	return nil
}

const eventColumns = `id, title, date, start_time, end_time, description, location,
	category, repeat_type, repeat_interval, repeat_end_date, notification_time`

func (s *Storage) CreateEvent(e *domain.Event) error {
	_, err := s.db.Exec(
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Date, e.StartTime, e.EndTime, e.Description, e.Location,
		e.Category, string(e.Repeat.Type), e.Repeat.Interval, e.Repeat.EndDate,
		e.NotificationTime,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *Storage) GetEvent(id string) (*domain.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ListEvents returns all events in a stable order: by date, then start time,
// then creation time.
func (s *Storage) ListEvents() ([]domain.Event, error) {
	rows, err := s.db.Query(
		`SELECT ` + eventColumns + ` FROM events ORDER BY date, start_time, created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *Storage) UpdateEvent(e *domain.Event) error {
	res, err := s.db.Exec(
		`UPDATE events SET title = ?, date = ?, start_time = ?, end_time = ?,
			description = ?, location = ?, category = ?, repeat_type = ?,
			repeat_interval = ?, repeat_end_date = ?, notification_time = ?,
			updated_at = ? WHERE id = ?`,
		e.Title, e.Date, e.StartTime, e.EndTime, e.Description, e.Location,
		e.Category, string(e.Repeat.Type), e.Repeat.Interval, e.Repeat.EndDate,
		e.NotificationTime, time.Now(), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("event %s not found", e.ID)
	}
	return nil
}

func (s *Storage) DeleteEvent(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var repeatType string
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.StartTime, &e.EndTime, &e.Description,
		&e.Location, &e.Category, &repeatType, &e.Repeat.Interval,
		&e.Repeat.EndDate, &e.NotificationTime,
	)
	if err != nil {
		return nil, err
	}
	e.Repeat.Type = domain.RepeatType(repeatType)
	return e, nil
}
