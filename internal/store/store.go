package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"studypal/internal/core"
)

// Sentinel errors mapped to HTTP statuses by the server layer.
var (
	ErrNotFound     = errors.New("store: schedule not found")
	ErrNotOwner     = errors.New("store: schedule belongs to another user")
	ErrInvalidInput = errors.New("store: invalid input")
)

const (
	defaultListLimit   = 50
	upcomingTaskLimit  = 20
	upcomingWindowDays = 7
)

// Store represents the SQLite-based schedule store
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new store instance with SQLite database
func NewStore(dataDir string) (*Store, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "studypal.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	schedulesTable := `
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		topic TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		description TEXT,
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`

	userDateIndex := `
	CREATE INDEX IF NOT EXISTS idx_schedules_user_date
	ON schedules (user_id, date, time);`

	for _, stmt := range []string{schedulesTable, userDateIndex} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSchedule validates and persists a new schedule for the user.
// Priority defaults to medium and status starts as pending.
func (s *Store) CreateSchedule(ctx context.Context, userID string, sched core.Schedule) (core.Schedule, error) {
	if sched.Priority == "" {
		sched.Priority = core.PriorityMedium
	}
	sched.Status = core.StatusPending

	if err := validateNewSchedule(sched, s.today()); err != nil {
		return core.Schedule{}, err
	}

	now := s.now().UTC()
	sched.ID = uuid.New().String()
	sched.UserID = userID
	sched.CreatedAt = now
	sched.UpdatedAt = now

	query := `
	INSERT INTO schedules
	(id, user_id, subject, topic, date, time, description, priority, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		sched.ID,
		sched.UserID,
		sched.Subject,
		sched.Topic,
		sched.Date,
		sched.Time,
		sched.Description,
		sched.Priority,
		sched.Status,
		sched.CreatedAt,
		sched.UpdatedAt,
	)
	if err != nil {
		return core.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return sched, nil
}

// ScheduleFilter narrows ListSchedules results. Zero values mean no filter.
type ScheduleFilter struct {
	Status  string
	Date    string
	Subject string
	Limit   int
}

// ListSchedules returns the user's schedules ordered by date and time.
func (s *Store) ListSchedules(ctx context.Context, userID string, filter ScheduleFilter) ([]core.Schedule, error) {
	query := `SELECT id, user_id, subject, topic, date, time, description, priority, status, created_at, updated_at
	FROM schedules WHERE user_id = ?`
	args := []any{userID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Date != "" {
		query += " AND date = ?"
		args = append(args, filter.Date)
	}
	if filter.Subject != "" {
		query += " AND subject = ?"
		args = append(args, filter.Subject)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += " ORDER BY date ASC, time ASC LIMIT ?"
	args = append(args, limit)

	return s.querySchedules(ctx, query, args...)
}

// GetSchedule fetches a single schedule, enforcing ownership.
func (s *Store) GetSchedule(ctx context.Context, userID, id string) (core.Schedule, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, subject, topic, date, time, description, priority, status, created_at, updated_at
	FROM schedules WHERE id = ?`, id)

	sched, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Schedule{}, ErrNotFound
	}
	if err != nil {
		return core.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	if sched.UserID != userID {
		return core.Schedule{}, ErrNotOwner
	}

	return sched, nil
}

// ScheduleUpdate holds the fields an update may change. Nil fields are
// left untouched.
type ScheduleUpdate struct {
	Subject     *string
	Topic       *string
	Date        *string
	Time        *string
	Description *string
	Priority    *string
	Status      *string
}

// UpdateSchedule applies a partial update to the user's schedule and
// returns the updated record.
func (s *Store) UpdateSchedule(ctx context.Context, userID, id string, update ScheduleUpdate) (core.Schedule, error) {
	sched, err := s.GetSchedule(ctx, userID, id)
	if err != nil {
		return core.Schedule{}, err
	}

	if update.Subject != nil {
		sched.Subject = *update.Subject
	}
	if update.Topic != nil {
		sched.Topic = *update.Topic
	}
	if update.Date != nil {
		sched.Date = *update.Date
	}
	if update.Time != nil {
		sched.Time = *update.Time
	}
	if update.Description != nil {
		sched.Description = *update.Description
	}
	if update.Priority != nil {
		sched.Priority = *update.Priority
	}
	if update.Status != nil {
		sched.Status = *update.Status
	}

	if err := validateUpdatedSchedule(sched, update.Date != nil, s.today()); err != nil {
		return core.Schedule{}, err
	}

	sched.UpdatedAt = s.now().UTC()

	query := `
	UPDATE schedules
	SET subject = ?, topic = ?, date = ?, time = ?, description = ?, priority = ?, status = ?, updated_at = ?
	WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query,
		sched.Subject,
		sched.Topic,
		sched.Date,
		sched.Time,
		sched.Description,
		sched.Priority,
		sched.Status,
		sched.UpdatedAt,
		sched.ID,
	); err != nil {
		return core.Schedule{}, fmt.Errorf("failed to update schedule: %w", err)
	}

	return sched, nil
}

// DeleteSchedule removes the user's schedule.
func (s *Store) DeleteSchedule(ctx context.Context, userID, id string) error {
	if _, err := s.GetSchedule(ctx, userID, id); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	return nil
}

// UpcomingTasks returns the user's pending schedules within the next
// seven days, soonest first.
func (s *Store) UpcomingTasks(ctx context.Context, userID string) ([]core.Schedule, error) {
	today := s.today()
	nextWeek := today.AddDate(0, 0, upcomingWindowDays)

	query := `SELECT id, user_id, subject, topic, date, time, description, priority, status, created_at, updated_at
	FROM schedules
	WHERE user_id = ? AND date >= ? AND date <= ? AND status = ?
	ORDER BY date ASC, time ASC LIMIT ?`

	return s.querySchedules(ctx, query,
		userID,
		today.Format(dateLayout),
		nextWeek.Format(dateLayout),
		core.StatusPending,
		upcomingTaskLimit,
	)
}

// Stats summarizes a user's schedules by status and subject.
type Stats struct {
	TotalSchedules   int            `json:"totalSchedules"`
	PendingTasks     int            `json:"pendingTasks"`
	CompletedTasks   int            `json:"completedTasks"`
	MissedTasks      int            `json:"missedTasks"`
	SubjectBreakdown map[string]int `json:"subjectBreakdown"`
}

// ScheduleStats computes schedule counts for the user.
func (s *Store) ScheduleStats(ctx context.Context, userID string) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT subject, status FROM schedules WHERE user_id = ?`, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query schedule stats: %w", err)
	}
	defer rows.Close()

	stats := Stats{SubjectBreakdown: make(map[string]int)}
	for rows.Next() {
		var subject, status string
		if err := rows.Scan(&subject, &status); err != nil {
			return Stats{}, fmt.Errorf("failed to scan schedule stats: %w", err)
		}

		stats.TotalSchedules++
		switch status {
		case core.StatusPending:
			stats.PendingTasks++
		case core.StatusCompleted:
			stats.CompletedTasks++
		case core.StatusMissed:
			stats.MissedTasks++
		}
		stats.SubjectBreakdown[subject]++
	}

	return stats, rows.Err()
}

// today returns the current date truncated to midnight UTC.
func (s *Store) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Store) querySchedules(ctx context.Context, query string, args ...any) ([]core.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []core.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, sched)
	}

	return schedules, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (core.Schedule, error) {
	var sched core.Schedule
	err := row.Scan(
		&sched.ID,
		&sched.UserID,
		&sched.Subject,
		&sched.Topic,
		&sched.Date,
		&sched.Time,
		&sched.Description,
		&sched.Priority,
		&sched.Status,
		&sched.CreatedAt,
		&sched.UpdatedAt,
	)
	return sched, err
}
