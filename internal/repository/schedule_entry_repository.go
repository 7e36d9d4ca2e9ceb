package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
)

const scheduleEntryColumns = "id, program, section, course_code, course_description, units, hours, time_display, time_canonical, days, room, faculty, start_minutes, end_minutes, created_at, updated_at"

// ScheduleEntryRepository provides persistence for schedule entries.
type ScheduleEntryRepository struct {
	db *sqlx.DB
}

// NewScheduleEntryRepository creates a new schedule entry repository.
func NewScheduleEntryRepository(db *sqlx.DB) *ScheduleEntryRepository {
	return &ScheduleEntryRepository{db: db}
}

// List returns schedule entries with optional filtering and pagination.
func (r *ScheduleEntryRepository) List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error) {
	base := "FROM schedule_entries WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Section != "" {
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)+1))
		args = append(args, filter.Section)
	}
	if filter.Faculty != "" {
		conditions = append(conditions, fmt.Sprintf("faculty = $%d", len(args)+1))
		args = append(args, filter.Faculty)
	}
	if filter.Room != "" {
		conditions = append(conditions, fmt.Sprintf("room = $%d", len(args)+1))
		args = append(args, filter.Room)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY id ASC LIMIT %d OFFSET %d", scheduleEntryColumns, base, size, offset)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedule entries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedule entries: %w", err)
	}

	return entries, total, nil
}

// ListAll loads the full entry set in one query. Conflict detection runs
// over this snapshot so every scan sees a consistent view.
func (r *ScheduleEntryRepository) ListAll(ctx context.Context) ([]models.ScheduleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_entries ORDER BY id ASC", scheduleEntryColumns)
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list all schedule entries: %w", err)
	}
	return entries, nil
}

// FindByID loads a schedule entry by id.
func (r *ScheduleEntryRepository) FindByID(ctx context.Context, id int64) (*models.ScheduleEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_entries WHERE id = $1", scheduleEntryColumns)
	var entry models.ScheduleEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create stores a new schedule entry and assigns its id.
func (r *ScheduleEntryRepository) Create(ctx context.Context, entry *models.ScheduleEntry) error {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	const query = `INSERT INTO schedule_entries (program, section, course_code, course_description, units, hours, time_display, time_canonical, days, room, faculty, start_minutes, end_minutes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		entry.Program, entry.Section, entry.CourseCode, entry.CourseDescription,
		entry.Units, entry.Hours, entry.TimeDisplay, entry.TimeCanonical,
		entry.Days, entry.Room, entry.Faculty, entry.StartMinutes, entry.EndMinutes,
		entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.ID); err != nil {
		return fmt.Errorf("create schedule entry: %w", err)
	}
	return nil
}

// BulkCreate inserts many entries within a transaction. Used by CSV import.
func (r *ScheduleEntryRepository) BulkCreate(ctx context.Context, entries []models.ScheduleEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create schedule entries: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const query = `INSERT INTO schedule_entries (program, section, course_code, course_description, units, hours, time_display, time_canonical, days, room, faculty, start_minutes, end_minutes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for i := range entries {
		entry := &entries[i]
		entry.CreatedAt = now
		entry.UpdatedAt = now
		if _, err = tx.ExecContext(ctx, query,
			entry.Program, entry.Section, entry.CourseCode, entry.CourseDescription,
			entry.Units, entry.Hours, entry.TimeDisplay, entry.TimeCanonical,
			entry.Days, entry.Room, entry.Faculty, entry.StartMinutes, entry.EndMinutes,
			entry.CreatedAt, entry.UpdatedAt,
		); err != nil {
			return fmt.Errorf("bulk insert schedule entry: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create schedule entries: %w", err)
	}
	return nil
}

// Update replaces every mutable field of an existing entry.
func (r *ScheduleEntryRepository) Update(ctx context.Context, entry *models.ScheduleEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedule_entries SET program = :program, section = :section, course_code = :course_code, course_description = :course_description, units = :units, hours = :hours, time_display = :time_display, time_canonical = :time_canonical, days = :days, room = :room, faculty = :faculty, start_minutes = :start_minutes, end_minutes = :end_minutes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update schedule entry: %w", err)
	}
	return nil
}

// Delete removes a schedule entry by id.
func (r *ScheduleEntryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	return nil
}

// DeleteAll clears the schedule table. CSV import uses this for replace mode.
func (r *ScheduleEntryRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_entries`); err != nil {
		return fmt.Errorf("delete all schedule entries: %w", err)
	}
	return nil
}

// Reset truncates every scheduler table, returning the service to a blank
// dataset.
func (r *ScheduleEntryRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE schedule_entries, sections, faculty, rooms RESTART IDENTITY`); err != nil {
		return fmt.Errorf("reset scheduler tables: %w", err)
	}
	return nil
}
