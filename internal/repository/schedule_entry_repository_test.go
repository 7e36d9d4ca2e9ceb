package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "program", "section", "course_code", "course_description", "units", "hours",
		"time_display", "time_canonical", "days", "room", "faculty",
		"start_minutes", "end_minutes", "created_at", "updated_at",
	})
}

func TestScheduleEntryRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleEntryRepository(db)
	now := time.Now()

	rows := entryRows().
		AddRow(1, "BSIT", "BSIT-3A", "CS101", "Intro", 3.0, 3.0, "10:00a-12:00p", "10:00-12:00", "M,W,F", "R1", "Cruz, J.", 600, 720, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, program, section")).
		WithArgs("BSIT-3A", "Cruz, J.").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("BSIT-3A", "Cruz, J.").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	entries, total, err := repo.List(context.Background(), models.ScheduleEntryFilter{
		Section: "BSIT-3A",
		Faculty: "Cruz, J.",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 1, total)
	require.Equal(t, int64(1), entries[0].ID)
	require.NotNil(t, entries[0].StartMinutes)
	require.Equal(t, 600, *entries[0].StartMinutes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleEntryRepositoryListAllNullMinutes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleEntryRepository(db)
	now := time.Now()

	rows := entryRows().
		AddRow(1, "BSIT", "BSIT-3A", "CS199", "Thesis", 3.0, 3.0, "TBA", nil, "TBA", "R1", "A", nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, program, section")).WillReturnRows(rows)

	entries, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].StartMinutes)
	require.Nil(t, entries[0].TimeCanonical)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleEntryRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleEntryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO schedule_entries")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	canonical := "10:00-12:00"
	start, end := 600, 720
	entry := &models.ScheduleEntry{
		Program:           "BSIT",
		Section:           "BSIT-3A",
		CourseCode:        "CS101",
		CourseDescription: "Intro",
		TimeDisplay:       "10:00a-12:00p",
		TimeCanonical:     &canonical,
		Days:              "M,W,F",
		Room:              "R1",
		Faculty:           "A",
		StartMinutes:      &start,
		EndMinutes:        &end,
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	require.Equal(t, int64(7), entry.ID)
	require.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleEntryRepositoryBulkCreateTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleEntryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_entries")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_entries")).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	entries := []models.ScheduleEntry{
		{Program: "BSIT", Section: "A", TimeDisplay: "TBA", Days: "TBA"},
		{Program: "BSIT", Section: "B", TimeDisplay: "TBA", Days: "TBA"},
	}
	require.NoError(t, repo.BulkCreate(context.Background(), entries))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleEntryRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleEntryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_entries WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleEntryRepositoryReset(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleEntryRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE schedule_entries, sections, faculty, rooms RESTART IDENTITY")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Reset(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
