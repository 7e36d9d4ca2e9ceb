package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lpu-scheduler-api/internal/conflict"
	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
)

type scheduleRepoStub struct {
	entries map[int64]models.ScheduleEntry
	nextID  int64
	err     error
}

func newScheduleRepoStub() *scheduleRepoStub {
	return &scheduleRepoStub{entries: map[int64]models.ScheduleEntry{}, nextID: 1}
}

func (s *scheduleRepoStub) List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return all, len(all), nil
}

func (s *scheduleRepoStub) ListAll(ctx context.Context) ([]models.ScheduleEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	var all []models.ScheduleEntry
	for id := int64(1); id < s.nextID; id++ {
		if entry, ok := s.entries[id]; ok {
			all = append(all, entry)
		}
	}
	return all, nil
}

func (s *scheduleRepoStub) FindByID(ctx context.Context, id int64) (*models.ScheduleEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	entry, ok := s.entries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &entry, nil
}

func (s *scheduleRepoStub) Create(ctx context.Context, entry *models.ScheduleEntry) error {
	if s.err != nil {
		return s.err
	}
	entry.ID = s.nextID
	s.nextID++
	s.entries[entry.ID] = *entry
	return nil
}

func (s *scheduleRepoStub) Update(ctx context.Context, entry *models.ScheduleEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries[entry.ID] = *entry
	return nil
}

func (s *scheduleRepoStub) Delete(ctx context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	delete(s.entries, id)
	return nil
}

type invalidatorStub struct {
	calls int
}

func (i *invalidatorStub) InvalidateReports(ctx context.Context) {
	i.calls++
}

func validEntryRequest() ScheduleEntryRequest {
	return ScheduleEntryRequest{
		Program:           "BSIT",
		Section:           "BSIT-3A",
		CourseCode:        "CS101",
		CourseDescription: "Intro to Computing",
		Units:             3,
		Hours:             3,
		TimeDisplay:       "10:00a-12:00p",
		Days:              "MWF",
		Room:              "Room 401",
		Faculty:           "Cruz, J.",
	}
}

func TestScheduleServiceCreateNormalizes(t *testing.T) {
	repo := newScheduleRepoStub()
	cache := &invalidatorStub{}
	svc := NewScheduleService(repo, cache, nil, nil)

	entry, err := svc.Create(context.Background(), validEntryRequest())
	require.NoError(t, err)

	assert.Equal(t, "10:00a-12:00p", entry.TimeDisplay)
	require.NotNil(t, entry.TimeCanonical)
	assert.Equal(t, "10:00-12:00", *entry.TimeCanonical)
	assert.Equal(t, "M,W,F", entry.Days)
	require.NotNil(t, entry.StartMinutes)
	require.NotNil(t, entry.EndMinutes)
	assert.Equal(t, 600, *entry.StartMinutes)
	assert.Equal(t, 720, *entry.EndMinutes)
	assert.Equal(t, 1, cache.calls)
}

func TestScheduleServiceCreateForcesTBA(t *testing.T) {
	repo := newScheduleRepoStub()
	svc := NewScheduleService(repo, &invalidatorStub{}, nil, nil)

	req := validEntryRequest()
	req.TimeDisplay = "tba"
	req.Days = "MWF"

	entry, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "TBA", entry.TimeDisplay)
	assert.Equal(t, "TBA", entry.Days)
	assert.Nil(t, entry.TimeCanonical)
	assert.Nil(t, entry.StartMinutes)
	assert.Nil(t, entry.EndMinutes)
}

func TestScheduleServiceCreateRejectsBadTime(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoStub(), &invalidatorStub{}, nil, nil)

	req := validEntryRequest()
	req.TimeDisplay = "12:00p-10:00a"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidTimeFormat.Code, appErr.Code)
}

func TestScheduleServiceCreateRejectsBadDays(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoStub(), &invalidatorStub{}, nil, nil)

	req := validEntryRequest()
	req.Days = "XYZ"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidDaysFormat.Code, appErr.Code)
}

func TestScheduleServiceUpdateNotFound(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoStub(), &invalidatorStub{}, nil, nil)

	_, err := svc.Update(context.Background(), 42, validEntryRequest())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestScheduleServiceDeleteInvalidatesCache(t *testing.T) {
	repo := newScheduleRepoStub()
	cache := &invalidatorStub{}
	svc := NewScheduleService(repo, cache, nil, nil)

	entry, err := svc.Create(context.Background(), validEntryRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), entry.ID))

	assert.Equal(t, 2, cache.calls)
	assert.Empty(t, repo.entries)
}

func TestScheduleServicePreviewConflicts(t *testing.T) {
	repo := newScheduleRepoStub()
	svc := NewScheduleService(repo, &invalidatorStub{}, nil, nil)

	stored, err := svc.Create(context.Background(), validEntryRequest())
	require.NoError(t, err)

	candidate := validEntryRequest()
	candidate.Section = "BSIT-3B"
	candidate.Faculty = "Reyes, M."
	candidate.TimeDisplay = "11:00a-1:00p"

	conflicts, err := svc.PreviewConflicts(context.Background(), 0, candidate, conflict.Config{})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, conflict.TypeRoom, conflicts[0].Type)
	assert.Equal(t, stored.ID, conflicts[0].Entry.ID)

	// Editing the stored entry itself must not report a self conflict.
	conflicts, err = svc.PreviewConflicts(context.Background(), stored.ID, candidate, conflict.Config{})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
