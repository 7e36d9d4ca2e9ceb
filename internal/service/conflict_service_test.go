package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lpu-scheduler-api/internal/conflict"
	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
)

type cacheStub struct {
	values map[string][]byte
	sets   int
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: map[string][]byte{}}
}

func (c *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	c.sets++
	return nil
}

func (c *cacheStub) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}

func minutes(v int) *int { return &v }

func timedEntry(id int64, room, faculty, days string, start, end int) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:           id,
		TimeDisplay:  "10:00a-12:00p",
		Days:         days,
		Room:         room,
		Faculty:      faculty,
		StartMinutes: minutes(start),
		EndMinutes:   minutes(end),
	}
}

func TestConflictServiceReportGroupsRecords(t *testing.T) {
	repo := newScheduleRepoStub()
	repo.entries[1] = timedEntry(1, "R1", "A", "M,W", 600, 720)
	repo.entries[2] = timedEntry(2, "R1", "A", "M", 660, 780)
	repo.nextID = 3

	svc := NewConflictService(repo, nil, time.Minute, nil)

	report, cacheHit, err := svc.Report(context.Background(), ConflictQuery{})
	require.NoError(t, err)
	assert.False(t, cacheHit)

	// Room and faculty overlap in both directions, grouped per entry and type.
	require.Len(t, report.Conflicts, 4)
	assert.Equal(t, int64(1), report.Conflicts[0].EntryID)
	assert.Equal(t, conflict.TypeRoom, report.Conflicts[0].Type)
	assert.Equal(t, []int64{2}, report.Conflicts[0].ConflictsWith)
	assert.Equal(t, conflict.TypeFaculty, report.Conflicts[1].Type)
}

func TestConflictServiceReportUsesCache(t *testing.T) {
	repo := newScheduleRepoStub()
	repo.entries[1] = timedEntry(1, "R1", "A", "M", 600, 720)
	repo.entries[2] = timedEntry(2, "R1", "B", "M", 600, 720)
	repo.nextID = 3

	cache := newCacheStub()
	svc := NewConflictService(repo, cache, time.Minute, nil)

	first, cacheHit, err := svc.Report(context.Background(), ConflictQuery{})
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 1, cache.sets)

	second, cacheHit, err := svc.Report(context.Background(), ConflictQuery{})
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, first, second)
}

func TestConflictServiceQueryShapesCacheKey(t *testing.T) {
	repo := newScheduleRepoStub()
	cache := newCacheStub()
	svc := NewConflictService(repo, cache, time.Minute, nil)

	_, _, err := svc.Report(context.Background(), ConflictQuery{IgnoreRoom: true})
	require.NoError(t, err)
	_, _, err = svc.Report(context.Background(), ConflictQuery{IgnoreFaculty: true})
	require.NoError(t, err)

	assert.Equal(t, 2, cache.sets)
}

func TestConflictServiceInvalidateReports(t *testing.T) {
	repo := newScheduleRepoStub()
	cache := newCacheStub()
	svc := NewConflictService(repo, cache, time.Minute, nil)

	_, _, err := svc.Report(context.Background(), ConflictQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, cache.values)

	svc.InvalidateReports(context.Background())
	assert.Empty(t, cache.values)
}

func TestConflictServiceForEntry(t *testing.T) {
	repo := newScheduleRepoStub()
	repo.entries[1] = timedEntry(1, "R1", "A", "M", 600, 720)
	repo.entries[2] = timedEntry(2, "R1", "B", "M", 660, 780)
	repo.entries[3] = timedEntry(3, "R2", "C", "M", 600, 720)
	repo.nextID = 4

	svc := NewConflictService(repo, nil, time.Minute, nil)

	records, err := svc.ForEntry(context.Background(), ConflictQuery{}, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].EntryID)
	assert.Equal(t, int64(2), records[0].ConflictsWith)
	assert.Equal(t, conflict.TypeRoom, records[0].Type)
}
