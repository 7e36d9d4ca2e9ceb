package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lpu-scheduler-api/internal/conflict"
	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
)

const conflictCachePrefix = "conflicts:"

type conflictCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// ConflictQuery mirrors the conflicts endpoint parameters. Ignore lists are
// already split and trimmed by the handler.
type ConflictQuery struct {
	IgnoreFaculty     bool
	IgnoreRoom        bool
	IgnoreTBA         bool
	IgnoreFacultyList []string
	IgnoreRoomList    []string
	FacultyContains   bool
	RoomContains      bool
}

// Config converts the query into detector configuration.
func (q ConflictQuery) Config() conflict.Config {
	return conflict.Config{
		IgnoreFaculty:     q.IgnoreFaculty,
		IgnoreRoom:        q.IgnoreRoom,
		IgnoreTBA:         q.IgnoreTBA,
		IgnoreFacultyList: q.IgnoreFacultyList,
		IgnoreRoomList:    q.IgnoreRoomList,
		FacultyContains:   q.FacultyContains,
		RoomContains:      q.RoomContains,
	}
}

// cacheKey serializes the query into a stable cache key.
func (q ConflictQuery) cacheKey() string {
	return fmt.Sprintf("%s%t:%t:%t:%s:%s:%t:%t",
		conflictCachePrefix,
		q.IgnoreFaculty, q.IgnoreRoom, q.IgnoreTBA,
		strings.Join(q.IgnoreFacultyList, ","), strings.Join(q.IgnoreRoomList, ","),
		q.FacultyContains, q.RoomContains,
	)
}

// ConflictService runs the detector over a stored snapshot and shapes the
// grouped report, with optional Redis caching.
type ConflictService struct {
	repo     scheduleEntryRepository
	cache    conflictCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewConflictService instantiates ConflictService.
func NewConflictService(repo scheduleEntryRepository, cache conflictCache, cacheTTL time.Duration, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ConflictService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Report computes the grouped conflict report for the current snapshot.
func (s *ConflictService) Report(ctx context.Context, query ConflictQuery) (*models.ConflictReport, bool, error) {
	key := query.cacheKey()
	if s.cache != nil {
		var cached models.ConflictReport
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, true, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("conflict report cache read failed", zap.Error(err))
		}
	}

	records, err := s.findRecords(ctx, query)
	if err != nil {
		return nil, false, err
	}
	report := groupRecords(records)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
			s.logger.Warn("conflict report cache write failed", zap.Error(err))
		}
	}
	return report, false, nil
}

// ForEntry returns the directional records keyed at one entry.
func (s *ConflictService) ForEntry(ctx context.Context, query ConflictQuery, id int64) ([]conflict.Record, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return conflict.ForEntry(snapshot, query.Config(), id), nil
}

// InvalidateReports drops every cached conflict report. Called after any
// schedule write.
func (s *ConflictService) InvalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, conflictCachePrefix+"*"); err != nil {
		s.logger.Warn("conflict report cache invalidation failed", zap.Error(err))
	}
}

func (s *ConflictService) findRecords(ctx context.Context, query ConflictQuery) ([]conflict.Record, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return conflict.Find(snapshot, query.Config()), nil
}

func (s *ConflictService) snapshot(ctx context.Context) ([]conflict.Entry, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule snapshot")
	}
	snapshot := make([]conflict.Entry, 0, len(entries))
	for _, entry := range entries {
		snapshot = append(snapshot, toConflictEntry(entry))
	}
	return snapshot, nil
}

// groupRecords collapses directional records into one summary per
// (entry, type) pair, preserving first-seen order.
func groupRecords(records []conflict.Record) *models.ConflictReport {
	type groupKey struct {
		entryID int64
		typ     conflict.Type
	}
	grouped := make(map[groupKey][]int64)
	var order []groupKey
	for _, record := range records {
		key := groupKey{entryID: record.EntryID, typ: record.Type}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], record.ConflictsWith)
	}

	report := &models.ConflictReport{Conflicts: make([]models.ConflictSummary, 0, len(order))}
	for _, key := range order {
		report.Conflicts = append(report.Conflicts, models.ConflictSummary{
			EntryID:       key.entryID,
			ConflictsWith: grouped[key],
			Type:          key.typ,
		})
	}
	return report
}
