package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lpu-scheduler-api/internal/conflict"
	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/internal/timeparse"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
)

type scheduleEntryRepository interface {
	List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, int, error)
	ListAll(ctx context.Context) ([]models.ScheduleEntry, error)
	FindByID(ctx context.Context, id int64) (*models.ScheduleEntry, error)
	Create(ctx context.Context, entry *models.ScheduleEntry) error
	Update(ctx context.Context, entry *models.ScheduleEntry) error
	Delete(ctx context.Context, id int64) error
}

type conflictInvalidator interface {
	InvalidateReports(ctx context.Context)
}

// ScheduleEntryRequest is the payload for creating or updating an entry.
// Time and day fields arrive as raw user text and are normalized before
// anything is stored; updates are full replacements.
type ScheduleEntryRequest struct {
	Program           string  `json:"program" validate:"required"`
	Section           string  `json:"section" validate:"required"`
	CourseCode        string  `json:"course_code" validate:"required"`
	CourseDescription string  `json:"course_description" validate:"required"`
	Units             float64 `json:"units" validate:"gte=0"`
	Hours             float64 `json:"hours" validate:"gte=0"`
	TimeDisplay       string  `json:"time_display"`
	Days              string  `json:"days"`
	Room              string  `json:"room" validate:"required"`
	Faculty           string  `json:"faculty" validate:"required"`
}

// ScheduleService coordinates entry CRUD and normalization.
type ScheduleService struct {
	repo      scheduleEntryRepository
	cache     conflictInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo scheduleEntryRepository, cache conflictInvalidator, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns entries with pagination metadata.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleEntryFilter) ([]models.ScheduleEntry, *models.Pagination, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule entries")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return entries, pagination, nil
}

// Get loads one entry by id.
func (s *ScheduleService) Get(ctx context.Context, id int64) (*models.ScheduleEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}
	return entry, nil
}

// Create normalizes the raw time/day fields and stores a new entry.
func (s *ScheduleService) Create(ctx context.Context, req ScheduleEntryRequest) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule entry payload")
	}

	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule entry")
	}
	s.invalidate(ctx)
	return entry, nil
}

// Update replaces an existing entry wholesale, re-running normalization.
func (s *ScheduleService) Update(ctx context.Context, id int64, req ScheduleEntryRequest) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule entry payload")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}

	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule entry")
	}
	s.invalidate(ctx)
	return entry, nil
}

// Delete removes an entry by id.
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule entry")
	}
	s.invalidate(ctx)
	return nil
}

// PreviewConflicts evaluates a candidate payload against the stored set
// without persisting it. excludeID removes the candidate's stored row when
// checking an update; pass 0 for new entries.
func (s *ScheduleService) PreviewConflicts(ctx context.Context, excludeID int64, req ScheduleEntryRequest, cfg conflict.Config) ([]models.CandidateConflict, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule entry payload")
	}

	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule snapshot")
	}

	byID := make(map[int64]models.ScheduleEntry, len(stored))
	snapshot := make([]conflict.Entry, 0, len(stored))
	for _, item := range stored {
		byID[item.ID] = item
		snapshot = append(snapshot, toConflictEntry(item))
	}

	matches := conflict.ForCandidate(snapshot, cfg, excludeID, toConflictEntry(*entry))
	result := make([]models.CandidateConflict, 0, len(matches))
	for _, match := range matches {
		result = append(result, models.CandidateConflict{
			Type:  match.Type,
			Entry: byID[match.Entry.ID],
		})
	}
	return result, nil
}

// buildEntry runs normalization and maps the request onto a storable entry.
func (s *ScheduleService) buildEntry(req ScheduleEntryRequest) (*models.ScheduleEntry, error) {
	normalized, err := timeparse.Normalize(req.TimeDisplay, req.Days)
	if err != nil {
		return nil, wrapNormalizationError(err)
	}

	entry := &models.ScheduleEntry{
		Program:           req.Program,
		Section:           req.Section,
		CourseCode:        req.CourseCode,
		CourseDescription: req.CourseDescription,
		Units:             req.Units,
		Hours:             req.Hours,
		TimeDisplay:       normalized.TimeDisplay,
		Days:              normalized.Days,
		Room:              req.Room,
		Faculty:           req.Faculty,
	}
	if !normalized.TBA {
		canonical := normalized.TimeCanonical
		start := normalized.StartMinutes
		end := normalized.EndMinutes
		entry.TimeCanonical = &canonical
		entry.StartMinutes = &start
		entry.EndMinutes = &end
	}
	return entry, nil
}

func (s *ScheduleService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateReports(ctx)
	}
}

// wrapNormalizationError maps timeparse failures onto the typed HTTP errors.
func wrapNormalizationError(err error) error {
	var timeErr *timeparse.InvalidTimeError
	if errors.As(err, &timeErr) {
		return appErrors.Wrap(err, appErrors.ErrInvalidTimeFormat.Code, appErrors.ErrInvalidTimeFormat.Status, appErrors.ErrInvalidTimeFormat.Message)
	}
	var daysErr *timeparse.InvalidDaysError
	if errors.As(err, &daysErr) {
		return appErrors.Wrap(err, appErrors.ErrInvalidDaysFormat.Code, appErrors.ErrInvalidDaysFormat.Status, appErrors.ErrInvalidDaysFormat.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule entry payload")
}

// toConflictEntry projects a stored entry into the detector's snapshot view.
func toConflictEntry(entry models.ScheduleEntry) conflict.Entry {
	return conflict.Entry{
		ID:           entry.ID,
		TimeDisplay:  entry.TimeDisplay,
		Days:         entry.Days,
		Room:         entry.Room,
		Faculty:      entry.Faculty,
		StartMinutes: entry.StartMinutes,
		EndMinutes:   entry.EndMinutes,
	}
}
