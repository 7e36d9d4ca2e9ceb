package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/internal/timeparse"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
)

// Canonical spreadsheet column names, in export order.
const (
	HeaderProgram           = "Program"
	HeaderSection           = "Section"
	HeaderCourseCode        = "Course Code"
	HeaderCourseDescription = "Course Description"
	HeaderUnits             = "Units"
	HeaderHours             = "# of Hours"
	HeaderTimeDisplay       = "Time (LPU Std)"
	HeaderTimeCanonical     = "Time (24 Hrs)"
	HeaderDays              = "Days"
	HeaderRoom              = "Room"
	HeaderFaculty           = "Faculty"
)

// CanonicalHeaders is the column set written by every export.
var CanonicalHeaders = []string{
	HeaderProgram, HeaderSection, HeaderCourseCode, HeaderCourseDescription,
	HeaderUnits, HeaderHours, HeaderTimeDisplay, HeaderTimeCanonical,
	HeaderDays, HeaderRoom, HeaderFaculty,
}

// requiredHeaders must all be present in an uploaded CSV. The 24-hour column
// is recomputed on import, so it is optional.
var requiredHeaders = []string{
	HeaderProgram, HeaderSection, HeaderCourseCode, HeaderCourseDescription,
	HeaderUnits, HeaderHours, HeaderTimeDisplay, HeaderDays, HeaderRoom, HeaderFaculty,
}

// headerSynonyms maps lowercased incoming header cells to canonical names.
var headerSynonyms = map[string]string{
	"program":            HeaderProgram,
	"section":            HeaderSection,
	"course code":        HeaderCourseCode,
	"course description": HeaderCourseDescription,
	"units":              HeaderUnits,
	"# of hours":         HeaderHours,
	"time (lpu std)":     HeaderTimeDisplay,
	"time (24 hrs)":      HeaderTimeCanonical,
	"days":               HeaderDays,
	"room":               HeaderRoom,
	"faculty":            HeaderFaculty,
}

type importEntryRepository interface {
	BulkCreate(ctx context.Context, entries []models.ScheduleEntry) error
	DeleteAll(ctx context.Context) error
	Reset(ctx context.Context) error
}

// ImportOptions controls a CSV import run.
type ImportOptions struct {
	// Replace clears the existing schedule before storing the new rows.
	// The wipe is skipped when no row validates.
	Replace bool
	// Preview validates every row and reports counters without writing.
	Preview bool
}

// ImportService ingests schedule spreadsheets exported from the registrar's
// tooling. Every row passes through normalization; rejected rows are
// reported with their spreadsheet row number and the import continues.
type ImportService struct {
	entries importEntryRepository
	catalog catalogRepository
	cache   conflictInvalidator
	logger  *zap.Logger
}

// NewImportService instantiates ImportService.
func NewImportService(entries importEntryRepository, catalog catalogRepository, cache conflictInvalidator, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{entries: entries, catalog: catalog, cache: cache, logger: logger}
}

// ImportCSV parses and loads a schedule CSV stream.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader, opts ImportOptions) (*models.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err == io.EOF {
		headerRow = nil
	} else if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read CSV header")
	}

	headerMap := mapHeaders(headerRow)
	missing := missingHeaders(headerMap)
	result := &models.ImportResult{MissingColumns: []string{}, Errors: []models.ImportRowError{}}
	if len(missing) > 0 {
		result.MissingColumns = missing
		result.Errors = append(result.Errors, models.ImportRowError{RowIndex: 0, Reason: "Missing required columns"})
		return result, nil
	}

	var toCreate []models.ScheduleEntry
	rowIndex := 1
	for {
		rowIndex++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.RowsTotal++
			result.RowsSkipped++
			result.Errors = append(result.Errors, models.ImportRowError{RowIndex: rowIndex, Reason: "Malformed CSV row"})
			continue
		}

		result.RowsTotal++
		entry, err := s.buildRow(ctx, row, headerMap, opts.Preview)
		if err != nil {
			result.RowsSkipped++
			result.Errors = append(result.Errors, models.ImportRowError{RowIndex: rowIndex, Reason: err.Error()})
			continue
		}
		result.RowsImported++
		if !opts.Preview {
			toCreate = append(toCreate, *entry)
		}
	}

	// The replace wipe waits until at least one row has validated, so a
	// well-formed header with an entirely rejected body keeps the stored
	// schedule intact.
	if !opts.Preview && len(toCreate) > 0 {
		if opts.Replace {
			if err := s.entries.DeleteAll(ctx); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear schedule before import")
			}
		}
		if err := s.entries.BulkCreate(ctx, toCreate); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store imported entries")
		}
	}
	if !opts.Preview && s.cache != nil {
		s.cache.InvalidateReports(ctx)
	}

	s.logger.Info("csv import finished",
		zap.Int("rows_total", result.RowsTotal),
		zap.Int("rows_imported", result.RowsImported),
		zap.Int("rows_skipped", result.RowsSkipped),
		zap.Bool("preview", opts.Preview),
	)
	return result, nil
}

// Reset truncates every scheduler table.
func (s *ImportService) Reset(ctx context.Context) error {
	if err := s.entries.Reset(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset dataset")
	}
	if s.cache != nil {
		s.cache.InvalidateReports(ctx)
	}
	return nil
}

func (s *ImportService) buildRow(ctx context.Context, row []string, headerMap map[string]int, preview bool) (*models.ScheduleEntry, error) {
	get := func(header string) string {
		idx, ok := headerMap[header]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	// These messages surface verbatim as ImportRowError reasons in API
	// responses, hence the sentence casing.
	units, err := parseFloatCell(get(HeaderUnits))
	if err != nil {
		return nil, fmt.Errorf("Invalid Units value")
	}
	hours, err := parseFloatCell(get(HeaderHours))
	if err != nil {
		return nil, fmt.Errorf("Invalid # of Hours value")
	}

	normalized, err := timeparse.Normalize(get(HeaderTimeDisplay), get(HeaderDays))
	if err != nil {
		var daysErr *timeparse.InvalidDaysError
		if errors.As(err, &daysErr) {
			return nil, fmt.Errorf("Invalid Days. Example: M,W,F")
		}
		return nil, fmt.Errorf("Invalid Time (LPU Std). Example: 10:00a-12:00p")
	}

	entry := &models.ScheduleEntry{
		Program:           get(HeaderProgram),
		Section:           get(HeaderSection),
		CourseCode:        get(HeaderCourseCode),
		CourseDescription: get(HeaderCourseDescription),
		Units:             units,
		Hours:             hours,
		TimeDisplay:       normalized.TimeDisplay,
		Days:              normalized.Days,
		Room:              get(HeaderRoom),
		Faculty:           get(HeaderFaculty),
	}
	if !normalized.TBA {
		canonical := normalized.TimeCanonical
		start := normalized.StartMinutes
		end := normalized.EndMinutes
		entry.TimeCanonical = &canonical
		entry.StartMinutes = &start
		entry.EndMinutes = &end
	}

	if !preview {
		for _, reg := range []struct {
			kind models.CatalogKind
			name string
		}{
			{models.CatalogSections, entry.Section},
			{models.CatalogFaculty, entry.Faculty},
			{models.CatalogRooms, entry.Room},
		} {
			if reg.name == "" {
				continue
			}
			if err := s.catalog.Ensure(ctx, reg.kind, reg.name); err != nil {
				return nil, fmt.Errorf("failed to register %s", reg.kind)
			}
		}
	}

	return entry, nil
}

// mapHeaders resolves incoming header cells to canonical column indexes,
// tolerating a UTF-8 BOM and spreadsheet "Unnamed: N" filler columns.
func mapHeaders(headerRow []string) map[string]int {
	headerMap := make(map[string]int)
	for idx, header := range headerRow {
		cleaned := strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF"))
		if cleaned == "" || strings.HasPrefix(strings.ToLower(cleaned), "unnamed") {
			continue
		}
		if canonical, ok := headerSynonyms[strings.ToLower(cleaned)]; ok {
			if _, taken := headerMap[canonical]; !taken {
				headerMap[canonical] = idx
			}
		}
	}
	return headerMap
}

func missingHeaders(headerMap map[string]int) []string {
	var missing []string
	for _, header := range requiredHeaders {
		if _, ok := headerMap[header]; !ok {
			missing = append(missing, header)
		}
	}
	return missing
}

func parseFloatCell(text string) (float64, error) {
	if text == "" {
		return 0, nil
	}
	return strconv.ParseFloat(text, 64)
}
