package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/internal/timeparse"
	appErrors "github.com/noah-isme/lpu-scheduler-api/pkg/errors"
	"github.com/noah-isme/lpu-scheduler-api/pkg/export"
	"github.com/noah-isme/lpu-scheduler-api/pkg/storage"
)

// timetableFolders maps a grouping dimension to its export folder name.
var timetableFolders = map[models.TimetableGroup]string{
	models.TimetableBySection: "Timetables_Section",
	models.TimetableByFaculty: "Timetables_Faculty",
	models.TimetableByRoom:    "Timetables_Room",
}

// ExportService renders the stored schedule into downloadable artifacts:
// the full dataset as CSV, per-group timetables as CSV or PDF, and
// client-rendered timetable PNGs saved into a batch directory.
type ExportService struct {
	repo    scheduleEntryRepository
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	storage *storage.LocalStorage
	logger  *zap.Logger
}

// NewExportService instantiates ExportService.
func NewExportService(repo scheduleEntryRepository, csvExporter *export.CSVExporter, pdfExporter *export.PDFExporter, store *storage.LocalStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, csv: csvExporter, pdf: pdfExporter, storage: store, logger: logger}
}

// ExportCSV renders the entire schedule as a canonical eleven-column CSV.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule for export")
	}
	data, err := s.csv.Render(buildDataset(entries))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV export")
	}
	return data, nil
}

// TimetableCSV renders one group's timetable as CSV. The returned filename
// is suitable for a Content-Disposition header.
func (s *ExportService) TimetableCSV(ctx context.Context, group models.TimetableGroup, value string) ([]byte, string, error) {
	entries, err := s.timetableEntries(ctx, group, value)
	if err != nil {
		return nil, "", err
	}
	data, err := s.csv.Render(buildDataset(entries))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable CSV")
	}
	return data, timetableFilename(group, value, "csv"), nil
}

// TimetablePDF renders one group's timetable as a landscape PDF table.
func (s *ExportService) TimetablePDF(ctx context.Context, group models.TimetableGroup, value string) ([]byte, string, error) {
	entries, err := s.timetableEntries(ctx, group, value)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("%s Timetable: %s", titleCase(string(group)), value)
	data, err := s.pdf.Render(buildDataset(entries), title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable PDF")
	}
	return data, timetableFilename(group, value, "pdf"), nil
}

// NewBatchID mints an identifier that namespaces one PNG export run.
func (s *ExportService) NewBatchID() string {
	return uuid.NewString()
}

// SaveTimetablePNG decodes a base64 PNG rendered by the client and stores it
// under exports/<batch>/<group folder>/<name>.png. Returns the relative path.
func (s *ExportService) SaveTimetablePNG(batchID string, group models.TimetableGroup, name, encoded string) (string, error) {
	if !group.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown timetable group")
	}
	if strings.TrimSpace(name) == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "timetable name must not be blank")
	}
	if batchID == "" {
		batchID = s.NewBatchID()
	}

	// Data URI prefixes from canvas.toDataURL are tolerated.
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid PNG payload")
	}

	relPath := path.Join(batchID, timetableFolders[group], sanitizeFilename(name)+".png")
	saved, err := s.storage.Save(relPath, payload)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable PNG")
	}
	s.logger.Info("timetable png saved", zap.String("path", saved), zap.String("group", string(group)))
	return saved, nil
}

// timetableEntries loads the snapshot and keeps rows matching the group
// value, ordered by day-independent start time with TBA rows last.
func (s *ExportService) timetableEntries(ctx context.Context, group models.TimetableGroup, value string) ([]models.ScheduleEntry, error) {
	if !group.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown timetable group")
	}
	if strings.TrimSpace(value) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "filter value must not be blank")
	}

	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule for export")
	}

	var matched []models.ScheduleEntry
	for _, entry := range entries {
		if groupValue(entry, group) == value {
			matched = append(matched, entry)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].StartMinutes, matched[j].StartMinutes
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return matched, nil
}

func groupValue(entry models.ScheduleEntry, group models.TimetableGroup) string {
	switch group {
	case models.TimetableBySection:
		return entry.Section
	case models.TimetableByFaculty:
		return entry.Faculty
	case models.TimetableByRoom:
		return entry.Room
	}
	return ""
}

// buildDataset projects entries onto the canonical export columns.
func buildDataset(entries []models.ScheduleEntry) export.Dataset {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		canonical := timeparse.TBA
		if entry.TimeCanonical != nil {
			canonical = *entry.TimeCanonical
		}
		rows = append(rows, []string{
			entry.Program,
			entry.Section,
			entry.CourseCode,
			entry.CourseDescription,
			formatFloat(entry.Units),
			formatFloat(entry.Hours),
			entry.TimeDisplay,
			canonical,
			entry.Days,
			entry.Room,
			entry.Faculty,
		})
	}
	return export.Dataset{Headers: CanonicalHeaders, Rows: rows}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func timetableFilename(group models.TimetableGroup, value, ext string) string {
	return fmt.Sprintf("Timetable_%s_%s.%s", titleCase(string(group)), sanitizeFilename(value), ext)
}

func titleCase(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

// sanitizeFilename replaces characters that break filesystem paths.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "-", "?", "-", "\"", "-", "<", "-", ">", "-", "|", "-")
	return strings.TrimSpace(replacer.Replace(name))
}
