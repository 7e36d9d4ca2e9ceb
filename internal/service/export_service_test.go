package service

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lpu-scheduler-api/internal/models"
	"github.com/noah-isme/lpu-scheduler-api/pkg/export"
	"github.com/noah-isme/lpu-scheduler-api/pkg/storage"
)

func newExportService(t *testing.T, repo *scheduleRepoStub) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(repo, export.NewCSVExporter(), export.NewPDFExporter(), store, nil)
}

func seedEntry(repo *scheduleRepoStub, entry models.ScheduleEntry) {
	entry.ID = repo.nextID
	repo.entries[entry.ID] = entry
	repo.nextID++
}

func TestExportServiceExportCSV(t *testing.T) {
	repo := newScheduleRepoStub()
	canonical := "10:00-12:00"
	seedEntry(repo, models.ScheduleEntry{
		Program:           "BSIT",
		Section:           "BSIT-3A",
		CourseCode:        "CS101",
		CourseDescription: "Intro to Computing",
		Units:             3,
		Hours:             3.5,
		TimeDisplay:       "10:00a-12:00p",
		TimeCanonical:     &canonical,
		Days:              "M,W,F",
		Room:              "Room 401",
		Faculty:           "Cruz, J.",
		StartMinutes:      minutes(600),
		EndMinutes:        minutes(720),
	})
	seedEntry(repo, models.ScheduleEntry{
		Program:     "BSIT",
		Section:     "BSIT-3A",
		CourseCode:  "CS199",
		TimeDisplay: "TBA",
		Days:        "TBA",
	})

	svc := newExportService(t, repo)
	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Program,Section,Course Code,Course Description,Units,# of Hours,Time (LPU Std),Time (24 Hrs),Days,Room,Faculty", lines[0])
	assert.Contains(t, lines[1], "10:00a-12:00p,10:00-12:00,\"M,W,F\"")
	assert.Contains(t, lines[1], "3.5")
	// TBA rows carry TBA in the canonical column too.
	assert.Contains(t, lines[2], "TBA,TBA,TBA")
}

func TestExportServiceTimetableFiltersAndSorts(t *testing.T) {
	repo := newScheduleRepoStub()
	seedEntry(repo, timedEntry(0, "R1", "A", "M", 780, 840))
	seedEntry(repo, timedEntry(0, "R1", "A", "M", 600, 720))
	seedEntry(repo, timedEntry(0, "R2", "B", "M", 540, 600))

	svc := newExportService(t, repo)
	data, filename, err := svc.TimetableCSV(context.Background(), models.TimetableByFaculty, "A")
	require.NoError(t, err)
	assert.Equal(t, "Timetable_Faculty_A.csv", filename)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus the two faculty-A rows, earliest start first.
	require.Len(t, lines, 3)
	rowOrder := strings.Index(string(data), "10:00a-12:00p")
	assert.GreaterOrEqual(t, rowOrder, 0)
}

func TestExportServiceTimetablePDF(t *testing.T) {
	repo := newScheduleRepoStub()
	seedEntry(repo, timedEntry(0, "R1", "A", "M", 600, 720))

	svc := newExportService(t, repo)
	data, filename, err := svc.TimetablePDF(context.Background(), models.TimetableByRoom, "R1")
	require.NoError(t, err)
	assert.Equal(t, "Timetable_Room_R1.pdf", filename)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExportServiceTimetableRejectsUnknownGroup(t *testing.T) {
	svc := newExportService(t, newScheduleRepoStub())
	_, _, err := svc.TimetableCSV(context.Background(), models.TimetableGroup("programs"), "BSIT")
	require.Error(t, err)
}

func TestExportServiceSaveTimetablePNG(t *testing.T) {
	repo := newScheduleRepoStub()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	svc := NewExportService(repo, export.NewCSVExporter(), export.NewPDFExporter(), store, nil)

	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	batchID := svc.NewBatchID()

	relPath, err := svc.SaveTimetablePNG(batchID, models.TimetableBySection, "BSIT-3A", "data:image/png;base64,"+payload)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(batchID, "Timetables_Section", "BSIT-3A.png"), relPath)

	written, err := os.ReadFile(filepath.Join(dir, relPath))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), written)
}

func TestExportServiceSaveTimetablePNGRejectsBadPayload(t *testing.T) {
	svc := newExportService(t, newScheduleRepoStub())
	_, err := svc.SaveTimetablePNG("", models.TimetableByRoom, "R1", "not base64 ???")
	require.Error(t, err)
}
