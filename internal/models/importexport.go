package models

// ImportRowError records why a single CSV row was rejected during import.
type ImportRowError struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

// ImportResult summarises a CSV import run. Preview runs report the same
// counters without writing anything.
type ImportResult struct {
	RowsTotal      int              `json:"rows_total"`
	RowsImported   int              `json:"rows_imported"`
	RowsSkipped    int              `json:"rows_skipped"`
	MissingColumns []string         `json:"missing_columns"`
	Errors         []ImportRowError `json:"errors"`
}

// TimetableGroup selects the grouping dimension for timetable exports.
type TimetableGroup string

const (
	TimetableBySection TimetableGroup = "section"
	TimetableByFaculty TimetableGroup = "faculty"
	TimetableByRoom    TimetableGroup = "room"
)

// Valid reports whether the group is one of the supported dimensions.
func (g TimetableGroup) Valid() bool {
	switch g {
	case TimetableBySection, TimetableByFaculty, TimetableByRoom:
		return true
	}
	return false
}
