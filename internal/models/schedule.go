package models

import "time"

// ScheduleEntry is a weekly class-schedule row. An entry is either fully
// timed (TimeCanonical, StartMinutes, EndMinutes all set and Days holding
// canonical tokens) or fully TBA (all three nil and both display fields set
// to the literal TBA). Partial states are never persisted.
type ScheduleEntry struct {
	ID                int64     `db:"id" json:"id"`
	Program           string    `db:"program" json:"program"`
	Section           string    `db:"section" json:"section"`
	CourseCode        string    `db:"course_code" json:"course_code"`
	CourseDescription string    `db:"course_description" json:"course_description"`
	Units             float64   `db:"units" json:"units"`
	Hours             float64   `db:"hours" json:"hours"`
	TimeDisplay       string    `db:"time_display" json:"time_display"`
	TimeCanonical     *string   `db:"time_canonical" json:"time_canonical,omitempty"`
	Days              string    `db:"days" json:"days"`
	Room              string    `db:"room" json:"room"`
	Faculty           string    `db:"faculty" json:"faculty"`
	StartMinutes      *int      `db:"start_minutes" json:"start_minutes,omitempty"`
	EndMinutes        *int      `db:"end_minutes" json:"end_minutes,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleEntryFilter describes query params for listing schedule entries.
type ScheduleEntryFilter struct {
	Section  string
	Faculty  string
	Room     string
	Page     int
	PageSize int
}
