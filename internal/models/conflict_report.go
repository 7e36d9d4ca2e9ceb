package models

import "github.com/noah-isme/lpu-scheduler-api/internal/conflict"

// ConflictSummary groups directional conflict records by entry and type for
// user-facing reports.
type ConflictSummary struct {
	EntryID       int64         `json:"entry_id"`
	ConflictsWith []int64       `json:"conflicts_with"`
	Type          conflict.Type `json:"conflict_type"`
}

// ConflictReport is the payload returned by the conflicts endpoint.
type ConflictReport struct {
	Conflicts []ConflictSummary `json:"conflicts"`
}

// CandidateConflict describes a stored entry a not-yet-saved candidate would
// collide with.
type CandidateConflict struct {
	Type  conflict.Type `json:"conflict_type"`
	Entry ScheduleEntry `json:"conflicting_entry"`
}
