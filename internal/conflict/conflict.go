// Package conflict detects double-booked rooms and faculty across schedule
// entries. Detection runs over an immutable snapshot supplied by the caller;
// the package performs no I/O and holds no state.
package conflict

import (
	"strings"

	"github.com/noah-isme/lpu-scheduler-api/internal/timeparse"
)

// Type classifies what resource a conflicting pair shares.
type Type string

const (
	TypeRoom    Type = "room"
	TypeFaculty Type = "faculty"
)

// Entry is the snapshot view of a schedule entry consumed by the detector.
// StartMinutes/EndMinutes are nil for TBA entries, which never conflict.
type Entry struct {
	ID           int64
	TimeDisplay  string
	Days         string
	Room         string
	Faculty      string
	StartMinutes *int
	EndMinutes   *int
}

// Config tunes which pairs are reported. Zero value reports everything.
type Config struct {
	IgnoreFaculty     bool
	IgnoreRoom        bool
	IgnoreTBA         bool
	IgnoreFacultyList []string
	IgnoreRoomList    []string
	FacultyContains   bool
	RoomContains      bool
}

// Record reports one directional conflict. A genuine clash between A and B
// produces a record keyed at A and another keyed at B; callers that need an
// unordered report group by (EntryID, Type) themselves.
type Record struct {
	EntryID       int64 `json:"entry_id"`
	ConflictsWith int64 `json:"conflicts_with"`
	Type          Type  `json:"conflict_type"`
}

// Match pairs a conflict type with the stored entry a candidate collides with.
type Match struct {
	Type  Type
	Entry Entry
}

// Find runs the all-pairs scan and returns every directional conflict record.
func Find(entries []Entry, cfg Config) []Record {
	var records []Record
	for i := range entries {
		entry := &entries[i]
		if skipEntry(entry, cfg) {
			continue
		}
		entryDays := timeparse.NormalizeDays(entry.Days)
		for j := range entries {
			other := &entries[j]
			if entry.ID == other.ID {
				continue
			}
			for _, match := range compare(entry, entryDays, other, cfg) {
				records = append(records, Record{
					EntryID:       entry.ID,
					ConflictsWith: match.Entry.ID,
					Type:          match.Type,
				})
			}
		}
	}
	return records
}

// ForEntry filters Find output down to records keyed at the given entry.
func ForEntry(entries []Entry, cfg Config, id int64) []Record {
	var records []Record
	for _, record := range Find(entries, cfg) {
		if record.EntryID == id {
			records = append(records, record)
		}
	}
	return records
}

// ForCandidate evaluates a not-yet-stored entry against the snapshot in the
// candidate-to-other direction only. excludeID removes the candidate's prior
// self when validating an update; pass 0 for new entries.
func ForCandidate(entries []Entry, cfg Config, excludeID int64, candidate Entry) []Match {
	if skipEntry(&candidate, cfg) {
		return nil
	}
	candidateDays := timeparse.NormalizeDays(candidate.Days)
	var matches []Match
	for i := range entries {
		other := &entries[i]
		if other.ID == excludeID || other.ID == candidate.ID {
			continue
		}
		matches = append(matches, compare(&candidate, candidateDays, other, cfg)...)
	}
	return matches
}

// compare applies the pairwise rules in one direction and returns at most one
// room match and one faculty match.
func compare(entry *Entry, entryDays []string, other *Entry, cfg Config) []Match {
	if skipEntry(other, cfg) {
		return nil
	}
	if !daysIntersect(entryDays, timeparse.NormalizeDays(other.Days)) {
		return nil
	}
	if !timeparse.Overlap(*entry.StartMinutes, *entry.EndMinutes, *other.StartMinutes, *other.EndMinutes) {
		return nil
	}

	var matches []Match
	if !cfg.IgnoreRoom {
		ignored := matchesIgnore(entry.Room, cfg.IgnoreRoomList, cfg.RoomContains) ||
			matchesIgnore(other.Room, cfg.IgnoreRoomList, cfg.RoomContains)
		if !ignored && entry.Room == other.Room {
			matches = append(matches, Match{Type: TypeRoom, Entry: *other})
		}
	}
	if !cfg.IgnoreFaculty {
		ignored := matchesIgnore(entry.Faculty, cfg.IgnoreFacultyList, cfg.FacultyContains) ||
			matchesIgnore(other.Faculty, cfg.IgnoreFacultyList, cfg.FacultyContains)
		if !ignored && entry.Faculty == other.Faculty {
			matches = append(matches, Match{Type: TypeFaculty, Entry: *other})
		}
	}
	return matches
}

// skipEntry applies the TBA exclusion rules. Entries without resolved minutes
// never conflict; with IgnoreTBA set the raw display fields are also checked
// so partially-TBA rows carrying display text are excluded too.
func skipEntry(entry *Entry, cfg Config) bool {
	if entry.StartMinutes == nil || entry.EndMinutes == nil {
		return true
	}
	if cfg.IgnoreTBA && (timeparse.IsTBA(entry.TimeDisplay) || timeparse.IsTBA(entry.Days)) {
		return true
	}
	return false
}

func daysIntersect(a, b []string) bool {
	for _, dayA := range a {
		for _, dayB := range b {
			if dayA == dayB {
				return true
			}
		}
	}
	return false
}

// matchesIgnore reports whether the value hits any ignore-list item, either
// exactly or as a case-insensitive substring when contains is set.
func matchesIgnore(value string, list []string, contains bool) bool {
	target := strings.ToLower(strings.TrimSpace(value))
	for _, item := range list {
		candidate := strings.ToLower(strings.TrimSpace(item))
		if candidate == "" {
			continue
		}
		if contains && strings.Contains(target, candidate) {
			return true
		}
		if !contains && candidate == target {
			return true
		}
	}
	return false
}
