// Package timeparse normalizes human-entered LPU standard time ranges and
// free-form day lists into canonical minute offsets and day tokens. All
// functions are pure and safe for concurrent use.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Canonical weekday tokens in display order.
var CanonicalDays = []string{"M", "T", "W", "Th", "F", "Sa", "Su"}

var canonicalSet = map[string]struct{}{
	"M": {}, "T": {}, "W": {}, "Th": {}, "F": {}, "Sa": {}, "Su": {},
}

// dayAliases maps lowercase single-letter, abbreviated and full-name forms to
// canonical tokens. Bare "s" is intentionally absent: it is ambiguous between
// Saturday and Sunday.
var dayAliases = map[string]string{
	"m": "M", "mon": "M", "monday": "M",
	"t": "T", "tu": "T", "tue": "T", "tues": "T", "tuesday": "T",
	"w": "W", "wed": "W", "wednesday": "W",
	"th": "Th", "thu": "Th", "thur": "Th", "thurs": "Th", "thursday": "Th",
	"f": "F", "fri": "F", "friday": "F",
	"sa": "Sa", "sat": "Sa", "saturday": "Sa",
	"su": "Su", "sun": "Su", "sunday": "Su",
}

// compactAliases maps single characters inside run-together strings like
// "MWF". Digraphs (th, sa, su) are consumed before this table applies.
var compactAliases = map[string]string{
	"m": "M", "t": "T", "w": "W", "f": "F",
}

// InvalidTimeError reports a standard time string that could not be parsed.
type InvalidTimeError struct {
	Text string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid standard time %q: expected format like 10:00a-12:00p", e.Text)
}

// InvalidDaysError reports a day list with no recognizable weekday.
type InvalidDaysError struct {
	Text string
}

func (e *InvalidDaysError) Error() string {
	return fmt.Sprintf("invalid days %q: expected tokens like M,W,F", e.Text)
}

var standardTimeRe = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?\s*([AaPp])\s*-\s*(\d{1,2})(?::(\d{2}))?\s*([AaPp])\s*$`)

var canonicalRangeRe = regexp.MustCompile(`^(\d{2}):(\d{2})-(\d{2}):(\d{2})$`)

// ParseStandardTime parses a 12-hour range such as "10:00a-12:00p" and
// returns the display string, the recomputed 24-hour "HH:MM-HH:MM" form and
// the start/end offsets in minutes past midnight. The range must be strictly
// increasing; cross-midnight ranges are rejected.
func ParseStandardTime(text string) (display, canonical24 string, start, end int, err error) {
	match := standardTimeRe.FindStringSubmatch(text)
	if match == nil {
		return "", "", 0, 0, &InvalidTimeError{Text: text}
	}

	start, err = toMinutes(match[1], match[2], match[3])
	if err != nil {
		return "", "", 0, 0, &InvalidTimeError{Text: text}
	}
	end, err = toMinutes(match[4], match[5], match[6])
	if err != nil {
		return "", "", 0, 0, &InvalidTimeError{Text: text}
	}
	if start >= end {
		return "", "", 0, 0, &InvalidTimeError{Text: text}
	}

	canonical24 = fmt.Sprintf("%02d:%02d-%02d:%02d", start/60, start%60, end/60, end%60)
	return strings.TrimSpace(text), canonical24, start, end, nil
}

// ParseCanonicalRange parses the 24-hour "HH:MM-HH:MM" form produced by
// ParseStandardTime back into minute offsets.
func ParseCanonicalRange(text string) (start, end int, err error) {
	match := canonicalRangeRe.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0, 0, &InvalidTimeError{Text: text}
	}
	startH, _ := strconv.Atoi(match[1])
	startM, _ := strconv.Atoi(match[2])
	endH, _ := strconv.Atoi(match[3])
	endM, _ := strconv.Atoi(match[4])
	if startH > 23 || endH > 23 || startM > 59 || endM > 59 {
		return 0, 0, &InvalidTimeError{Text: text}
	}
	start = startH*60 + startM
	end = endH*60 + endM
	if start >= end {
		return 0, 0, &InvalidTimeError{Text: text}
	}
	return start, end, nil
}

func toMinutes(hourText, minuteText, meridiem string) (int, error) {
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("hour out of range: %s", hourText)
	}
	minute := 0
	if minuteText != "" {
		minute, err = strconv.Atoi(minuteText)
		if err != nil || minute > 59 {
			return 0, fmt.Errorf("minute out of range: %s", minuteText)
		}
	}
	switch strings.ToLower(meridiem) {
	case "a":
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour != 12 {
			hour += 12
		}
	}
	return hour*60 + minute, nil
}

// NormalizeDays converts a free-form day list into canonical tokens in
// first-seen order with duplicates removed. Both delimited forms
// ("M,W,F", "Mon / Wed") and compact run-together forms ("MWF", "TThS") are
// accepted. Unrecognized tokens are dropped; an empty result signals that
// nothing was recognized and callers should treat it as invalid input.
func NormalizeDays(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '/' || r == ' '
	})

	var raw []string
	if len(fields) == 1 && len(fields[0]) > 2 && isAlpha(fields[0]) {
		raw = scanCompact(fields[0])
	} else {
		for _, field := range fields {
			if token, ok := dayAliases[strings.ToLower(field)]; ok {
				raw = append(raw, token)
			}
		}
	}

	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, token := range raw {
		if _, canonical := canonicalSet[token]; !canonical {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		result = append(result, token)
	}
	return result
}

// scanCompact tokenizes run-together day strings left to right with a single
// two-character lookahead for the th/sa/su digraphs.
func scanCompact(text string) []string {
	lowered := strings.ToLower(text)
	var tokens []string
	for i := 0; i < len(lowered); {
		if i+2 <= len(lowered) {
			switch lowered[i : i+2] {
			case "th", "sa", "su":
				tokens = append(tokens, dayAliases[lowered[i:i+2]])
				i += 2
				continue
			}
		}
		single := lowered[i : i+1]
		if token, ok := compactAliases[single]; ok {
			tokens = append(tokens, token)
		} else {
			tokens = append(tokens, text[i:i+1])
		}
		i++
	}
	return tokens
}

func isAlpha(text string) bool {
	for _, r := range text {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(text) > 0
}

// IsTBA reports whether a raw field is "to be announced": empty, whitespace
// only or the literal tba in any casing.
func IsTBA(text string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	return cleaned == "" || cleaned == "tba"
}

// Overlap reports whether two half-open minute intervals intersect. Touching
// endpoints do not count.
func Overlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// TBA is the stored marker for entries without a resolved time or day.
const TBA = "TBA"

// Normalized is the result of running a raw time/day pair through Normalize.
// Either TBA is true and the minute fields are meaningless, or TBA is false
// and every field is populated.
type Normalized struct {
	TimeDisplay   string
	TimeCanonical string
	Days          string
	StartMinutes  int
	EndMinutes    int
	TBA           bool
}

// Normalize applies whole-entry TBA detection and otherwise parses both the
// time range and the day list. When either raw field is TBA-equivalent the
// entry as a whole is forced to TBA; partially normalized entries never
// escape this function.
func Normalize(timeText, daysText string) (Normalized, error) {
	if IsTBA(timeText) || IsTBA(daysText) {
		return Normalized{TimeDisplay: TBA, Days: TBA, TBA: true}, nil
	}

	display, canonical24, start, end, err := ParseStandardTime(timeText)
	if err != nil {
		return Normalized{}, err
	}

	days := NormalizeDays(daysText)
	if len(days) == 0 {
		return Normalized{}, &InvalidDaysError{Text: daysText}
	}

	return Normalized{
		TimeDisplay:   display,
		TimeCanonical: canonical24,
		Days:          strings.Join(days, ","),
		StartMinutes:  start,
		EndMinutes:    end,
	}, nil
}
