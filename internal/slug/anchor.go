// Package slug derives canonical event keys from market slugs.
//
// Markets belonging to the same real-world event usually share a date-stamped
// base slug and differ only by an outcome or time-of-day suffix appended
// after the date. Trimming after the rightmost date span merges those
// variants without over-merging slugs that merely contain an earlier
// date-looking fragment.
package slug

import (
	"regexp"
	"strings"
)

var (
	compactDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearRe        = regexp.MustCompile(`^\d{4}$`)
	monthRe       = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	dayRe         = regexp.MustCompile(`^(0[1-9]|[12]\d|3[01])$`)
)

// lastDateSpan returns the token span [start, end] of the rightmost date in
// parts: either a single compact YYYY-MM-DD token or a YYYY, MM, DD token
// triple. Day tokens 01-31 pass for every month; calendar validity per month
// is deliberately not checked.
func lastDateSpan(parts []string) (start, end int, found bool) {
	for i, part := range parts {
		if compactDateRe.MatchString(part) {
			start, end, found = i, i, true
		}
		if i+2 < len(parts) && yearRe.MatchString(parts[i]) &&
			monthRe.MatchString(parts[i+1]) && dayRe.MatchString(parts[i+2]) {
			start, end, found = i, i+2, true
		}
	}
	return start, end, found
}

// BaseKey trims everything after the last date span in a hyphenated slug.
// Slugs with no recognizable date come back unchanged; empty input yields
// empty output.
func BaseKey(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "-")
	if _, end, ok := lastDateSpan(parts); ok {
		return strings.Join(parts[:end+1], "-")
	}
	return s
}
