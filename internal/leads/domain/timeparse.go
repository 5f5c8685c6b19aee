package domain

import (
	"strings"
	"time"
)

// CRM timestamps come in a handful of shapes. Layouts without a zone
// offset are parsed in the process-local zone; layouts with one keep it.
var (
	offsetLayouts = []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02T15:04:05-0700",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02",
	}
)

// ParseCreatedTime parses a lead creation timestamp. It tries, in order:
// the value with a trailing Z rewritten to an explicit +00:00 offset, the
// compact-offset form, and finally the bare zone-less forms. The second
// return is false when no shape matches; the sentinel and empty values
// never parse.
func ParseCreatedTime(value string) (time.Time, bool) {
	if value == "" || value == ValueNone {
		return time.Time{}, false
	}
	candidate := value
	if strings.Contains(candidate, "Z") {
		candidate = strings.ReplaceAll(candidate, "Z", "+00:00")
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, true
		}
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
