package domain

import "time"

// allTimeStart anchors the open-ended preset.
var allTimeStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)

// DateRange is an inclusive calendar-day interval. Only the date
// components of Start and End are meaningful.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t's calendar date falls inside the range,
// evaluated in t's own location.
func (r DateRange) Contains(t time.Time) bool {
	k := dateKey(t.Date())
	return k >= dateKey(r.Start.Date()) && k <= dateKey(r.End.Date())
}

// Range presets mirror the report periods users pick from.
const (
	PresetToday    = "today"
	PresetThisWeek = "this_week"
	PresetLast30   = "last_30"
	PresetLast90   = "last_90"
	PresetAllTime  = "all_time"
	PresetCustom   = "custom"
)

// ResolvePreset turns a named preset into a concrete range relative to
// now. The week starts on Monday. PresetCustom is not resolvable here;
// callers supply explicit bounds for it.
func ResolvePreset(preset string, now time.Time) (DateRange, bool) {
	switch preset {
	case PresetToday:
		return DateRange{Start: now, End: now}, true
	case PresetThisWeek:
		offset := (int(now.Weekday()) + 6) % 7
		return DateRange{Start: now.AddDate(0, 0, -offset), End: now}, true
	case PresetLast30:
		return DateRange{Start: now.AddDate(0, 0, -30), End: now}, true
	case PresetLast90:
		return DateRange{Start: now.AddDate(0, 0, -90), End: now}, true
	case PresetAllTime:
		return DateRange{Start: allTimeStart, End: now}, true
	}
	return DateRange{}, false
}

func dateKey(year int, month time.Month, day int) int {
	return year*10000 + int(month)*100 + day
}
