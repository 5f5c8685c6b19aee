package domain

import "time"

// Window names a recency policy for flagging leads as new.
type Window string

const (
	WindowToday             Window = "today"
	WindowLast24            Window = "last_24"
	WindowYesterdayAfter6PM Window = "yesterday_after_6pm"
	WindowCustom            Window = "custom"
)

// ParseWindow maps a request string onto a Window.
func ParseWindow(value string) (Window, bool) {
	switch Window(value) {
	case WindowToday, WindowLast24, WindowYesterdayAfter6PM, WindowCustom:
		return Window(value), true
	}
	return "", false
}

// IsNew reports whether a lead created at the given raw timestamp counts
// as new under the window, relative to now. Unparseable timestamps are
// never new: a lead must prove its recency to be flagged. The custom
// range only applies to WindowCustom and is ignored otherwise.
func IsNew(createdRaw string, w Window, now time.Time, custom DateRange) bool {
	created, ok := ParseCreatedTime(createdRaw)
	if !ok {
		return false
	}
	ref := now.In(created.Location())
	switch w {
	case WindowToday:
		return sameDate(created, ref)
	case WindowLast24:
		return !created.Before(ref.Add(-24 * time.Hour))
	case WindowYesterdayAfter6PM:
		todayStart := startOfDay(ref)
		windowStart := todayStart.AddDate(0, 0, -1).Add(18 * time.Hour)
		return !created.Before(windowStart) && created.Before(todayStart)
	case WindowCustom:
		return custom.Contains(created)
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
