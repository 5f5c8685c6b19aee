package domain

import (
	"testing"
	"time"
)

func TestIsNew(t *testing.T) {
	now := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.Local)
	stamp := func(tm time.Time) string { return tm.Format("2006-01-02T15:04:05") }

	cases := []struct {
		name    string
		created string
		window  Window
		want    bool
	}{
		{"today same date", stamp(now.Add(-2 * time.Hour)), WindowToday, true},
		{"today yesterday", stamp(now.AddDate(0, 0, -1)), WindowToday, false},
		{"last_24 within", stamp(now.Add(-23 * time.Hour)), WindowLast24, true},
		{"last_24 exact boundary", stamp(now.Add(-24 * time.Hour)), WindowLast24, true},
		{"last_24 outside", stamp(now.Add(-25 * time.Hour)), WindowLast24, false},
		{"evening window inside", "2024-03-06T18:00:00", WindowYesterdayAfter6PM, true},
		{"evening window late", "2024-03-06T23:59:59", WindowYesterdayAfter6PM, true},
		{"evening window before six", "2024-03-06T17:59:59", WindowYesterdayAfter6PM, false},
		{"evening window today", "2024-03-07T00:00:00", WindowYesterdayAfter6PM, false},
		{"unparseable never new", "not-a-date", WindowToday, false},
		{"sentinel never new", ValueNone, WindowLast24, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNew(tc.created, tc.window, now, DateRange{}); got != tc.want {
				t.Errorf("IsNew(%q, %q) = %v, want %v", tc.created, tc.window, got, tc.want)
			}
		})
	}
}

func TestIsNewCustomRange(t *testing.T) {
	now := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.Local)
	r := DateRange{Start: day(2024, time.March, 1), End: day(2024, time.March, 3)}

	if !IsNew("2024-03-02T09:00:00", WindowCustom, now, r) {
		t.Error("inside custom range should be new")
	}
	if IsNew("2024-03-04T09:00:00", WindowCustom, now, r) {
		t.Error("outside custom range should not be new")
	}
	if IsNew("2024-03-02T09:00:00", WindowCustom, now, DateRange{}) {
		t.Error("zero custom range should flag nothing recent")
	}
}
