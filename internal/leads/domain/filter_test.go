package domain

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestFilterByDateRangeInclusiveBounds(t *testing.T) {
	leads := []Lead{
		{ID: "start", CreatedTime: "2024-01-01T00:00:00"},
		{ID: "mid", CreatedTime: "2024-01-07T12:00:00"},
		{ID: "end", CreatedTime: "2024-01-15T23:59:59"},
		{ID: "before", CreatedTime: "2023-12-31T23:59:59"},
		{ID: "after", CreatedTime: "2024-01-16T00:00:00"},
		{ID: "broken", CreatedTime: "not-a-date"},
	}
	got := FilterByDateRange(leads, DateRange{Start: day(2024, time.January, 1), End: day(2024, time.January, 15)})
	want := []string{"start", "mid", "end", "broken"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestFilterByDateRangeKeepsSentinelTimestamps(t *testing.T) {
	leads := []Lead{{ID: "x", CreatedTime: ValueNone}}
	got := FilterByDateRange(leads, DateRange{Start: day(2024, time.June, 1), End: day(2024, time.June, 2)})
	if len(got) != 1 {
		t.Fatalf("sentinel timestamp was filtered out")
	}
}

func TestFiltersApply(t *testing.T) {
	leads := []Lead{
		{ID: "1", Owner: "Ravi", Status: "New", Source: "Facebook"},
		{ID: "2", Owner: "Ravi", Status: "Contacted", Source: "Google"},
		{ID: "3", Owner: "Priya", Status: "New", Source: "Facebook"},
		{ID: "4", Owner: "Priya", Status: "Lost", Source: "Referral"},
	}
	cases := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"empty passes all", Filters{}, []string{"1", "2", "3", "4"}},
		{"single dimension", Filters{DimensionOwner: {"Ravi"}}, []string{"1", "2"}},
		{"or within dimension", Filters{DimensionStatus: {"New", "Lost"}}, []string{"1", "3", "4"}},
		{"and across dimensions", Filters{DimensionOwner: {"Priya"}, DimensionSource: {"Facebook"}}, []string{"3"}},
		{"empty values unconstrained", Filters{DimensionOwner: nil, DimensionStatus: {"New"}}, []string{"1", "3"}},
		{"no match", Filters{DimensionOwner: {"Nobody"}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filters.Apply(leads)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestResolvePreset(t *testing.T) {
	now := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.Local) // a Thursday

	r, ok := ResolvePreset(PresetThisWeek, now)
	if !ok {
		t.Fatal("this_week did not resolve")
	}
	if y, m, d := r.Start.Date(); y != 2024 || m != time.March || d != 4 {
		t.Errorf("week start = %v, want Monday 2024-03-04", r.Start)
	}

	r, ok = ResolvePreset(PresetAllTime, now)
	if !ok || !r.Contains(time.Date(2020, time.January, 1, 12, 0, 0, 0, time.Local)) {
		t.Error("all_time should span back to 2020-01-01")
	}

	if _, ok := ResolvePreset(PresetCustom, now); ok {
		t.Error("custom must not resolve without explicit bounds")
	}
	if _, ok := ResolvePreset("fortnight", now); ok {
		t.Error("unknown preset resolved")
	}
}
