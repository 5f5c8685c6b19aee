package domain

import (
	"testing"
	"time"
)

func TestParseCreatedTime(t *testing.T) {
	cases := []struct {
		name  string
		value string
		ok    bool
		check func(time.Time) bool
	}{
		{
			name: "offset colon", value: "2024-03-05T14:30:00+05:30", ok: true,
			check: func(tm time.Time) bool {
				_, off := tm.Zone()
				return tm.Hour() == 14 && off == 5*3600+1800
			},
		},
		{
			name: "zulu suffix", value: "2024-03-05T14:30:00Z", ok: true,
			check: func(tm time.Time) bool {
				_, off := tm.Zone()
				return off == 0 && tm.Hour() == 14
			},
		},
		{
			name: "compact offset", value: "2024-03-05T14:30:00+0530", ok: true,
			check: func(tm time.Time) bool {
				_, off := tm.Zone()
				return off == 5*3600+1800
			},
		},
		{
			name: "naive datetime", value: "2024-03-05T14:30:00", ok: true,
			check: func(tm time.Time) bool { return tm.Location() == time.Local && tm.Hour() == 14 },
		},
		{
			name: "bare date", value: "2024-03-05", ok: true,
			check: func(tm time.Time) bool {
				y, m, d := tm.Date()
				return y == 2024 && m == time.March && d == 5
			},
		},
		{
			name: "fractional seconds", value: "2024-03-05T14:30:00.123456+05:30", ok: true,
			check: func(tm time.Time) bool { return tm.Nanosecond() == 123456000 },
		},
		{name: "garbage", value: "not-a-date", ok: false},
		{name: "sentinel", value: ValueNone, ok: false},
		{name: "empty", value: "", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCreatedTime(tc.value)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && tc.check != nil && !tc.check(got) {
				t.Errorf("parsed %q as %v, component check failed", tc.value, got)
			}
		})
	}
}
