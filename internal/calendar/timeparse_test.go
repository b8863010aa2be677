package calendar

import (
	"testing"
	"time"
)

func TestParseClockMinutes(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"3:30 PM", 15*60 + 30},
		{"03:30pm", 15*60 + 30},
		{"11:00 am", 11 * 60},
		{"12:00 AM", 0},
		{"12:00 PM", 12 * 60},
		{"12:15 am", 15},
		{"15:30", 15*60 + 30},
		{"0:05", 5},
		{"23:59", 23*60 + 59},
		{" 9:00 AM ", 9 * 60},
		// мусор уходит в сентинель
		{"", UnparsedTime},
		{"после обеда", UnparsedTime},
		{"25:00", UnparsedTime},
		{"13:00 PM", UnparsedTime},
		{"0:00 AM", UnparsedTime},
		{"10:61", UnparsedTime},
		{"10", UnparsedTime},
		{"10:1:2", UnparsedTime},
	}

	for _, tc := range cases {
		got := ParseClockMinutes(tc.raw)
		if got != tc.want {
			t.Errorf("ParseClockMinutes(%q) = %d, ожидали %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Weekday
		ok   bool
	}{
		{"Monday", time.Monday, true},
		{"monday", time.Monday, true},
		{"MON", time.Monday, true},
		{"tues", time.Tuesday, true},
		{"  Friday ", time.Friday, true},
		{"sun", time.Sunday, true},
		{"Понедельник", time.Sunday, false},
		{"", time.Sunday, false},
		{"Mo", time.Sunday, false},
	}

	for _, tc := range cases {
		got, ok := ParseWeekday(tc.raw)
		if ok != tc.ok {
			t.Errorf("ParseWeekday(%q): ok = %v, ожидали %v", tc.raw, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseWeekday(%q) = %v, ожидали %v", tc.raw, got, tc.want)
		}
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	d := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)
	key := DateKey(d)
	if key != "2026-08-12" {
		t.Fatalf("DateKey = %q, ожидали 2026-08-12", key)
	}
	back, err := ParseDateKey(key)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Errorf("ParseDateKey вернул %v, ожидали %v", back, d)
	}
}
