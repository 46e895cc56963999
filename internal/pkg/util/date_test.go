package util

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	loc := time.UTC

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			// 2024-03-06 是周三，本周起点为 03-03 周日
			name: "midweek",
			in:   time.Date(2024, 3, 6, 15, 30, 0, 0, loc),
			want: time.Date(2024, 3, 3, 0, 0, 0, 0, loc),
		},
		{
			// 周日当天即窗口起点
			name: "sunday itself",
			in:   time.Date(2024, 3, 3, 23, 59, 59, 0, loc),
			want: time.Date(2024, 3, 3, 0, 0, 0, 0, loc),
		},
		{
			// 跨月：03-01 是周五，窗口起点落在 02-25
			name: "crosses month boundary",
			in:   time.Date(2024, 3, 1, 0, 0, 1, 0, loc),
			want: time.Date(2024, 2, 25, 0, 0, 0, 0, loc),
		},
	}

	for _, c := range cases {
		if got := WeekStart(c.in, loc); !got.Equal(c.want) {
			t.Errorf("%s: WeekStart = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestMonthStart(t *testing.T) {
	loc := time.UTC
	in := time.Date(2024, 2, 29, 10, 0, 0, 0, loc)
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)
	if got := MonthStart(in, loc); !got.Equal(want) {
		t.Errorf("MonthStart = %v, want %v", got, want)
	}
}

func TestDateKeyRespectsLocation(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// UTC 18:00 在上海已是次日
	in := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	if got := DateKey(in, time.UTC); got != "2024-03-01" {
		t.Errorf("DateKey UTC = %s, want 2024-03-01", got)
	}
	if got := DateKey(in, shanghai); got != "2024-03-02" {
		t.Errorf("DateKey Asia/Shanghai = %s, want 2024-03-02", got)
	}
}

func TestShiftDateKey(t *testing.T) {
	in := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := ShiftDateKey(in, -1, time.UTC); got != "2024-02-29" {
		t.Errorf("ShiftDateKey(-1) = %s, want 2024-02-29", got)
	}
	if got := ShiftDateKey(in, -2, time.UTC); got != "2024-02-28" {
		t.Errorf("ShiftDateKey(-2) = %s, want 2024-02-28", got)
	}
}
