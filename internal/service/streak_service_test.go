package service

import (
	"Mythica/internal/pkg/mongo"
	"testing"
	"time"
)

var streakNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestAdvanceStreakTransitions(t *testing.T) {
	cases := []struct {
		name        string
		lastDateKey string
		streak      int
		longest     int
		graceUsed   bool

		wantChanged bool
		wantStreak  int
		wantLongest int
		wantGrace   bool
	}{
		{
			name:        "first contribution ever",
			wantChanged: true, wantStreak: 1, wantLongest: 1,
		},
		{
			// 同日重复贡献不推进也不写回
			name:        "same day no-op",
			lastDateKey: "2024-03-10", streak: 5, longest: 8,
			wantChanged: false, wantStreak: 5, wantLongest: 8,
		},
		{
			name:        "consecutive day extends",
			lastDateKey: "2024-03-09", streak: 5, longest: 8,
			wantChanged: true, wantStreak: 6, wantLongest: 8,
		},
		{
			// 顺延会清掉之前消耗的宽限
			name:        "consecutive day restores grace",
			lastDateKey: "2024-03-09", streak: 5, longest: 8, graceUsed: true,
			wantChanged: true, wantStreak: 6, wantLongest: 8, wantGrace: false,
		},
		{
			name:        "one day gap consumes grace",
			lastDateKey: "2024-03-08", streak: 5, longest: 8,
			wantChanged: true, wantStreak: 6, wantLongest: 8, wantGrace: true,
		},
		{
			// 宽限已用，再隔一天就中断
			name:        "one day gap with grace spent resets",
			lastDateKey: "2024-03-08", streak: 5, longest: 8, graceUsed: true,
			wantChanged: true, wantStreak: 1, wantLongest: 8, wantGrace: false,
		},
		{
			name:        "two day gap resets even with grace",
			lastDateKey: "2024-03-07", streak: 5, longest: 8,
			wantChanged: true, wantStreak: 1, wantLongest: 8, wantGrace: false,
		},
		{
			// 宽限已消耗时隔两天同样中断，且重置会清掉宽限标记
			name:        "two day gap with grace spent resets",
			lastDateKey: "2024-03-07", streak: 5, longest: 8, graceUsed: true,
			wantChanged: true, wantStreak: 1, wantLongest: 8, wantGrace: false,
		},
		{
			// 中断不回退历史最长
			name:        "reset keeps longest",
			lastDateKey: "2024-02-01", streak: 30, longest: 30,
			wantChanged: true, wantStreak: 1, wantLongest: 30,
		},
		{
			name:        "extends past longest",
			lastDateKey: "2024-03-09", streak: 8, longest: 8,
			wantChanged: true, wantStreak: 9, wantLongest: 9,
		},
	}

	for _, c := range cases {
		stats := &mongo.UserStats{
			UserID:                  1,
			CurrentStreak:           c.streak,
			LongestStreak:           c.longest,
			LastContributionDateKey: c.lastDateKey,
			StreakGraceUsed:         c.graceUsed,
		}

		changed := advanceStreak(stats, streakNow, time.UTC)

		if changed != c.wantChanged {
			t.Errorf("%s: changed = %v, want %v", c.name, changed, c.wantChanged)
		}
		if stats.CurrentStreak != c.wantStreak {
			t.Errorf("%s: CurrentStreak = %d, want %d", c.name, stats.CurrentStreak, c.wantStreak)
		}
		if stats.LongestStreak != c.wantLongest {
			t.Errorf("%s: LongestStreak = %d, want %d", c.name, stats.LongestStreak, c.wantLongest)
		}
		if changed && stats.StreakGraceUsed != c.wantGrace {
			t.Errorf("%s: StreakGraceUsed = %v, want %v", c.name, stats.StreakGraceUsed, c.wantGrace)
		}
		if changed && stats.LastContributionDateKey != "2024-03-10" {
			t.Errorf("%s: LastContributionDateKey = %s, want 2024-03-10", c.name, stats.LastContributionDateKey)
		}
	}
}

func TestAdvanceStreakAcrossMonthBoundary(t *testing.T) {
	// 3 月 1 日贡献，2 月 29 日是昨天
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	stats := &mongo.UserStats{
		UserID:                  1,
		CurrentStreak:           3,
		LongestStreak:           3,
		LastContributionDateKey: "2024-02-29",
	}

	if !advanceStreak(stats, now, time.UTC) {
		t.Fatal("expected streak to change")
	}
	if stats.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4", stats.CurrentStreak)
	}
}
