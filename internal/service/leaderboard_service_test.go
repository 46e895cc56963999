package service

import (
	"Mythica/internal/pkg/mongo"
	"testing"
)

func rec(userID uint64, name string, weight int) *mongo.Contribution {
	return &mongo.Contribution{UserID: userID, UserName: name, Weight: weight}
}

func TestReduceWindowAggregatesAndRanks(t *testing.T) {
	records := []*mongo.Contribution{
		rec(1, "alice", 50),
		rec(2, "bob", 30),
		rec(1, "alice", 50),
		rec(3, "carol", 80),
		rec(2, "bob", 20),
	}

	entries := reduceWindow(records, 10)
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}

	if entries[0].UserID != 1 || entries[0].TotalPoints != 100 || entries[0].Rank != 1 {
		t.Errorf("rank 1 = %+v, want alice with 100 points", entries[0])
	}
	if entries[1].UserID != 3 || entries[1].TotalPoints != 80 || entries[1].Rank != 2 {
		t.Errorf("rank 2 = %+v, want carol with 80 points", entries[1])
	}
	if entries[2].UserID != 2 || entries[2].TotalPoints != 50 || entries[2].ContributionCount != 2 {
		t.Errorf("rank 3 = %+v, want bob with 50 points over 2 records", entries[2])
	}
}

func TestReduceWindowTieKeepsFirstSeenOrder(t *testing.T) {
	// 1 号先出现在窗口里，同分时排在 2 号前面
	records := []*mongo.Contribution{
		rec(1, "alice", 100),
		rec(2, "bob", 100),
		rec(3, "carol", 80),
		rec(4, "dave", 50),
	}

	entries := reduceWindow(records, 3)
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].UserID != 1 || entries[1].UserID != 2 {
		t.Errorf("tie order = [%d, %d], want [1, 2]", entries[0].UserID, entries[1].UserID)
	}
	if entries[2].UserID != 3 {
		t.Errorf("rank 3 user = %d, want 3", entries[2].UserID)
	}
}

func TestReduceWindowEmpty(t *testing.T) {
	entries := reduceWindow(nil, 10)
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}
}

func TestLeaderboardCacheKey(t *testing.T) {
	got := leaderboardCacheKey(ScopeTopic, TimeframeWeekly, "norse", 10)
	want := "contribution:leaderboard:topic:weekly:norse:10"
	if got != want {
		t.Errorf("key = %s, want %s", got, want)
	}

	// 全局榜没有分区，用占位段保持键结构
	got = leaderboardCacheKey(ScopeGlobal, TimeframeAllTime, "", 10)
	want = "contribution:leaderboard:global:all_time:-:10"
	if got != want {
		t.Errorf("key = %s, want %s", got, want)
	}
}
