package consts

const (
	// ContributionStatsKey 追加 userID
	ContributionStatsKey = "contribution:stats:"
	// LeaderboardKey 追加 scope:timeframe:partition:limit
	LeaderboardKey = "contribution:leaderboard:"
	// StreakInfoKey 追加 userID
	StreakInfoKey = "contribution:streak:"
)

const (
	StreakUpdateLock = "lock:contribution:streak:"
)
