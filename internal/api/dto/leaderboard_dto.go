package dto

// LeaderboardEntryDTO 榜单条目
type LeaderboardEntryDTO struct {
	Rank              int    `json:"rank"`
	UserID            uint64 `json:"user_id"`
	UserName          string `json:"user_name"`
	UserAvatar        string `json:"user_avatar"`
	TotalPoints       int64  `json:"total_points"`
	ContributionCount int64  `json:"contribution_count"`
}

// LeaderboardDTO 榜单返回包装
type LeaderboardDTO struct {
	Scope     string                 `json:"scope"`
	Timeframe string                 `json:"timeframe"`
	Partition string                 `json:"partition,omitempty"`
	Entries   []*LeaderboardEntryDTO `json:"entries"`
}
