package dto

// StreakInfoDTO 连续贡献概况
type StreakInfoDTO struct {
	UserID               uint64        `json:"user_id"`
	CurrentStreak        int           `json:"current_streak"`
	LongestStreak        int           `json:"longest_streak"`
	IsActive             bool          `json:"is_active"` // 最近一次贡献在今天或昨天
	GraceUsed            bool          `json:"grace_used"`
	LastContributionDate string        `json:"last_contribution_date,omitempty"`
	EarnedBadges         []string      `json:"earned_badges,omitempty"`
	NextBadge            *NextBadgeDTO `json:"next_badge,omitempty"`
}

// NextBadgeDTO 下一个待解锁的连续贡献徽章
type NextBadgeDTO struct {
	Threshold     int    `json:"threshold"`
	Badge         string `json:"badge"`
	DaysRemaining int    `json:"days_remaining"`
}
