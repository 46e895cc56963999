package consts

const (
	ContributionStatusActive  = "active"
	ContributionStatusRevoked = "revoked"
)

const (
	DefaultUserName  = "神秘访客"
	DefaultAvatarURL = "default_avatar.png"
)

// ContributionMilestones 贡献总数里程碑，精确命中时发送通知
var ContributionMilestones = []int64{10, 25, 50, 100, 250, 500, 1000}

// StreakBadgeThresholds 连续贡献天数徽章阈值（天），首次达到当天触发一次
var StreakBadgeThresholds = []int{7, 30, 100, 365}

// StreakBadgeNames 阈值对应的徽章标识
var StreakBadgeNames = map[int]string{
	7:   "streak_week",
	30:  "streak_month",
	100: "streak_hundred",
	365: "streak_year",
}
