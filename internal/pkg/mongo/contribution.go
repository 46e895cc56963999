package mongo

import (
	"time"
)

// Contribution MongoDB 贡献流水模型，落库后不可变，
// 仅允许 status 从 active 置为 revoked
type Contribution struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	UserID     uint64 `bson:"user_id" json:"userId"`
	UserName   string `bson:"user_name" json:"userName"`     // 创建时的冗余快照
	UserAvatar string `bson:"user_avatar" json:"userAvatar"` // 创建时的冗余快照

	AssetID     string `bson:"asset_id,omitempty" json:"assetId"`
	AssetName   string `bson:"asset_name,omitempty" json:"assetName"`
	AssetType   string `bson:"asset_type,omitempty" json:"assetType"`
	TopicDomain string `bson:"topic_domain,omitempty" json:"topicDomain"` // 神话体系分区，可为空

	Kind   string `bson:"kind" json:"kind"`
	Weight int    `bson:"weight" json:"weight"` // 创建时按积分表解析并冻结

	Metadata map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`

	Status string `bson:"status" json:"status"` // active | revoked

	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	CreatedAtMillis int64     `bson:"created_at_ms" json:"createdAtMillis"` // 范围查询与排序键
	DateKey         string    `bson:"date_key" json:"dateKey"`              // 连续贡献判定用日历日期
}

// UserStats MongoDB 用户贡献统计模型，一人一档，
// 通过 $inc 原子累加，与贡献流水同事务写入
type UserStats struct {
	UserID     uint64 `bson:"_id" json:"userId"`
	UserName   string `bson:"user_name" json:"userName"`
	UserAvatar string `bson:"user_avatar" json:"userAvatar"`

	TotalContributions int64 `bson:"total_contributions" json:"totalContributions"`
	TotalPoints        int64 `bson:"total_points" json:"totalPoints"`

	ContributionsByKind map[string]int64 `bson:"contributions_by_kind,omitempty" json:"contributionsByKind"`
	PointsByKind        map[string]int64 `bson:"points_by_kind,omitempty" json:"pointsByKind"`
	TopicDomains        map[string]int64 `bson:"topic_domain_contributions,omitempty" json:"topicDomainContributions"`
	AssetTypes          map[string]int64 `bson:"asset_type_contributions,omitempty" json:"assetTypeContributions"`

	CurrentStreak           int       `bson:"current_streak" json:"currentStreak"`
	LongestStreak           int       `bson:"longest_streak" json:"longestStreak"`
	LastContributionDateKey string    `bson:"last_contribution_date_key,omitempty" json:"lastContributionDateKey"`
	StreakGraceUsed         bool      `bson:"streak_grace_used" json:"streakGraceUsed"`
	StreakStartAt           time.Time `bson:"streak_start_at,omitempty" json:"streakStartAt"`

	LastContributionAt time.Time `bson:"last_contribution_at" json:"lastContributionAt"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updatedAt"`
}
