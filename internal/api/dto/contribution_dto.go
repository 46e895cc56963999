package dto

import "time"

// RecordContributionDTO 记录贡献请求。
// asset_name/asset_type/topic_domain 为可选的展示与分区信息
type RecordContributionDTO struct {
	AssetID     string                 `json:"asset_id" binding:"required" validate:"min=1,max=64"`
	AssetName   string                 `json:"asset_name" validate:"omitempty,max=255"`
	AssetType   string                 `json:"asset_type" validate:"omitempty,max=32"`
	TopicDomain string                 `json:"topic_domain" validate:"omitempty,max=32"`
	Kind        string                 `json:"kind" binding:"required"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// ContributionQueryDTO 贡献列表查询条件
type ContributionQueryDTO struct {
	Kind    string `json:"kind" form:"kind"`
	AssetID string `json:"asset_id" form:"asset_id"`
	Limit   int    `json:"limit" form:"limit"`
}

// ContributionDTO 贡献记录
type ContributionDTO struct {
	ID          string                 `json:"id"`
	UserID      uint64                 `json:"user_id"`
	UserName    string                 `json:"user_name"`
	UserAvatar  string                 `json:"user_avatar"`
	AssetID     string                 `json:"asset_id"`
	AssetName   string                 `json:"asset_name"`
	AssetType   string                 `json:"asset_type"`
	TopicDomain string                 `json:"topic_domain"`
	Kind        string                 `json:"kind"`
	Weight      int                    `json:"weight"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Status      string                 `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ContributionStatsDTO 用户贡献统计档案
type ContributionStatsDTO struct {
	UserID     uint64 `json:"user_id"`
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar"`

	TotalContributions int64 `json:"total_contributions"`
	TotalPoints        int64 `json:"total_points"`

	ContributionsByKind map[string]int64 `json:"contributions_by_kind,omitempty"`
	PointsByKind        map[string]int64 `json:"points_by_kind,omitempty"`
	TopicDomains        map[string]int64 `json:"topic_domains,omitempty"`
	AssetTypes          map[string]int64 `json:"asset_types,omitempty"`

	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	LastContributionAt time.Time `json:"last_contribution_at"`
}
