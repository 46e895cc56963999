package dto

// ActivityQueryDTO 动态流查询条件，用户与资产过滤可同时生效
type ActivityQueryDTO struct {
	UserID  uint64 `json:"user_id" form:"user_id"`
	AssetID string `json:"asset_id" form:"asset_id"`
	Limit   int    `json:"limit" form:"limit"`
}
