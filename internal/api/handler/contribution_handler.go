package handler

import (
	"Mythica/internal/api/dto"
	"Mythica/internal/pkg/response"
	"Mythica/internal/pkg/util"
	"Mythica/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContributionHandler struct {
	contributionSvc service.ContributionService
}

func NewContributionHandler(contributionSvc service.ContributionService) *ContributionHandler {
	return &ContributionHandler{
		contributionSvc: contributionSvc,
	}
}

// Record 记录一次贡献
func (s *ContributionHandler) Record(c *gin.Context) {
	var req dto.RecordContributionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	result, err := s.contributionSvc.RecordContribution(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Revoke 撤销贡献记录，仅管理员可用
func (s *ContributionHandler) Revoke(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.contributionSvc.RevokeContribution(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListByUser 查询某用户的贡献记录
func (s *ContributionHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var q dto.ContributionQueryDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.contributionSvc.GetContributions(c.Request.Context(), userID, &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// ListByAsset 查询某资产条目下的贡献记录
func (s *ContributionHandler) ListByAsset(c *gin.Context) {
	assetID := c.Param("asset_id")
	if assetID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	list, err := s.contributionSvc.GetAssetContributions(c.Request.Context(), assetID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Stats 查询用户贡献统计档案
func (s *ContributionHandler) Stats(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stats, err := s.contributionSvc.GetContributionStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
