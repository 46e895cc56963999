package handler

import (
	"Mythica/internal/pkg/response"
	"Mythica/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardSvc: leaderboardSvc,
	}
}

// Global 全站榜单
func (s *LeaderboardHandler) Global(c *gin.Context) {
	s.serve(c, service.ScopeGlobal, "")
}

// ByTopic 主题域分区榜单
func (s *LeaderboardHandler) ByTopic(c *gin.Context) {
	s.serve(c, service.ScopeTopic, c.Param("topic"))
}

// ByAssetType 资产类型分区榜单
func (s *LeaderboardHandler) ByAssetType(c *gin.Context) {
	s.serve(c, service.ScopeAssetType, c.Param("asset_type"))
}

func (s *LeaderboardHandler) serve(c *gin.Context, scope, partition string) {
	timeframe := c.DefaultQuery("timeframe", service.TimeframeAllTime)
	limit, _ := strconv.Atoi(c.Query("limit"))

	board, err := s.leaderboardSvc.GetLeaderboard(c.Request.Context(), scope, timeframe, partition, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}
