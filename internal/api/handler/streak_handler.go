package handler

import (
	"Mythica/internal/pkg/response"
	"Mythica/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	streakSvc service.StreakService
}

func NewStreakHandler(streakSvc service.StreakService) *StreakHandler {
	return &StreakHandler{
		streakSvc: streakSvc,
	}
}

// Info 查询用户连续贡献概况
func (s *StreakHandler) Info(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	info, err := s.streakSvc.GetStreakInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
