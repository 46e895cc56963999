package api

import "Mythica/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ContributionHandler *handler.ContributionHandler
	LeaderboardHandler  *handler.LeaderboardHandler
	StreakHandler       *handler.StreakHandler
	ActivityHandler     *handler.ActivityHandler
}
