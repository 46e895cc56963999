package api

import (
	"Mythica/internal/api/middleware"
	"Mythica/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		contributionGroup := apiGroup.Group("/contributions")
		{
			// 无需登录即可访问的查询接口
			contributionGroup.GET("/user/:user_id", group.ContributionHandler.ListByUser)
			contributionGroup.GET("/asset/:asset_id", group.ContributionHandler.ListByAsset)
			contributionGroup.GET("/stats/:user_id", group.ContributionHandler.Stats)

			authGroup := contributionGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.ContributionHandler.Record)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.DELETE("/:id", group.ContributionHandler.Revoke)
			}
		}

		leaderboardGroup := apiGroup.Group("/leaderboard")
		{
			leaderboardGroup.GET("/global", group.LeaderboardHandler.Global)
			leaderboardGroup.GET("/topic/:topic", group.LeaderboardHandler.ByTopic)
			leaderboardGroup.GET("/asset-type/:asset_type", group.LeaderboardHandler.ByAssetType)
		}

		streakGroup := apiGroup.Group("/streak")
		{
			streakGroup.GET("/:user_id", group.StreakHandler.Info)
		}

		activityGroup := apiGroup.Group("/activity")
		{
			activityGroup.GET("/recent", group.ActivityHandler.Recent)
			activityGroup.GET("/subscribe", group.ActivityHandler.Subscribe)
		}
	}

	return r
}
