package wire

import (
	"Mythica/internal/api"
	"Mythica/internal/api/config"
	"Mythica/internal/api/handler"
	"Mythica/internal/job"
	"Mythica/internal/pkg/cron"
	"Mythica/internal/pkg/kafka"
	pkgmongo "Mythica/internal/pkg/mongo"
	"Mythica/internal/pkg/ratelimit"
	"Mythica/internal/repository"
	"Mythica/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	CronMgr  *cron.Manager
	Producer *kafka.EventProducer
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	loc, err := time.LoadLocation(cfg.Contribution.Timezone)
	if err != nil {
		return nil, err
	}

	contributionRepo := pkgmongo.NewContributionRepo(mongoDB)
	statsRepo := pkgmongo.NewUserStatsRepo(mongoDB)
	userRepo := repository.NewUserRepo(db)

	producer, err := kafka.NewEventProducer(cfg)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.NewLimiter(cfg.Contribution.RateLimitPerMinute)

	streakService := service.NewStreakService(statsRepo, producer, loc,
		time.Duration(cfg.Contribution.StatsCacheTTL)*time.Second)
	contributionService := service.NewContributionService(
		contributionRepo,
		statsRepo,
		userRepo,
		streakService,
		limiter,
		producer,
		loc,
		time.Duration(cfg.Contribution.StatsCacheTTL)*time.Second,
	)
	leaderboardService := service.NewLeaderboardService(
		contributionRepo,
		statsRepo,
		loc,
		time.Duration(cfg.Contribution.LeaderboardCacheTTL)*time.Second,
		int64(cfg.Contribution.LeaderboardScanCap),
	)
	activityService := service.NewActivityService(contributionRepo)

	handlers := &api.HandlersGroup{
		ContributionHandler: handler.NewContributionHandler(contributionService),
		LeaderboardHandler:  handler.NewLeaderboardHandler(leaderboardService),
		StreakHandler:       handler.NewStreakHandler(streakService),
		ActivityHandler:     handler.NewActivityHandler(activityService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewLeaderboardWarmJob(leaderboardService))

	return &ApplicationContainer{
		Router:   router,
		DB:       db,
		CronMgr:  cronMgr,
		Producer: producer,
	}, nil
}
