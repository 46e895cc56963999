package job

import (
	"Mythica/internal/pkg/logger"
	"Mythica/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// LeaderboardWarmJob 周期性预热全局榜单缓存
type LeaderboardWarmJob struct {
	leaderboardSvc service.LeaderboardService
}

func NewLeaderboardWarmJob(leaderboardSvc service.LeaderboardService) *LeaderboardWarmJob {
	return &LeaderboardWarmJob{
		leaderboardSvc: leaderboardSvc,
	}
}

func (s *LeaderboardWarmJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.leaderboardSvc.RefreshGlobalLeaderboards(ctx); err != nil {
		log.ErrorContext(ctx, "warm leaderboard cache error", "err", err)
		return
	}
	log.InfoContext(ctx, "warm leaderboard cache success")
}
