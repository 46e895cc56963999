package service

import (
	"Mythica/internal/api/dto"
	"Mythica/internal/pkg/consts"
	"Mythica/internal/pkg/kafka"
	"Mythica/internal/pkg/mongo"
	"Mythica/internal/pkg/redis"
	"Mythica/internal/pkg/util"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type StreakService interface {
	// UpdateStreakOnContribution 贡献落库后推进连续贡献状态，
	// 每用户每日历日最多生效一次
	UpdateStreakOnContribution(ctx context.Context, userID uint64) error
	GetStreakInfo(ctx context.Context, userID uint64) (*dto.StreakInfoDTO, error)
}

type streakServiceImpl struct {
	statsRepo mongo.UserStatsRepo
	bus       EventBus
	loc       *time.Location
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewStreakService(statsRepo mongo.UserStatsRepo, bus EventBus, loc *time.Location, cacheTTL time.Duration) StreakService {
	return &streakServiceImpl{
		statsRepo: statsRepo,
		bus:       bus,
		loc:       loc,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// advanceStreak 连续贡献状态机。同日重复贡献为无操作；
// 昨日有贡献则顺延；前日有贡献且宽限未用则消耗宽限顺延；
// 其余情况连续中断重新计数。返回 true 表示需要写回。
func advanceStreak(stats *mongo.UserStats, now time.Time, loc *time.Location) bool {
	today := util.DateKey(now, loc)
	yesterday := util.ShiftDateKey(now, -1, loc)
	twoDaysAgo := util.ShiftDateKey(now, -2, loc)

	switch {
	case stats.LastContributionDateKey == today:
		return false
	case stats.LastContributionDateKey == "":
		stats.CurrentStreak = 1
		stats.StreakGraceUsed = false
		stats.StreakStartAt = now
	case stats.LastContributionDateKey == yesterday:
		stats.CurrentStreak++
		stats.StreakGraceUsed = false
	case stats.LastContributionDateKey == twoDaysAgo && !stats.StreakGraceUsed:
		stats.CurrentStreak++
		stats.StreakGraceUsed = true
	default:
		stats.CurrentStreak = 1
		stats.StreakGraceUsed = false
		stats.StreakStartAt = now
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastContributionDateKey = today
	return true
}

func (s *streakServiceImpl) UpdateStreakOnContribution(ctx context.Context, userID uint64) error {
	lockKey := consts.StreakUpdateLock + strconv.FormatUint(userID, 10)
	lockValue := uuid.NewString()
	lock, err := redis.TryLock(ctx, lockKey, lockValue, time.Second*30, 3)
	if err != nil {
		return err
	}
	if !lock {
		// 同一用户的另一次更新正在进行，当日转移由持锁方完成
		return nil
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	changed := false
	stats, err := s.statsRepo.ApplyStreak(ctx, userID, func(st *mongo.UserStats) bool {
		changed = advanceStreak(st, s.now(), s.loc)
		return changed
	})
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	if err := redis.DeleteKey(ctx, consts.StreakInfoKey+strconv.FormatUint(userID, 10)); err != nil {
		log.WarnContext(ctx, "连续贡献缓存失效失败", "user_id", userID, "err", err)
	}

	// 徽章阈值只在首次达到当天触发，精确相等判定避免重复发放
	if badge, ok := consts.StreakBadgeNames[stats.CurrentStreak]; ok {
		evt := &kafka.ContributionEvent{
			Event:        kafka.EventStreakAchieved,
			UserID:       userID,
			ThresholdKey: strconv.Itoa(stats.CurrentStreak),
			Badge:        badge,
		}
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.WarnContext(ctx, "发布连续贡献徽章事件失败", "user_id", userID, "badge", badge, "err", err)
		}
	}

	return nil
}

func (s *streakServiceImpl) GetStreakInfo(ctx context.Context, userID uint64) (*dto.StreakInfoDTO, error) {
	key := consts.StreakInfoKey + strconv.FormatUint(userID, 10)

	cached, err := redis.GetBytes(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "读取连续贡献缓存失败", "user_id", userID, "err", err)
	}
	if len(cached) > 0 {
		var info dto.StreakInfoDTO
		if err := json.Unmarshal(cached, &info); err == nil {
			return &info, nil
		}
	}

	stats, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "查询连续贡献状态失败", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}
	if stats == nil {
		stats = &mongo.UserStats{UserID: userID}
	}

	now := s.now()
	today := util.DateKey(now, s.loc)
	yesterday := util.ShiftDateKey(now, -1, s.loc)

	info := &dto.StreakInfoDTO{
		UserID:               userID,
		CurrentStreak:        stats.CurrentStreak,
		LongestStreak:        stats.LongestStreak,
		GraceUsed:            stats.StreakGraceUsed,
		LastContributionDate: stats.LastContributionDateKey,
		IsActive:             stats.LastContributionDateKey == today || stats.LastContributionDateKey == yesterday,
	}

	// 已获得的徽章按历史最长连续判定，一经获得不会因中断收回
	for _, threshold := range consts.StreakBadgeThresholds {
		if stats.LongestStreak >= threshold {
			info.EarnedBadges = append(info.EarnedBadges, consts.StreakBadgeNames[threshold])
			continue
		}
		if info.NextBadge == nil && threshold > stats.CurrentStreak {
			info.NextBadge = &dto.NextBadgeDTO{
				Threshold:     threshold,
				Badge:         consts.StreakBadgeNames[threshold],
				DaysRemaining: threshold - stats.CurrentStreak,
			}
		}
	}

	if payload, err := json.Marshal(info); err == nil {
		if err := redis.SetWithExpiration(ctx, key, payload, s.cacheTTL); err != nil {
			log.WarnContext(ctx, "写入连续贡献缓存失败", "user_id", userID, "err", err)
		}
	}

	return info, nil
}
