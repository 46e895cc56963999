package service

import (
	"Mythica/internal/api/dto"
	"Mythica/internal/pkg/consts"
	"Mythica/internal/pkg/mongo"
	"Mythica/internal/pkg/redis"
	"Mythica/internal/pkg/util"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	ScopeGlobal    = "global"
	ScopeTopic     = "topic"
	ScopeAssetType = "asset_type"

	TimeframeAllTime = "all_time"
	TimeframeMonthly = "monthly"
	TimeframeWeekly  = "weekly"
)

const defaultLeaderboardLimit = 10
const maxLeaderboardLimit = 100

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, scope, timeframe, partition string, limit int) (*dto.LeaderboardDTO, error)
	// RefreshGlobalLeaderboards 预热全局三个时间窗的榜单缓存
	RefreshGlobalLeaderboards(ctx context.Context) error
}

type leaderboardServiceImpl struct {
	contributionRepo mongo.ContributionRepo
	statsRepo        mongo.UserStatsRepo
	loc              *time.Location
	cacheTTL         time.Duration
	scanCap          int64
	now              func() time.Time
}

func NewLeaderboardService(
	contributionRepo mongo.ContributionRepo,
	statsRepo mongo.UserStatsRepo,
	loc *time.Location,
	cacheTTL time.Duration,
	scanCap int64,
) LeaderboardService {
	return &leaderboardServiceImpl{
		contributionRepo: contributionRepo,
		statsRepo:        statsRepo,
		loc:              loc,
		cacheTTL:         cacheTTL,
		scanCap:          scanCap,
		now:              time.Now,
	}
}

func validScope(scope string) bool {
	return scope == ScopeGlobal || scope == ScopeTopic || scope == ScopeAssetType
}

func validTimeframe(timeframe string) bool {
	return timeframe == TimeframeAllTime || timeframe == TimeframeMonthly || timeframe == TimeframeWeekly
}

func leaderboardCacheKey(scope, timeframe, partition string, limit int) string {
	if partition == "" {
		partition = "-"
	}
	return fmt.Sprintf("%s%s:%s:%s:%d", consts.LeaderboardKey, scope, timeframe, partition, limit)
}

func (s *leaderboardServiceImpl) GetLeaderboard(ctx context.Context, scope, timeframe, partition string, limit int) (*dto.LeaderboardDTO, error) {
	if !validScope(scope) || !validTimeframe(timeframe) {
		return nil, ErrParamInvalid
	}
	if scope != ScopeGlobal && strings.TrimSpace(partition) == "" {
		return nil, ErrParamInvalid
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	key := leaderboardCacheKey(scope, timeframe, partition, limit)
	cached, err := redis.GetBytes(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "读取榜单缓存失败", "key", key, "err", err)
	}
	if len(cached) > 0 {
		var board dto.LeaderboardDTO
		if err := json.Unmarshal(cached, &board); err == nil {
			return &board, nil
		}
	}

	board, err := s.buildLeaderboard(ctx, scope, timeframe, partition, limit)
	if err != nil {
		log.ErrorContext(ctx, "构建榜单失败", "scope", scope, "timeframe", timeframe, "err", err)
		return nil, UnExpectedError
	}

	if payload, err := json.Marshal(board); err == nil {
		if err := redis.SetWithExpiration(ctx, key, payload, s.cacheTTL); err != nil {
			log.WarnContext(ctx, "写入榜单缓存失败", "key", key, "err", err)
		}
	}
	return board, nil
}

func (s *leaderboardServiceImpl) buildLeaderboard(ctx context.Context, scope, timeframe, partition string, limit int) (*dto.LeaderboardDTO, error) {
	board := &dto.LeaderboardDTO{
		Scope:     scope,
		Timeframe: timeframe,
		Partition: partition,
		Entries:   []*dto.LeaderboardEntryDTO{},
	}

	// 全站历史榜直接读统计档案，其余组合走窗口扫描归并
	if scope == ScopeGlobal && timeframe == TimeframeAllTime {
		statsList, err := s.statsRepo.TopByPoints(ctx, int64(limit))
		if err != nil {
			return nil, err
		}
		for i, stats := range statsList {
			board.Entries = append(board.Entries, &dto.LeaderboardEntryDTO{
				Rank:              i + 1,
				UserID:            stats.UserID,
				UserName:          stats.UserName,
				UserAvatar:        stats.UserAvatar,
				TotalPoints:       stats.TotalPoints,
				ContributionCount: stats.TotalContributions,
			})
		}
		return board, nil
	}

	q := mongo.WindowQuery{ScanCap: s.scanCap}
	switch timeframe {
	case TimeframeWeekly:
		q.StartMillis = util.WeekStart(s.now(), s.loc).UnixMilli()
	case TimeframeMonthly:
		q.StartMillis = util.MonthStart(s.now(), s.loc).UnixMilli()
	}
	switch scope {
	case ScopeTopic:
		q.TopicDomain = partition
	case ScopeAssetType:
		q.AssetType = partition
	}

	records, err := s.contributionRepo.FindWindow(ctx, q)
	if err != nil {
		return nil, err
	}
	board.Entries = reduceWindow(records, limit)
	return board, nil
}

// reduceWindow 按用户聚合窗口内的记录并取前 limit 名。
// 同分用户按首次出现顺序排序，排序稳定可复现。
func reduceWindow(records []*mongo.Contribution, limit int) []*dto.LeaderboardEntryDTO {
	entries := make([]*dto.LeaderboardEntryDTO, 0)
	seen := make(map[uint64]*dto.LeaderboardEntryDTO)

	for _, rec := range records {
		entry, ok := seen[rec.UserID]
		if !ok {
			entry = &dto.LeaderboardEntryDTO{
				UserID:     rec.UserID,
				UserName:   rec.UserName,
				UserAvatar: rec.UserAvatar,
			}
			seen[rec.UserID] = entry
			entries = append(entries, entry)
		}
		entry.TotalPoints += int64(rec.Weight)
		entry.ContributionCount++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}
	return entries
}

func (s *leaderboardServiceImpl) RefreshGlobalLeaderboards(ctx context.Context) error {
	for _, timeframe := range []string{TimeframeAllTime, TimeframeMonthly, TimeframeWeekly} {
		board, err := s.buildLeaderboard(ctx, ScopeGlobal, timeframe, "", defaultLeaderboardLimit)
		if err != nil {
			log.ErrorContext(ctx, "预热榜单失败", "timeframe", timeframe, "err", err)
			return err
		}

		key := leaderboardCacheKey(ScopeGlobal, timeframe, "", defaultLeaderboardLimit)
		payload, err := json.Marshal(board)
		if err != nil {
			return err
		}
		if err := redis.SetWithExpiration(ctx, key, payload, s.cacheTTL); err != nil {
			log.ErrorContext(ctx, "写入榜单缓存失败", "key", key, "err", err)
			return err
		}
	}
	return nil
}
