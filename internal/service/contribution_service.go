package service

import (
	"Mythica/internal/api/dto"
	"Mythica/internal/pkg/consts"
	"Mythica/internal/pkg/kafka"
	"Mythica/internal/pkg/mongo"
	"Mythica/internal/pkg/ratelimit"
	"Mythica/internal/pkg/redis"
	"Mythica/internal/pkg/scoring"
	"Mythica/internal/pkg/util"
	"Mythica/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type ContributionService interface {
	RecordContribution(ctx context.Context, userID uint64, req *dto.RecordContributionDTO) (*dto.ContributionDTO, error)
	// RevokeContribution 审核动作：软删除记录并回减统计
	RevokeContribution(ctx context.Context, id string) error
	GetContributions(ctx context.Context, userID uint64, q *dto.ContributionQueryDTO) ([]*dto.ContributionDTO, error)
	GetAssetContributions(ctx context.Context, assetID string, limit int64) ([]*dto.ContributionDTO, error)
	GetContributionStats(ctx context.Context, userID uint64) (*dto.ContributionStatsDTO, error)
}

type contributionServiceImpl struct {
	contributionRepo mongo.ContributionRepo
	statsRepo        mongo.UserStatsRepo
	userRepo         repository.UserRepo
	streakSvc        StreakService
	limiter          *ratelimit.Limiter
	bus              EventBus
	loc              *time.Location
	statsCacheTTL    time.Duration
	now              func() time.Time
}

func NewContributionService(
	contributionRepo mongo.ContributionRepo,
	statsRepo mongo.UserStatsRepo,
	userRepo repository.UserRepo,
	streakSvc StreakService,
	limiter *ratelimit.Limiter,
	bus EventBus,
	loc *time.Location,
	statsCacheTTL time.Duration,
) ContributionService {
	return &contributionServiceImpl{
		contributionRepo: contributionRepo,
		statsRepo:        statsRepo,
		userRepo:         userRepo,
		streakSvc:        streakSvc,
		limiter:          limiter,
		bus:              bus,
		loc:              loc,
		statsCacheTTL:    statsCacheTTL,
		now:              time.Now,
	}
}

type metaKind int

const (
	metaString metaKind = iota
	metaNumber
	metaBool
)

// metadataSchema 元数据白名单，键 -> 允许的值类型。
// 白名单之外的键一律丢弃。
var metadataSchema = map[string]metaKind{
	"edit_summary":       metaString,
	"section_title":      metaString,
	"source_url":         metaString,
	"language":           metaString,
	"characters_changed": metaNumber,
	"citation_count":     metaNumber,
	"is_revert":          metaBool,
}

const metadataMaxStringLen = 500

// sanitizeMetadata 过滤元数据：未知键丢弃，字符串截断到 500 字符，
// 数字和布尔原样透传
func sanitizeMetadata(in map[string]interface{}) map[string]interface{} {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string]interface{})
	for key, value := range in {
		kind, ok := metadataSchema[key]
		if !ok {
			continue
		}

		switch kind {
		case metaString:
			str, ok := value.(string)
			if !ok {
				continue
			}
			if utf8.RuneCountInString(str) > metadataMaxStringLen {
				str = string([]rune(str)[:metadataMaxStringLen])
			}
			out[key] = str
		case metaNumber:
			switch value.(type) {
			case float64, float32, int, int32, int64, uint, uint32, uint64:
				out[key] = value
			}
		case metaBool:
			if b, ok := value.(bool); ok {
				out[key] = b
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// hitMilestone 精确命中里程碑时返回命中的值
func hitMilestone(totalContributions int64) (int64, bool) {
	for _, m := range consts.ContributionMilestones {
		if totalContributions == m {
			return m, true
		}
	}
	return 0, false
}

func (s *contributionServiceImpl) RecordContribution(ctx context.Context, userID uint64, req *dto.RecordContributionDTO) (*dto.ContributionDTO, error) {
	// 1. 解析分值，未知类型整单拒绝
	weight, err := scoring.ResolveWeight(scoring.Kind(req.Kind))
	if err != nil {
		return nil, ErrUnknownContributionKind
	}

	// 2. 限流闸门
	if !s.limiter.CheckAndIncrement(userID) {
		return nil, ErrRateLimitExceeded
	}

	// 3. 身份信息降级处理：查询失败不阻断记录
	userName := consts.DefaultUserName
	userAvatar := consts.DefaultAvatarURL
	profile, err := s.userRepo.LookupDisplayProfile(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "查询用户展示信息失败，使用占位信息", "user_id", userID, "err", err)
	} else if profile != nil {
		if profile.Name != "" {
			userName = profile.Name
		}
		if profile.AvatarURL != "" {
			userAvatar = profile.AvatarURL
		}
	}

	now := s.now()
	rec := &mongo.Contribution{
		UserID:          userID,
		UserName:        userName,
		UserAvatar:      userAvatar,
		AssetID:         req.AssetID,
		AssetName:       req.AssetName,
		AssetType:       req.AssetType,
		TopicDomain:     req.TopicDomain,
		Kind:            req.Kind,
		Weight:          weight,
		Metadata:        sanitizeMetadata(req.Metadata),
		Status:          consts.ContributionStatusActive,
		CreatedAt:       now,
		CreatedAtMillis: now.UnixMilli(),
		DateKey:         util.DateKey(now, s.loc),
	}

	// 4. 流水与统计在同一事务落库，要么都生效要么都不生效
	stats, err := s.contributionRepo.InsertWithStats(ctx, rec)
	if err != nil {
		log.ErrorContext(ctx, "贡献写入事务失败", "user_id", userID, "kind", req.Kind, "err", err)
		return nil, ErrPersistenceConflict
	}

	// 5. 提交后任务：互相独立，失败只记日志，绝不回滚已提交的写入
	s.runPostCommitTasks(context.WithoutCancel(ctx), rec, stats)

	result := &dto.ContributionDTO{}
	if err := copier.Copy(result, rec); err != nil {
		log.WarnContext(ctx, "贡献记录转换失败", "record_id", rec.ID, "err", err)
	}
	return result, nil
}

func (s *contributionServiceImpl) runPostCommitTasks(ctx context.Context, rec *mongo.Contribution, stats *mongo.UserStats) {
	// 连续贡献推进
	if err := s.streakSvc.UpdateStreakOnContribution(ctx, rec.UserID); err != nil {
		log.WarnContext(ctx, "连续贡献更新失败", "user_id", rec.UserID, "err", err)
	}

	// 统计缓存失效
	if err := redis.DeleteKey(ctx, consts.ContributionStatsKey+strconv.FormatUint(rec.UserID, 10)); err != nil {
		log.WarnContext(ctx, "统计缓存失效失败", "user_id", rec.UserID, "err", err)
	}

	// 贡献事件通知
	evt := &kafka.ContributionEvent{
		Event:       kafka.EventContributionRecorded,
		UserID:      rec.UserID,
		RecordID:    rec.ID,
		Kind:        rec.Kind,
		Weight:      rec.Weight,
		AssetID:     rec.AssetID,
		AssetType:   rec.AssetType,
		TopicDomain: rec.TopicDomain,
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		log.WarnContext(ctx, "发布贡献事件失败", "record_id", rec.ID, "err", err)
	}

	// 里程碑检查：基于事务返回的最新总数，精确相等才触发
	if milestone, ok := hitMilestone(stats.TotalContributions); ok {
		milestoneEvt := &kafka.ContributionEvent{
			Event:       kafka.EventContributionMilestone,
			UserID:      rec.UserID,
			Milestone:   milestone,
			TotalPoints: stats.TotalPoints,
		}
		if err := s.bus.Publish(ctx, milestoneEvt); err != nil {
			log.WarnContext(ctx, "发布里程碑事件失败", "user_id", rec.UserID, "milestone", milestone, "err", err)
		}
	}
}

func (s *contributionServiceImpl) RevokeContribution(ctx context.Context, id string) error {
	rec, changed, err := s.contributionRepo.RevokeWithStats(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "撤销贡献事务失败", "record_id", id, "err", err)
		return ErrPersistenceConflict
	}
	if rec == nil {
		return ErrContributionNotFound
	}
	if !changed {
		return ErrContributionRevoked
	}

	if err := redis.DeleteKey(ctx, consts.ContributionStatsKey+strconv.FormatUint(rec.UserID, 10)); err != nil {
		log.WarnContext(ctx, "统计缓存失效失败", "user_id", rec.UserID, "err", err)
	}
	return nil
}

func (s *contributionServiceImpl) GetContributions(ctx context.Context, userID uint64, q *dto.ContributionQueryDTO) ([]*dto.ContributionDTO, error) {
	filter := mongo.ContributionFilter{Limit: 50}
	if q != nil {
		filter.Kind = q.Kind
		filter.AssetID = q.AssetID
		if q.Limit > 0 && q.Limit <= 100 {
			filter.Limit = int64(q.Limit)
		}
	}

	records, err := s.contributionRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		log.ErrorContext(ctx, "查询用户贡献记录失败", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}
	return s.toDTOs(ctx, records), nil
}

func (s *contributionServiceImpl) GetAssetContributions(ctx context.Context, assetID string, limit int64) ([]*dto.ContributionDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	records, err := s.contributionRepo.FindByAsset(ctx, assetID, limit)
	if err != nil {
		log.ErrorContext(ctx, "查询资产贡献记录失败", "asset_id", assetID, "err", err)
		return nil, UnExpectedError
	}
	return s.toDTOs(ctx, records), nil
}

func (s *contributionServiceImpl) toDTOs(ctx context.Context, records []*mongo.Contribution) []*dto.ContributionDTO {
	list := make([]*dto.ContributionDTO, 0, len(records))
	for _, rec := range records {
		item := &dto.ContributionDTO{}
		if err := copier.Copy(item, rec); err != nil {
			log.WarnContext(ctx, "贡献记录转换失败", "record_id", rec.ID, "err", err)
			continue
		}
		list = append(list, item)
	}
	return list
}

func (s *contributionServiceImpl) GetContributionStats(ctx context.Context, userID uint64) (*dto.ContributionStatsDTO, error) {
	key := consts.ContributionStatsKey + strconv.FormatUint(userID, 10)

	cached, err := redis.GetBytes(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "读取统计缓存失败", "user_id", userID, "err", err)
	}
	if len(cached) > 0 {
		var statsDTO dto.ContributionStatsDTO
		if err := json.Unmarshal(cached, &statsDTO); err == nil {
			return &statsDTO, nil
		}
	}

	stats, err := s.statsRepo.Get(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "查询贡献统计失败", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}
	if stats == nil {
		// 首次贡献前统计档案不存在，返回零值
		stats = &mongo.UserStats{UserID: userID}
	}

	statsDTO := &dto.ContributionStatsDTO{}
	if err := copier.Copy(statsDTO, stats); err != nil {
		log.ErrorContext(ctx, "统计档案转换失败", "user_id", userID, "err", err)
		return nil, UnExpectedError
	}

	if payload, err := json.Marshal(statsDTO); err == nil {
		if err := redis.SetWithExpiration(ctx, key, payload, s.statsCacheTTL); err != nil {
			log.WarnContext(ctx, "写入统计缓存失败", "user_id", userID, "err", err)
		}
	}

	return statsDTO, nil
}
