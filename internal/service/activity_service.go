package service

import (
	"Mythica/internal/api/dto"
	"Mythica/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

const maxActivityLimit = 20

type ActivityService interface {
	GetRecentActivity(ctx context.Context, q *dto.ActivityQueryDTO) ([]*dto.ContributionDTO, error)
	// Subscribe 推送实时动态：先推当前快照，之后每当有匹配过滤条件的
	// 新贡献落库就重新推送最新列表。ctx 取消时返回。
	Subscribe(ctx context.Context, q *dto.ActivityQueryDTO, deliver func([]*dto.ContributionDTO) error) error
}

type activityServiceImpl struct {
	contributionRepo mongo.ContributionRepo
}

func NewActivityService(contributionRepo mongo.ContributionRepo) ActivityService {
	return &activityServiceImpl{contributionRepo: contributionRepo}
}

func toActivityFilter(q *dto.ActivityQueryDTO) mongo.ActivityFilter {
	f := mongo.ActivityFilter{Limit: maxActivityLimit}
	if q == nil {
		return f
	}
	f.UserID = q.UserID
	f.AssetID = q.AssetID
	if q.Limit > 0 && q.Limit < maxActivityLimit {
		f.Limit = int64(q.Limit)
	}
	return f
}

func (s *activityServiceImpl) GetRecentActivity(ctx context.Context, q *dto.ActivityQueryDTO) ([]*dto.ContributionDTO, error) {
	records, err := s.contributionRepo.FindRecent(ctx, toActivityFilter(q))
	if err != nil {
		log.ErrorContext(ctx, "查询最近动态失败", "err", err)
		return nil, UnExpectedError
	}
	return toActivityDTOs(ctx, records), nil
}

func toActivityDTOs(ctx context.Context, records []*mongo.Contribution) []*dto.ContributionDTO {
	list := make([]*dto.ContributionDTO, 0, len(records))
	for _, rec := range records {
		item := &dto.ContributionDTO{}
		if err := copier.Copy(item, rec); err != nil {
			log.WarnContext(ctx, "动态记录转换失败", "record_id", rec.ID, "err", err)
			continue
		}
		list = append(list, item)
	}
	return list
}

// matchesFilter 新插入的记录是否命中订阅过滤条件
func matchesFilter(rec *mongo.Contribution, f mongo.ActivityFilter) bool {
	if f.UserID != 0 && rec.UserID != f.UserID {
		return false
	}
	if f.AssetID != "" && rec.AssetID != f.AssetID {
		return false
	}
	return true
}

func (s *activityServiceImpl) Subscribe(ctx context.Context, q *dto.ActivityQueryDTO, deliver func([]*dto.ContributionDTO) error) error {
	filter := toActivityFilter(q)

	// 首帧推全量快照
	snapshot, err := s.contributionRepo.FindRecent(ctx, filter)
	if err != nil {
		return err
	}
	if err := deliver(toActivityDTOs(ctx, snapshot)); err != nil {
		return err
	}

	stream, err := s.contributionRepo.Watch(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := stream.Close(context.WithoutCancel(ctx)); err != nil {
			log.WarnContext(ctx, "关闭变更流失败", "err", err)
		}
	}()

	for stream.Next(ctx) {
		var event struct {
			FullDocument mongo.Contribution `bson:"fullDocument"`
		}
		if err := stream.Decode(&event); err != nil {
			log.WarnContext(ctx, "解析变更事件失败", "err", err)
			continue
		}
		if !matchesFilter(&event.FullDocument, filter) {
			continue
		}

		latest, err := s.contributionRepo.FindRecent(ctx, filter)
		if err != nil {
			log.WarnContext(ctx, "查询最新动态失败", "err", err)
			continue
		}
		if err := deliver(toActivityDTOs(ctx, latest)); err != nil {
			return err
		}
	}
	return stream.Err()
}
