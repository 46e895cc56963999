package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserStatsRepo interface {
	// Get 读取用户统计档案，不存在时返回 (nil, nil)
	Get(ctx context.Context, userID uint64) (*UserStats, error)
	// TopByPoints 按总积分降序返回前 limit 名（全时段全局榜的数据源）
	TopByPoints(ctx context.Context, limit int64) ([]*UserStats, error)
	// ApplyStreak 在事务内对用户统计做读-改-写，避免同一用户并发
	// 贡献时丢失连续天数更新。mutate 返回 false 表示无需写回。
	ApplyStreak(ctx context.Context, userID uint64, mutate func(*UserStats) bool) (*UserStats, error)
}

type userStatsRepoImpl struct {
	db    *mongo.Database
	stats *mongo.Collection
}

func NewUserStatsRepo(db *mongo.Database) UserStatsRepo {
	return &userStatsRepoImpl{
		db:    db,
		stats: db.Collection(userStatsColl),
	}
}

func (s *userStatsRepoImpl) Get(ctx context.Context, userID uint64) (*UserStats, error) {
	var stats UserStats
	err := s.stats.FindOne(ctx, bson.M{"_id": userID}).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get user stats")
	}
	return &stats, nil
}

func (s *userStatsRepoImpl) TopByPoints(ctx context.Context, limit int64) ([]*UserStats, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "total_points", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.stats.Find(ctx, bson.M{"total_points": bson.M{"$gt": 0}}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find top stats")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*UserStats
	if err := cursor.All(ctx, &list); err != nil {
		return nil, errors.Wrap(err, "decode top stats")
	}
	return list, nil
}

func (s *userStatsRepoImpl) ApplyStreak(ctx context.Context, userID uint64, mutate func(*UserStats) bool) (*UserStats, error) {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return nil, errors.Wrap(err, "start session")
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var stats UserStats
		err := s.stats.FindOne(sc, bson.M{"_id": userID}).Decode(&stats)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// 统计档案由记录事务 upsert 创建，这里兜底初始化
			stats = UserStats{UserID: userID}
		} else if err != nil {
			return nil, errors.Wrap(err, "load user stats")
		}

		if !mutate(&stats) {
			return &stats, nil
		}

		update := bson.M{"$set": bson.M{
			"current_streak":             stats.CurrentStreak,
			"longest_streak":             stats.LongestStreak,
			"last_contribution_date_key": stats.LastContributionDateKey,
			"streak_grace_used":          stats.StreakGraceUsed,
			"streak_start_at":            stats.StreakStartAt,
			"updated_at":                 time.Now(),
		}}

		opts := options.Update().SetUpsert(true)
		if _, err := s.stats.UpdateOne(sc, bson.M{"_id": userID}, update, opts); err != nil {
			return nil, errors.Wrap(err, "write streak state")
		}
		return &stats, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*UserStats), nil
}
