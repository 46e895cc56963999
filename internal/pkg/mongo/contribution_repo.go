package mongo

import (
	"Mythica/internal/pkg/consts"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContributionFilter 按用户查询时的可选过滤条件
type ContributionFilter struct {
	Kind    string
	AssetID string
	Limit   int64
}

// ActivityFilter 动态流查询条件
type ActivityFilter struct {
	UserID  uint64
	AssetID string
	Limit   int64
}

// WindowQuery 时间窗口扫描条件。ScanCap 限制扫描的最新记录条数，
// 分区榜单以此换取成本上界，老记录可能被低估。
type WindowQuery struct {
	StartMillis int64
	TopicDomain string
	AssetType   string
	ScanCap     int64
}

type ContributionRepo interface {
	// InsertWithStats 在同一事务中插入贡献流水并累加用户统计，
	// 返回累加后的统计档案。两个写入要么同时生效要么都不生效。
	InsertWithStats(ctx context.Context, rec *Contribution) (*UserStats, error)
	// RevokeWithStats 在同一事务中撤销贡献并回减统计。
	// 记录不存在时返回 (nil, false, nil)；已撤销时返回 (rec, false, nil)。
	RevokeWithStats(ctx context.Context, id string) (*Contribution, bool, error)
	GetByID(ctx context.Context, id string) (*Contribution, error)
	FindByUser(ctx context.Context, userID uint64, f ContributionFilter) ([]*Contribution, error)
	FindByAsset(ctx context.Context, assetID string, limit int64) ([]*Contribution, error)
	FindRecent(ctx context.Context, f ActivityFilter) ([]*Contribution, error)
	FindWindow(ctx context.Context, q WindowQuery) ([]*Contribution, error)
	// Watch 返回贡献集合的插入事件流（依赖副本集 Change Stream）
	Watch(ctx context.Context) (*mongo.ChangeStream, error)
}

type contributionRepoImpl struct {
	db           *mongo.Database
	contribution *mongo.Collection
	stats        *mongo.Collection
}

func NewContributionRepo(db *mongo.Database) ContributionRepo {
	return &contributionRepoImpl{
		db:           db,
		contribution: db.Collection(contributionColl),
		stats:        db.Collection(userStatsColl),
	}
}

func (s *contributionRepoImpl) InsertWithStats(ctx context.Context, rec *Contribution) (*UserStats, error) {
	if rec.ID == "" {
		rec.ID = primitive.NewObjectID().Hex()
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return nil, errors.Wrap(err, "start session")
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.contribution.InsertOne(sc, rec); err != nil {
			return nil, errors.Wrap(err, "insert contribution")
		}

		opts := options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After)

		var updated UserStats
		err := s.stats.FindOneAndUpdate(sc, bson.M{"_id": rec.UserID}, buildStatsUpdate(rec, 1), opts).Decode(&updated)
		if err != nil {
			return nil, errors.Wrap(err, "apply stats increment")
		}
		return &updated, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*UserStats), nil
}

func (s *contributionRepoImpl) RevokeWithStats(ctx context.Context, id string) (*Contribution, bool, error) {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return nil, false, errors.Wrap(err, "start session")
	}
	defer session.EndSession(ctx)

	var rec *Contribution
	changed := false

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var found Contribution
		err := s.contribution.FindOne(sc, bson.M{"_id": id}).Decode(&found)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "load contribution")
		}
		rec = &found

		if found.Status != consts.ContributionStatusActive {
			return nil, nil
		}

		if _, err := s.contribution.UpdateOne(sc,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": consts.ContributionStatusRevoked}},
		); err != nil {
			return nil, errors.Wrap(err, "revoke contribution")
		}

		if _, err := s.stats.UpdateOne(sc, bson.M{"_id": found.UserID}, buildStatsUpdate(&found, -1)); err != nil {
			return nil, errors.Wrap(err, "apply stats decrement")
		}

		rec.Status = consts.ContributionStatusRevoked
		changed = true
		return nil, nil
	})
	if err != nil {
		return nil, false, err
	}
	return rec, changed, nil
}

// buildStatsUpdate 由流水记录推导统计增量，sign 为 +1（记录）或 -1（撤销），
// 保证撤销回减的恰好是当初累加的数值
func buildStatsUpdate(rec *Contribution, sign int) bson.M {
	inc := bson.M{
		"total_contributions": int64(sign),
		"total_points":        int64(sign * rec.Weight),
	}
	inc["contributions_by_kind."+rec.Kind] = int64(sign)
	inc["points_by_kind."+rec.Kind] = int64(sign * rec.Weight)
	if rec.TopicDomain != "" {
		inc["topic_domain_contributions."+rec.TopicDomain] = int64(sign)
	}
	if rec.AssetType != "" {
		inc["asset_type_contributions."+rec.AssetType] = int64(sign)
	}

	set := bson.M{"updated_at": time.Now()}
	if sign > 0 {
		set["user_name"] = rec.UserName
		set["user_avatar"] = rec.UserAvatar
		set["last_contribution_at"] = rec.CreatedAt
	}

	return bson.M{"$inc": inc, "$set": set}
}

func (s *contributionRepoImpl) GetByID(ctx context.Context, id string) (*Contribution, error) {
	var rec Contribution
	err := s.contribution.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get contribution")
	}
	return &rec, nil
}

func (s *contributionRepoImpl) FindByUser(ctx context.Context, userID uint64, f ContributionFilter) ([]*Contribution, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  consts.ContributionStatusActive,
	}
	if f.Kind != "" {
		filter["kind"] = f.Kind
	}
	if f.AssetID != "" {
		filter["asset_id"] = f.AssetID
	}
	return s.find(ctx, filter, f.Limit)
}

func (s *contributionRepoImpl) FindByAsset(ctx context.Context, assetID string, limit int64) ([]*Contribution, error) {
	filter := bson.M{
		"asset_id": assetID,
		"status":   consts.ContributionStatusActive,
	}
	return s.find(ctx, filter, limit)
}

func (s *contributionRepoImpl) FindRecent(ctx context.Context, f ActivityFilter) ([]*Contribution, error) {
	filter := bson.M{"status": consts.ContributionStatusActive}
	if f.UserID != 0 {
		filter["user_id"] = f.UserID
	}
	if f.AssetID != "" {
		filter["asset_id"] = f.AssetID
	}
	return s.find(ctx, filter, f.Limit)
}

func (s *contributionRepoImpl) FindWindow(ctx context.Context, q WindowQuery) ([]*Contribution, error) {
	filter := bson.M{"status": consts.ContributionStatusActive}
	if q.StartMillis > 0 {
		filter["created_at_ms"] = bson.M{"$gte": q.StartMillis}
	}
	if q.TopicDomain != "" {
		filter["topic_domain"] = q.TopicDomain
	}
	if q.AssetType != "" {
		filter["asset_type"] = q.AssetType
	}
	return s.find(ctx, filter, q.ScanCap)
}

// find 统一按 created_at_ms 降序返回（最新在前）
func (s *contributionRepoImpl) find(ctx context.Context, filter bson.M, limit int64) ([]*Contribution, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at_ms", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := s.contribution.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find contributions")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var records []*Contribution
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "decode contributions")
	}
	return records, nil
}

func (s *contributionRepoImpl) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "operationType", Value: "insert"}}}},
	}
	cs, err := s.contribution.Watch(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "watch contributions")
	}
	return cs, nil
}
