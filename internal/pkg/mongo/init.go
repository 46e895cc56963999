package mongo

import (
	"Mythica/internal/api/config"
	"Mythica/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	contributionColl = "contribution"
	userStatsColl    = "user_stats"
)

// InitMongo 建立连接并返回 Database 引用，同时初始化索引。
// 事务与 Change Stream 要求目标实例为副本集。
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)

	if err = ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	contribution := db.Collection(contributionColl)
	_, err := contribution.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at_ms", Value: -1}}},
		{Keys: bson.D{{Key: "asset_id", Value: 1}, {Key: "created_at_ms", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at_ms", Value: -1}}},
		{Keys: bson.D{{Key: "topic_domain", Value: 1}, {Key: "created_at_ms", Value: -1}}},
		{Keys: bson.D{{Key: "asset_type", Value: 1}, {Key: "created_at_ms", Value: -1}}},
	})
	if err != nil {
		return err
	}

	stats := db.Collection(userStatsColl)
	_, err = stats.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "total_points", Value: -1}},
	})
	return err
}
