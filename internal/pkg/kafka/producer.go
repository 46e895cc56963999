package kafka

import (
	"Mythica/internal/api/config"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// 徽章/成就侧的下游监听这些事件类型
const (
	EventContributionRecorded  = "contribution-recorded"
	EventStreakAchieved        = "streak-achieved"
	EventContributionMilestone = "contribution-milestone"
)

// ContributionEvent 投递到事件总线的统一载荷
type ContributionEvent struct {
	Event       string `json:"event"`
	UserID      uint64 `json:"user_id"`
	RecordID    string `json:"record_id,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Weight      int    `json:"weight,omitempty"`
	AssetID     string `json:"asset_id,omitempty"`
	AssetType   string `json:"asset_type,omitempty"`
	TopicDomain string `json:"topic_domain,omitempty"`

	ThresholdKey string `json:"threshold_key,omitempty"`
	Badge        string `json:"badge,omitempty"`

	Milestone   int64 `json:"milestone,omitempty"`
	TotalPoints int64 `json:"total_points,omitempty"`

	EmittedAt int64 `json:"emitted_at"`
}

// EventProducer 向事件总线发布贡献相关事件，
// 发布失败只记录日志，绝不影响已提交的贡献写入
type EventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventProducer(cfg *config.Config) (*EventProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	log.Info("Kafka event producer started", "topic", cfg.Kafka.EventTopic)
	return &EventProducer{
		producer: producer,
		topic:    cfg.Kafka.EventTopic,
	}, nil
}

// Publish 按用户分区发布事件，保证同一用户的事件有序
func (s *EventProducer) Publish(ctx context.Context, evt *ContributionEvent) error {
	evt.EmittedAt = time.Now().UnixMilli()

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(evt.UserID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "event published",
		"event", evt.Event,
		"user_id", evt.UserID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (s *EventProducer) Close() error {
	return s.producer.Close()
}
