package service

import (
	"Mythica/internal/pkg/kafka"
	"context"
)

// EventBus 贡献事件发布出口，供徽章/成就等下游监听，
// 由 kafka.EventProducer 实现
type EventBus interface {
	Publish(ctx context.Context, evt *kafka.ContributionEvent) error
}
