package service

import (
	"context"
	"time"

	"cafenine/insights-svc/internal/domain"
	"cafenine/insights-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, branchID string, day time.Time, items []domain.EventItem) error
	TopItems(ctx context.Context, key string, limit int) ([]domain.ItemScore, error)
}

type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.Event)
}

type InsightsInterface interface {
	Popular(ctx context.Context, branchID, period string, limit int) (domain.PopularResponse, error)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ Reader            = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
	_ InsightsInterface = (*InsightsService)(nil)
)
