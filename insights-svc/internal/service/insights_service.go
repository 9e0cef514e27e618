package service

import (
	"context"
	"errors"
	"time"

	"cafenine/insights-svc/internal/domain"
	"cafenine/insights-svc/internal/storage"
)

const (
	PeriodToday = "today"
	PeriodAll   = "all"

	DefaultLimit = 10
	MaxLimit     = 50
)

var (
	ErrInvalidPeriod = errors.New("period must be today or all")
	ErrInvalidLimit  = errors.New("limit must be between 1 and 50")
)

type InsightsService struct {
	Store StoreInterface
	now   func() time.Time
}

func NewInsightsService(store StoreInterface) *InsightsService {
	return &InsightsService{Store: store, now: time.Now}
}

func (s *InsightsService) SetClock(now func() time.Time) {
	s.now = now
}

// Popular ranks items by quantity ordered. An empty branch means every branch.
func (s *InsightsService) Popular(ctx context.Context, branchID, period string, limit int) (domain.PopularResponse, error) {
	if limit < 1 || limit > MaxLimit {
		return domain.PopularResponse{}, ErrInvalidLimit
	}
	if branchID == "" {
		branchID = storage.AllBranches
	}

	var key string
	switch period {
	case PeriodToday:
		key = storage.DailyKey(s.now(), branchID)
	case PeriodAll:
		key = storage.AllTimeKey(branchID)
	default:
		return domain.PopularResponse{}, ErrInvalidPeriod
	}

	items, err := s.Store.TopItems(ctx, key, limit)
	if err != nil {
		return domain.PopularResponse{}, err
	}
	return domain.PopularResponse{Branch: branchID, Period: period, Items: items}, nil
}
