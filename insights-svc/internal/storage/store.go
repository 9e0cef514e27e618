package storage

import (
	"context"
	"time"

	"cafenine/insights-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// AllBranches is the ranking every order also counts towards.
const AllBranches = "all"

const dailyTTL = 7 * 24 * time.Hour

func DailyKey(day time.Time, branchID string) string {
	return "analytics:daily:" + day.UTC().Format("2006-01-02") + ":" + branchID
}

func AllTimeKey(branchID string) string {
	return "analytics:alltime:" + branchID
}

type Store struct {
	rdb redis.Cmdable
}

func NewStore(rdb redis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

// RecordOrder bumps each item by its quantity in the branch and all-branch rankings.
func (s *Store) RecordOrder(ctx context.Context, branchID string, day time.Time, items []domain.EventItem) error {
	branches := []string{AllBranches}
	if branchID != "" && branchID != AllBranches {
		branches = append(branches, branchID)
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, branch := range branches {
			dailyKey := DailyKey(day, branch)
			allTimeKey := AllTimeKey(branch)
			for _, item := range items {
				if item.Quantity <= 0 {
					continue
				}
				pipe.ZIncrBy(ctx, dailyKey, float64(item.Quantity), item.ItemID)
				pipe.ZIncrBy(ctx, allTimeKey, float64(item.Quantity), item.ItemID)
			}
			pipe.Expire(ctx, dailyKey, dailyTTL)
		}
		return nil
	})
	return err
}

func (s *Store) TopItems(ctx context.Context, key string, limit int) ([]domain.ItemScore, error) {
	results, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	top := make([]domain.ItemScore, 0, len(results))
	for _, result := range results {
		member, ok := result.Member.(string)
		if !ok {
			continue
		}
		top = append(top, domain.ItemScore{ItemID: member, Score: result.Score})
	}
	return top, nil
}
