// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const usageKeyPrefix = "daily_usage:"

// UsageRepository 定义了每日 AI 用量计数的操作接口。
type UsageRepository interface {
	GetCount(ctx context.Context, date string) (int64, error)
	Increment(ctx context.Context, date string) (int64, error)
}

type redisUsageRepository struct {
	redisClient *redis.Client
}

// NewUsageRepository 创建一个新的 UsageRepository 实例。
func NewUsageRepository(redisClient *redis.Client) UsageRepository {
	return &redisUsageRepository{redisClient: redisClient}
}

// GetCount 返回指定日期的调用计数，键不存在时视为 0。
func (r *redisUsageRepository) GetCount(ctx context.Context, date string) (int64, error) {
	count, err := r.redisClient.Get(ctx, usageKeyPrefix+date).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get daily usage: %w", err)
	}
	return count, nil
}

// Increment 将指定日期的计数原子加一并返回新值。
// INCR 对不存在的键从 0 开始创建，创建和累加是同一条原子命令，
// 并发的首次访问也只会收敛到同一条计数记录，不存在先查再建的竞态。
func (r *redisUsageRepository) Increment(ctx context.Context, date string) (int64, error) {
	count, err := r.redisClient.Incr(ctx, usageKeyPrefix+date).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment daily usage: %w", err)
	}
	return count, nil
}
