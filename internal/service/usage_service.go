// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"time"

	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/internal/repository"
	"github.com/skfghd/threelinepoem/pkg/log"
	"github.com/skfghd/threelinepoem/pkg/sanitize"
)

// UsageService 接口定义了 AI 每日用量配额相关的业务操作。
type UsageService interface {
	Today(ctx context.Context) model.DailyUsage
	CanUseAI(ctx context.Context) bool
	Increment(ctx context.Context) error
	Stats(ctx context.Context) model.UsageStats
}

// usageService 是 UsageService 接口的实现。
type usageService struct {
	usageRepo  repository.UsageRepository
	dailyLimit int64
	location   *time.Location
	resetHour  int
}

// NewUsageService 创建一个新的 UsageService 实例。
// timezone 解析失败时退回固定的 UTC+9（服务面向韩国用户）。
func NewUsageService(usageRepo repository.UsageRepository, dailyLimit int64, timezone string, resetHour int) UsageService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warnf("invalid usage timezone '%s', falling back to KST: %v", timezone, err)
		loc = time.FixedZone("KST", 9*60*60)
	}
	return &usageService{
		usageRepo:  usageRepo,
		dailyLimit: dailyLimit,
		location:   loc,
		resetHour:  resetHour,
	}
}

// todayKey 返回配置时区下的自然日键（YYYY-MM-DD）。
func (s *usageService) todayKey() string {
	return time.Now().In(s.location).Format("2006-01-02")
}

// Today 返回今天的用量记录。新的一天首次访问时计数尚不存在，视为 0。
// 读取失败时退回 count=0 的安全默认值：用量子系统不能成为三行诗功能的单点故障。
func (s *usageService) Today(ctx context.Context) model.DailyUsage {
	date := s.todayKey()
	count, err := s.usageRepo.GetCount(ctx, date)
	if err != nil {
		log.Errorf("failed to read daily usage, using safe defaults: %s", sanitize.ErrorMessage(err))
		count = 0
	}
	return model.DailyUsage{Date: date, Count: count, Limit: s.dailyLimit}
}

// CanUseAI 判断今天是否还允许调用 AI。
// 读取失败时返回 false：宁可退回规则生成，也不冒超出配额调用 AI 的风险。
func (s *usageService) CanUseAI(ctx context.Context) bool {
	count, err := s.usageRepo.GetCount(ctx, s.todayKey())
	if err != nil {
		log.Errorf("failed to check AI usage limit, failing closed: %s", sanitize.ErrorMessage(err))
		return false
	}
	return count < s.dailyLimit
}

// Increment 把今天的计数原子加一。只应在 AI 调用完整成功后调用一次。
func (s *usageService) Increment(ctx context.Context) error {
	count, err := s.usageRepo.Increment(ctx, s.todayKey())
	if err != nil {
		return err
	}
	log.Infow("AI usage incremented", "count", count, "limit", s.dailyLimit)
	return nil
}

// Stats 返回今天的用量统计。remaining 永不为负。
func (s *usageService) Stats(ctx context.Context) model.UsageStats {
	usage := s.Today(ctx)
	remaining := usage.Limit - usage.Count
	if remaining < 0 {
		remaining = 0
	}
	return model.UsageStats{
		Current:   usage.Count,
		Limit:     usage.Limit,
		Remaining: remaining,
		ResetTime: s.nextReset(time.Now()),
	}
}

// nextReset 返回严格晚于 now 的下一个重置时刻（配置时区的 resetHour 整点）。
// 当地时间已过重置点时落到次日。
func (s *usageService) nextReset(now time.Time) time.Time {
	local := now.In(s.location)
	reset := time.Date(local.Year(), local.Month(), local.Day(), s.resetHour, 0, 0, 0, s.location)
	if !local.Before(reset) {
		reset = reset.AddDate(0, 0, 1)
	}
	return reset
}
