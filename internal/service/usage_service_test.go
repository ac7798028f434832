package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUsageRepository is a mock type for the UsageRepository interface
type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) GetCount(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageRepository) Increment(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

func newTestUsageService(repo *MockUsageRepository, limit int64) *usageService {
	return NewUsageService(repo, limit, "Asia/Seoul", 5).(*usageService)
}

func TestCanUseAIBelowLimit(t *testing.T) {
	repo := new(MockUsageRepository)
	repo.On("GetCount", mock.Anything, mock.AnythingOfType("string")).Return(int64(7), nil)

	s := newTestUsageService(repo, 125)
	assert.True(t, s.CanUseAI(context.Background()))
}

func TestCanUseAIAtLimit(t *testing.T) {
	repo := new(MockUsageRepository)
	repo.On("GetCount", mock.Anything, mock.AnythingOfType("string")).Return(int64(125), nil)

	s := newTestUsageService(repo, 125)
	assert.False(t, s.CanUseAI(context.Background()))
}

func TestCanUseAIFailsClosedOnStorageError(t *testing.T) {
	repo := new(MockUsageRepository)
	repo.On("GetCount", mock.Anything, mock.AnythingOfType("string")).Return(int64(0), errors.New("redis: connection refused"))

	s := newTestUsageService(repo, 125)
	assert.False(t, s.CanUseAI(context.Background()))
}

func TestStatsRemainingNeverNegative(t *testing.T) {
	cases := []struct {
		name      string
		count     int64
		limit     int64
		remaining int64
	}{
		{"fresh day", 0, 125, 125},
		{"partially used", 100, 125, 25},
		{"at limit", 125, 125, 0},
		{"over limit", 130, 125, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockUsageRepository)
			repo.On("GetCount", mock.Anything, mock.AnythingOfType("string")).Return(tc.count, nil)

			s := newTestUsageService(repo, tc.limit)
			stats := s.Stats(context.Background())
			assert.Equal(t, tc.count, stats.Current)
			assert.Equal(t, tc.limit, stats.Limit)
			assert.Equal(t, tc.remaining, stats.Remaining)
		})
	}
}

func TestStatsSafeDefaultsOnStorageError(t *testing.T) {
	repo := new(MockUsageRepository)
	repo.On("GetCount", mock.Anything, mock.AnythingOfType("string")).Return(int64(0), errors.New("redis down"))

	s := newTestUsageService(repo, 125)
	stats := s.Stats(context.Background())
	assert.Equal(t, int64(0), stats.Current)
	assert.Equal(t, int64(125), stats.Remaining)
}

func TestNextResetBeforeResetHour(t *testing.T) {
	s := newTestUsageService(new(MockUsageRepository), 125)

	now := time.Date(2026, 1, 10, 4, 59, 0, 0, s.location)
	reset := s.nextReset(now)
	assert.Equal(t, time.Date(2026, 1, 10, 5, 0, 0, 0, s.location), reset)
	assert.True(t, reset.After(now))
}

func TestNextResetAfterResetHour(t *testing.T) {
	s := newTestUsageService(new(MockUsageRepository), 125)

	now := time.Date(2026, 1, 10, 23, 30, 0, 0, s.location)
	reset := s.nextReset(now)
	assert.Equal(t, time.Date(2026, 1, 11, 5, 0, 0, 0, s.location), reset)
}

func TestNextResetExactlyAtResetHourRollsToNextDay(t *testing.T) {
	s := newTestUsageService(new(MockUsageRepository), 125)

	now := time.Date(2026, 1, 10, 5, 0, 0, 0, s.location)
	reset := s.nextReset(now)
	assert.Equal(t, time.Date(2026, 1, 11, 5, 0, 0, 0, s.location), reset)
	assert.True(t, reset.After(now))
}

func TestTodayLazyZeroForNewDay(t *testing.T) {
	repo := new(MockUsageRepository)
	repo.On("GetCount", mock.Anything, mock.AnythingOfType("string")).Return(int64(0), nil)

	s := newTestUsageService(repo, 125)
	usage := s.Today(context.Background())
	assert.Equal(t, int64(0), usage.Count)
	assert.Equal(t, int64(125), usage.Limit)
	assert.Equal(t, time.Now().In(s.location).Format("2006-01-02"), usage.Date)
}
