package model

import "time"

// DailyUsage 代表某个自然日的 AI 调用用量。
// 计数存放在 Redis 的按日键上，这里是读取时组装出的视图。
type DailyUsage struct {
	Date  string `json:"date"` // YYYY-MM-DD（首尔时区）
	Count int64  `json:"count"`
	Limit int64  `json:"limit"`
}

// UsageStats 是对外暴露的用量统计，读取时即时计算，不落库。
type UsageStats struct {
	Current   int64     `json:"current"`
	Limit     int64     `json:"limit"`
	Remaining int64     `json:"remaining"`
	ResetTime time.Time `json:"resetTime"`
}
