// Package model 包含了应用的数据模型定义。
package model

import "time"

// Mood 表示三行诗的情绪风格。
type Mood string

const (
	MoodFunny    Mood = "funny"
	MoodWarm     Mood = "warm"
	MoodCreative Mood = "creative"
	MoodPoetic   Mood = "poetic"
)

// Valid 判断情绪标签是否是四种受支持的取值之一。
func (m Mood) Valid() bool {
	switch m {
	case MoodFunny, MoodWarm, MoodCreative, MoodPoetic:
		return true
	}
	return false
}

// Label 返回用于展示的风格名。仅作展示用途，不影响生成逻辑。
func (m Mood) Label() string {
	switch m {
	case MoodFunny:
		return "playful"
	case MoodWarm:
		return "warm"
	case MoodCreative:
		return "creative"
	case MoodPoetic:
		return "lyrical"
	}
	return string(m)
}

// Poem 代表一次生成的三行诗结果。
// 出于隐私考虑结果不做任何持久化，生成后直接返回给调用方。
type Poem struct {
	InputWord       string    `json:"inputWord"`
	Mood            Mood      `json:"mood"`
	Lines           []string  `json:"lines"`
	CreatedAt       time.Time `json:"createdAt"`
	UsedAI          bool      `json:"usedAI"`
	FallbackMessage string    `json:"fallbackMessage,omitempty"`
}
