package service

import (
	"strings"

	"github.com/skfghd/threelinepoem/internal/model"
)

// fallbackPatterns 是规则生成所用的固定短语表，按情绪分组，每组五条。
var fallbackPatterns = map[model.Mood][]string{
	model.MoodFunny: {
		"이런 날엔 웃음만 나와",
		"온 세상이 재미있어 보여",
		"유쾌한 하루가 시작돼",
		"엄청 신나는 기분이야",
		"어디서든 웃음소리가",
	},
	model.MoodWarm: {
		"이른 아침 따스한 햇살이",
		"온 마음을 포근하게 감싸",
		"언제나 행복한 추억들",
		"엄마의 사랑처럼 따뜻해",
		"어깨 위에 내려앉는 평화",
	},
	model.MoodCreative: {
		"이상한 나라 앨리스처럼",
		"온갖 상상이 펼쳐져",
		"유니콘이 뛰어노는 들판",
		"엄청난 모험이 기다려",
		"어떤 꿈도 이룰 수 있어",
	},
	model.MoodPoetic: {
		"이슬 맺힌 꽃잎처럼 곱고",
		"온 세상에 향기를 퍼뜨려",
		"유월의 바람결에 실려",
		"엄숙한 아름다움으로",
		"어둠 속에서도 빛나는",
	},
}

// fallbackMessages 是达到每日配额时返回给用户的按情绪提示文案。
var fallbackMessages = map[model.Mood]string{
	model.MoodFunny:    "AI 서비스가 일시 중단되어 기본 패턴으로 재미있는 삼행시를 만들어드렸어요! 😄",
	model.MoodWarm:     "AI 서비스가 일시 중단되어 기본 패턴으로 따뜻한 삼행시를 만들어드렸어요! 🤗",
	model.MoodCreative: "AI 서비스가 일시 중단되어 기본 패턴으로 창의적인 삼행시를 만들어드렸어요! ✨",
	model.MoodPoetic:   "AI 서비스가 일시 중단되어 기본 패턴으로 시적인 삼행시를 만들어드렸어요! 🌸",
}

// GenerateFallbackPoem 基于固定短语表为输入的每个字生成一行。
// 第 i 行取 i mod 5 号模板，并把模板首个词的第一个字替换为该输入字。
// 这个分支永不失败，也不触碰用量计数。
func GenerateFallbackPoem(word string, mood model.Mood) []string {
	patterns, ok := fallbackPatterns[mood]
	if !ok {
		patterns = fallbackPatterns[model.MoodWarm]
	}

	chars := []rune(word)
	lines := make([]string, 0, len(chars))
	for i, char := range chars {
		words := strings.Split(patterns[i%len(patterns)], " ")
		if len(words) > 0 {
			first := []rune(words[0])
			words[0] = string(char) + string(first[1:])
		}
		lines = append(lines, strings.Join(words, " "))
	}
	return lines
}

// FallbackMessage 返回达到配额时按情绪区分的提示文案。
func FallbackMessage(mood model.Mood) string {
	if msg, ok := fallbackMessages[mood]; ok {
		return msg
	}
	return fallbackMessages[model.MoodWarm]
}
