package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/pkg/gemini"
	"github.com/skfghd/threelinepoem/pkg/log"
	"github.com/skfghd/threelinepoem/pkg/sanitize"
)

// aiFailedMessage 是 AI 调用失败、降级到规则分支时返回给用户的提示文案。
const aiFailedMessage = "AI 생성 중 오류가 발생하여 규칙 기반 삼행시로 제공됩니다 😊"

// moodInstructions 是提示词里按情绪区分的语气描述。
var moodInstructions = map[model.Mood]string{
	model.MoodFunny:    "유머러스하고 재미있게",
	model.MoodWarm:     "따뜻하고 감동적으로",
	model.MoodCreative: "창의적이고 상상력 넘치게",
	model.MoodPoetic:   "시적이고 아름답게",
}

// moodAdjectives 用于补齐缺行时的占位句（"<字>로 시작하는 <形容词> 이야기"）。
var moodAdjectives = map[model.Mood]string{
	model.MoodFunny:    "재미있는",
	model.MoodWarm:     "따뜻한",
	model.MoodCreative: "창의적인",
	model.MoodPoetic:   "아름다운",
}

// PoemService 接口定义了三行诗生成的业务操作。
type PoemService interface {
	Compose(ctx context.Context, word string, mood model.Mood) model.Poem
}

// poemService 是 PoemService 接口的实现。
type poemService struct {
	geminiClient gemini.Client
	usageService UsageService
}

// NewPoemService 创建一个新的 PoemService 实例。
func NewPoemService(geminiClient gemini.Client, usageService UsageService) PoemService {
	return &poemService{
		geminiClient: geminiClient,
		usageService: usageService,
	}
}

// Compose 生成一首三行诗。
// 配额允许时走 AI 分支，调用完整成功后恰好递增一次计数；任何上游失败
// 都静默降级到规则分支并附带提示文案，不把错误抛给调用方。
// 两个分支都保证行数等于输入单词的字数。
func (s *poemService) Compose(ctx context.Context, word string, mood model.Mood) model.Poem {
	poem := model.Poem{
		InputWord: word,
		Mood:      mood,
		CreatedAt: time.Now(),
	}

	if !s.usageService.CanUseAI(ctx) {
		poem.Lines = GenerateFallbackPoem(word, mood)
		poem.FallbackMessage = FallbackMessage(mood)
		return poem
	}

	lines, err := s.generateWithAI(ctx, word, mood)
	if err != nil {
		log.Errorf("AI generation failed, using fallback: %s", sanitize.ErrorMessage(err))
		poem.Lines = GenerateFallbackPoem(word, mood)
		poem.FallbackMessage = aiFailedMessage
		return poem
	}

	// 计数只在 AI 调用完整成功之后递增；请求中途被取消不会留下半次计数。
	if incErr := s.usageService.Increment(ctx); incErr != nil {
		log.Errorf("failed to increment AI usage after generation: %s", sanitize.ErrorMessage(incErr))
	}
	poem.Lines = lines
	poem.UsedAI = true
	return poem
}

// generateWithAI 构造提示词并调用一次生成模型，把输出整理成逐字一行。
func (s *poemService) generateWithAI(ctx context.Context, word string, mood model.Mood) ([]string, error) {
	text, err := s.geminiClient.Generate(ctx, buildPrompt(word, mood))
	if err != nil {
		return nil, err
	}
	return parseLines(text, word, mood), nil
}

// buildPrompt 构造生成三行诗的韩语提示词，内嵌单词、字数和语气描述。
func buildPrompt(word string, mood model.Mood) string {
	instruction, ok := moodInstructions[mood]
	if !ok {
		instruction = "자연스럽게"
	}

	chars := []rune(word)
	var example strings.Builder
	for i, char := range chars {
		example.WriteString(fmt.Sprintf("%c: (%d번째 줄)\n", char, i+1))
	}

	return fmt.Sprintf(`한국어 삼행시를 생성해주세요.

단어: "%s"
분위기: %s

규칙:
1. 입력된 단어의 각 글자로 시작하는 %d줄의 시를 만들어주세요
2. 각 줄은 해당 글자로 시작해야 합니다
3. 전체적으로 통일성 있고 자연스러운 내용이어야 합니다
4. %s 톤으로 작성해주세요
5. 각 줄은 적절한 길이(10-20자 정도)로 작성해주세요
6. 일상적이고 친근한 표현을 사용해주세요

예시 형식:
%s
응답은 각 줄을 개행문자로 구분하여 주세요.`, word, instruction, len(chars), instruction, example.String())
}

// parseLines 把模型输出整理成恰好逐字一行：按换行拆分、去空行、
// 剥掉 "글자:" 式标签前缀、截断到字数，不足的行用占位句补齐。
func parseLines(text, word string, mood model.Mood) []string {
	chars := []rune(word)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := strings.Index(line, ":"); idx != -1 {
			line = strings.TrimSpace(line[idx+1:])
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == len(chars) {
			break
		}
	}

	adjective, ok := moodAdjectives[mood]
	if !ok {
		adjective = "아름다운"
	}
	for i := len(lines); i < len(chars); i++ {
		lines = append(lines, fmt.Sprintf("%c으로 시작하는 %s 이야기", chars[i], adjective))
	}
	return lines
}
