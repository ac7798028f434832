// Package gemini 提供了与生成模型交互的客户端。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/skfghd/threelinepoem/internal/config"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Google API Key 的固定格式：AIza 前缀加 35 位字母数字，总长 39。
var apiKeyPattern = regexp.MustCompile(`^AIza[0-9A-Za-z_-]{35}$`)

// Client 定义了生成模型客户端的接口。
// 业务层只依赖这个窄接口，测试时可以用桩实现替换。
type Client interface {
	// Generate 以单条提示词调用一次生成接口，返回完整文本。
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	client *genai.Client
	model  string
}

// NewClient 创建一个 Gemini 客户端。
// 客户端在进程启动时构造一次，随依赖注入向下传递，不使用隐藏的全局单例。
func NewClient(ctx context.Context, cfg config.GeminiConfig) (Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &geminiClient{client: client, model: model}, nil
}

// validateAPIKey 在启动时校验 API Key 的格式。
// 把配错的 Key 拦在进程启动阶段，而不是等第一次调用才失败。
// 错误信息里绝不回显 Key 本身。
func validateAPIKey(apiKey string) error {
	if apiKey == "" {
		return errors.New("gemini api key is required")
	}
	if !apiKeyPattern.MatchString(apiKey) {
		return errors.New("gemini api key has an invalid format")
	}
	return nil
}

// Generate 调用一次 GenerateContent 并返回第一个候选的文本。
func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini api: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned an empty response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
