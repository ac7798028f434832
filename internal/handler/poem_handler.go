// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/skfghd/threelinepoem/internal/middleware"
	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/internal/service"
	"github.com/skfghd/threelinepoem/pkg/log"
	"github.com/skfghd/threelinepoem/pkg/sanitize"
)

// PoemHandler 负责处理三行诗生成相关的 API 请求。
type PoemHandler struct {
	poemService service.PoemService
}

// NewPoemHandler 创建一个新的 PoemHandler 实例。
func NewPoemHandler(poemService service.PoemService) *PoemHandler {
	return &PoemHandler{poemService: poemService}
}

// CreatePoemRequest 定义了生成三行诗 API 的请求体结构。
type CreatePoemRequest struct {
	InputWord string `json:"inputWord" binding:"required"`
	Mood      string `json:"mood" binding:"required"`
}

// Create 处理三行诗生成请求。
// 校验必须在触碰用量计数和生成模型之前完成；非法输入直接 400 返回。
func (h *PoemHandler) Create(c *gin.Context) {
	var req CreatePoemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Create poem: invalid request payload, error: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "입력값이 올바르지 않습니다."})
		return
	}

	word := sanitize.Input(req.InputWord)
	mood := model.Mood(sanitize.Input(req.Mood))
	if details := validatePoemRequest(word, mood); len(details) > 0 {
		log.Warnf("Create poem: validation failed, details: %v", details)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "입력값이 올바르지 않습니다.",
			"details": details,
		})
		return
	}

	start := time.Now()
	poem := h.poemService.Compose(c.Request.Context(), word, mood)
	middleware.RecordPoemGenerated(poem.UsedAI, time.Since(start))

	// 不记录输入单词本身，只记录长度和分支
	log.Infow("poem generated",
		"wordLength", utf8.RuneCountInString(word),
		"mood", mood,
		"usedAI", poem.UsedAI,
	)
	c.JSON(http.StatusCreated, poem)
}

// List 返回空列表。出于隐私考虑服务端不保存任何生成结果。
func (h *PoemHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, []model.Poem{})
}

// validatePoemRequest 校验单词与情绪标签，返回逐字段的错误信息。
// 字数限制为 2~5，且每个字必须落在韩文音节区（U+AC00~U+D7A3）。
func validatePoemRequest(word string, mood model.Mood) []string {
	var details []string

	runes := []rune(word)
	if len(runes) < 2 || len(runes) > 5 {
		details = append(details, "단어는 2~5글자여야 합니다")
	}
	for _, r := range runes {
		if r < 0xAC00 || r > 0xD7A3 {
			details = append(details, "한글만 입력 가능합니다")
			break
		}
	}
	if !mood.Valid() {
		details = append(details, "지원하지 않는 분위기입니다")
	}
	return details
}
