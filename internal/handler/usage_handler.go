package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skfghd/threelinepoem/internal/service"
)

// UsageHandler 负责处理用量统计相关的 API 请求。
type UsageHandler struct {
	usageService service.UsageService
}

// NewUsageHandler 创建一个新的 UsageHandler 实例。
func NewUsageHandler(usageService service.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// Stats 返回今日的 AI 用量统计。
// 底层读取失败时 service 层已降级为安全默认值，这个接口不会返回 5xx。
func (h *UsageHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.usageService.Stats(c.Request.Context()))
}
