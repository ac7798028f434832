package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 校验请求头中的管理员令牌。
// 问询回复是唯一的特权操作，这里用静态令牌做门禁，不引入完整的账号体系。
// 令牌未配置时接口整体禁用。
func AdminAuthMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "관리자 기능이 비활성화되어 있습니다."})
			return
		}

		provided := c.GetHeader("X-Admin-Token")
		// 常数时间比较，不泄露匹配的前缀长度
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "관리자 인증에 실패했습니다."})
			return
		}

		c.Next()
	}
}
