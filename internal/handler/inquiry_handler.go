package handler

import (
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/internal/service"
	"github.com/skfghd/threelinepoem/pkg/log"
	"github.com/skfghd/threelinepoem/pkg/sanitize"
	"gorm.io/gorm"
)

// InquiryHandler 负责处理问询板相关的 API 请求。
type InquiryHandler struct {
	inquiryService service.InquiryService
}

// NewInquiryHandler 创建一个新的 InquiryHandler 实例。
func NewInquiryHandler(inquiryService service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// CreateInquiryRequest 定义了创建问询 API 的请求体结构。
type CreateInquiryRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Category  string `json:"category" binding:"required,max=20"`
	Title     string `json:"title" binding:"required,max=100"`
	Content   string `json:"content" binding:"required,max=1000"`
	IsPrivate bool   `json:"isPrivate"`
	Password  string `json:"password"`
}

// Create 处理问询创建请求。私密问询必须附带 4~20 位密码。
func (h *InquiryHandler) Create(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Create inquiry: invalid request payload, error: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "입력값이 올바르지 않습니다."})
		return
	}

	if req.IsPrivate {
		if pl := utf8.RuneCountInString(req.Password); pl < 4 || pl > 20 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "입력값이 올바르지 않습니다.",
				"details": []string{"비밀글은 4~20자의 비밀번호가 필요합니다"},
			})
			return
		}
	}

	inquiry := &model.Inquiry{
		Name:      req.Name,
		Email:     req.Email,
		Category:  req.Category,
		Title:     req.Title,
		Content:   req.Content,
		IsPrivate: req.IsPrivate,
	}

	id, err := h.inquiryService.Create(inquiry, req.Password)
	if err != nil {
		// 问询创建是不能安全跳过的写入，存储失败向上返回 500。
		// 存储错误可能携带 DSN 等敏感内容，落日志前先脱敏
		log.Errorf("Create inquiry: failed to create: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "문의 등록 중 오류가 발생했습니다."})
		return
	}

	log.Infof("Inquiry %d created, private=%t", id, inquiry.IsPrivate)
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "문의가 성공적으로 등록되었습니다."})
}

// List 返回问询列表（摘要视图，不含回复）。
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.inquiryService.List()
	if err != nil {
		log.Errorf("List inquiries: failed to fetch: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "문의 목록을 가져오는 중 오류가 발생했습니다."})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// GetByID 返回一条问询及其全部回复。
func (h *InquiryHandler) GetByID(c *gin.Context) {
	id, ok := parseInquiryID(c)
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "문의를 찾을 수 없습니다."})
			return
		}
		log.Errorf("Get inquiry: failed to fetch: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "문의를 가져오는 중 오류가 발생했습니다."})
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// VerifyPasswordRequest 定义了私密问询密码校验 API 的请求体结构。
type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPassword 校验私密问询的访问密码，返回 {isValid}。
func (h *InquiryHandler) VerifyPassword(c *gin.Context) {
	id, ok := parseInquiryID(c)
	if !ok {
		return
	}

	var req VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "입력값이 올바르지 않습니다."})
		return
	}

	isValid, err := h.inquiryService.VerifyPassword(id, req.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "문의를 찾을 수 없습니다."})
			return
		}
		log.Errorf("Verify inquiry password: failed: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "비밀번호 확인 중 오류가 발생했습니다."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isValid": isValid})
}

// AddReplyRequest 定义了追加管理员回复 API 的请求体结构。
type AddReplyRequest struct {
	AdminName string `json:"adminName" binding:"required,max=50"`
	Content   string `json:"content" binding:"required,max=1000"`
}

// AddReply 追加一条管理员回复。管理员令牌校验在前置中间件完成。
func (h *InquiryHandler) AddReply(c *gin.Context) {
	id, ok := parseInquiryID(c)
	if !ok {
		return
	}

	var req AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Add reply: invalid request payload, error: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "입력값이 올바르지 않습니다."})
		return
	}

	if err := h.inquiryService.AddReply(id, req.AdminName, req.Content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "문의를 찾을 수 없습니다."})
			return
		}
		log.Errorf("Add reply: failed to create: %s", sanitize.ErrorMessage(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "답변 등록 중 오류가 발생했습니다."})
		return
	}

	log.Infof("Reply added to inquiry %d", id)
	c.JSON(http.StatusCreated, gin.H{"message": "답변이 등록되었습니다."})
}

// parseInquiryID 从路径参数解析问询 ID，非法时直接写出 404。
func parseInquiryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "문의를 찾을 수 없습니다."})
		return 0, false
	}
	return uint(id), true
}
