package service

import (
	"fmt"

	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/internal/repository"
	"github.com/skfghd/threelinepoem/pkg/hash"
)

// InquiryService 接口定义了问询板相关的业务操作。
type InquiryService interface {
	Create(inquiry *model.Inquiry, password string) (uint, error)
	List() ([]model.Inquiry, error)
	GetByID(id uint) (*model.Inquiry, error)
	VerifyPassword(id uint, candidate string) (bool, error)
	AddReply(inquiryID uint, adminName, content string) error
}

// inquiryService 是 InquiryService 接口的实现。
type inquiryService struct {
	inquiryRepo repository.InquiryRepository
}

// NewInquiryService 创建一个新的 InquiryService 实例。
func NewInquiryService(inquiryRepo repository.InquiryRepository) InquiryService {
	return &inquiryService{inquiryRepo: inquiryRepo}
}

// Create 创建一条新的问询，初始状态为 pending。
// 私密问询的密码先做 bcrypt 哈希再入库，明文不落库也不写日志。
func (s *inquiryService) Create(inquiry *model.Inquiry, password string) (uint, error) {
	inquiry.Status = model.InquiryStatusPending
	if inquiry.IsPrivate {
		hashed, err := hash.HashPassword(password)
		if err != nil {
			return 0, fmt.Errorf("failed to hash inquiry password: %w", err)
		}
		inquiry.Password = hashed
	}

	if err := s.inquiryRepo.Create(inquiry); err != nil {
		return 0, err
	}
	return inquiry.ID, nil
}

// List 按创建时间倒序返回问询列表（摘要视图，不含回复）。
func (s *inquiryService) List() ([]model.Inquiry, error) {
	return s.inquiryRepo.FindAll()
}

// GetByID 返回一条问询及其全部回复。
func (s *inquiryService) GetByID(id uint) (*model.Inquiry, error) {
	return s.inquiryRepo.FindByIDWithReplies(id)
}

// VerifyPassword 校验私密问询的访问密码。
// 公开问询对任何输入都返回 false；比较经由 bcrypt，属常数时间。
func (s *inquiryService) VerifyPassword(id uint, candidate string) (bool, error) {
	inquiry, err := s.inquiryRepo.FindByID(id)
	if err != nil {
		return false, err
	}
	if !inquiry.IsPrivate || inquiry.Password == "" {
		return false, nil
	}
	return hash.CheckPassword(inquiry.Password, candidate), nil
}

// AddReply 追加一条管理员回复。状态流转（pending→answered）在仓储层的
// 事务内完成，对后续回复幂等。
func (s *inquiryService) AddReply(inquiryID uint, adminName, content string) error {
	reply := &model.InquiryReply{
		AdminName: adminName,
		Content:   content,
	}
	return s.inquiryRepo.AddReply(inquiryID, reply)
}
