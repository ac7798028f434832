package repository

import (
	"github.com/skfghd/threelinepoem/internal/model"
	"gorm.io/gorm"
)

// InquiryRepository 接口定义了问询板数据的持久化操作。
type InquiryRepository interface {
	Create(inquiry *model.Inquiry) error
	FindAll() ([]model.Inquiry, error)
	FindByID(id uint) (*model.Inquiry, error)
	FindByIDWithReplies(id uint) (*model.Inquiry, error)
	AddReply(inquiryID uint, reply *model.InquiryReply) error
}

// inquiryRepository 是 InquiryRepository 接口的 GORM 实现。
type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository 创建一个新的 InquiryRepository 实例。
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

// Create 在数据库中创建一条新的问询记录。
func (r *inquiryRepository) Create(inquiry *model.Inquiry) error {
	return r.db.Create(inquiry).Error
}

// FindAll 按创建时间倒序返回所有问询。列表视图不加载回复。
func (r *inquiryRepository) FindAll() ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := r.db.Order("created_at DESC").Find(&inquiries).Error
	return inquiries, err
}

// FindByID 根据 ID 查找一条问询，不带回复。
func (r *inquiryRepository) FindByID(id uint) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	if err := r.db.First(&inquiry, id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// FindByIDWithReplies 根据 ID 查找一条问询，并按时间顺序预加载其全部回复。
func (r *inquiryRepository) FindByIDWithReplies(id uint) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := r.db.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("inquiry_replies.created_at ASC")
	}).First(&inquiry, id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// AddReply 在一个事务内追加回复并把问询状态流转为 answered。
// 状态流转是幂等的：已经是 answered 的问询保持不变。
func (r *inquiryRepository) AddReply(inquiryID uint, reply *model.InquiryReply) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var inquiry model.Inquiry
		if err := tx.First(&inquiry, inquiryID).Error; err != nil {
			return err
		}

		reply.InquiryID = inquiryID
		if err := tx.Create(reply).Error; err != nil {
			return err
		}

		if inquiry.Status != model.InquiryStatusAnswered {
			if err := tx.Model(&inquiry).Update("status", model.InquiryStatusAnswered).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
