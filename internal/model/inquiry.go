package model

import "time"

// InquiryStatus 表示问询的处理状态。
type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "pending"
	InquiryStatusAnswered InquiryStatus = "answered"
)

// Inquiry 定义了 inquiries 表的 ORM 模型。
// Password 仅在私密问询上存在，入库前已做 bcrypt 哈希，永不序列化。
type Inquiry struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:varchar(50);not null" json:"name"`
	Email     string         `gorm:"type:varchar(100);not null" json:"email"`
	Category  string         `gorm:"type:varchar(20);not null" json:"category"`
	Title     string         `gorm:"type:varchar(100);not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	IsPrivate bool           `gorm:"not null;default:false" json:"isPrivate"`
	Password  string         `gorm:"type:varchar(60)" json:"-"`
	Status    InquiryStatus  `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	Replies   []InquiryReply `gorm:"foreignKey:InquiryID" json:"replies,omitempty"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Inquiry) TableName() string {
	return "inquiries"
}

// InquiryReply 定义了 inquiry_replies 表的 ORM 模型。回复创建后不可变更。
type InquiryReply struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	InquiryID uint      `gorm:"index;not null" json:"inquiryId"`
	AdminName string    `gorm:"type:varchar(50);not null" json:"adminName"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (InquiryReply) TableName() string {
	return "inquiry_replies"
}
