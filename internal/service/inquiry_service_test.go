package service

import (
	"errors"
	"testing"

	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockInquiryRepository is a mock type for the InquiryRepository interface
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(inquiry *model.Inquiry) error {
	args := m.Called(inquiry)
	return args.Error(0)
}

func (m *MockInquiryRepository) FindAll() ([]model.Inquiry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) FindByID(id uint) (*model.Inquiry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) FindByIDWithReplies(id uint) (*model.Inquiry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) AddReply(inquiryID uint, reply *model.InquiryReply) error {
	args := m.Called(inquiryID, reply)
	return args.Error(0)
}

func TestCreateInquirySetsPendingStatus(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.AnythingOfType("*model.Inquiry")).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Inquiry).ID = 7
	}).Return(nil)

	s := NewInquiryService(repo)
	inquiry := &model.Inquiry{Name: "홍길동", Email: "hong@example.com", Category: "etc", Title: "문의", Content: "내용"}
	id, err := s.Create(inquiry, "")

	assert.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, model.InquiryStatusPending, inquiry.Status)
	assert.Empty(t, inquiry.Password)
}

func TestCreatePrivateInquiryHashesPassword(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.AnythingOfType("*model.Inquiry")).Return(nil)

	s := NewInquiryService(repo)
	inquiry := &model.Inquiry{Name: "홍길동", Email: "hong@example.com", Category: "etc", Title: "문의", Content: "내용", IsPrivate: true}
	_, err := s.Create(inquiry, "secret1234")

	assert.NoError(t, err)
	assert.NotEmpty(t, inquiry.Password)
	assert.NotEqual(t, "secret1234", inquiry.Password)
	assert.True(t, hash.CheckPassword(inquiry.Password, "secret1234"))
}

func TestCreateInquiryPropagatesStorageError(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.AnythingOfType("*model.Inquiry")).Return(errors.New("connection lost"))

	s := NewInquiryService(repo)
	_, err := s.Create(&model.Inquiry{Name: "홍길동"}, "")
	assert.Error(t, err)
}

func TestVerifyPasswordPublicInquiryAlwaysFalse(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("FindByID", uint(1)).Return(&model.Inquiry{ID: 1, IsPrivate: false}, nil)

	s := NewInquiryService(repo)
	ok, err := s.VerifyPassword(1, "anything")

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordPrivateInquiry(t *testing.T) {
	hashed, err := hash.HashPassword("secret1234")
	assert.NoError(t, err)

	repo := new(MockInquiryRepository)
	repo.On("FindByID", uint(2)).Return(&model.Inquiry{ID: 2, IsPrivate: true, Password: hashed}, nil)

	s := NewInquiryService(repo)

	ok, err := s.VerifyPassword(2, "secret1234")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.VerifyPassword(2, "wrong-password")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMissingInquiry(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("FindByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

	s := NewInquiryService(repo)
	_, err := s.VerifyPassword(99, "secret1234")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddReplyPassesReplyToRepository(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("AddReply", uint(3), mock.AnythingOfType("*model.InquiryReply")).Return(nil)

	s := NewInquiryService(repo)
	err := s.AddReply(3, "관리자", "답변 드립니다.")

	assert.NoError(t, err)
	reply := repo.Calls[0].Arguments.Get(1).(*model.InquiryReply)
	assert.Equal(t, "관리자", reply.AdminName)
	assert.Equal(t, "답변 드립니다.", reply.Content)
}

func TestListReturnsSummaries(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("FindAll").Return([]model.Inquiry{
		{ID: 2, Title: "나중 문의"},
		{ID: 1, Title: "먼저 문의"},
	}, nil)

	s := NewInquiryService(repo)
	inquiries, err := s.List()

	assert.NoError(t, err)
	assert.Len(t, inquiries, 2)
	assert.Equal(t, uint(2), inquiries[0].ID)
}
