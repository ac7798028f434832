package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skfghd/threelinepoem/internal/model"
	"github.com/skfghd/threelinepoem/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.Init("error", "console", "")
	os.Exit(m.Run())
}

// MockPoemService is a mock type for the PoemService interface
type MockPoemService struct {
	mock.Mock
}

func (m *MockPoemService) Compose(ctx context.Context, word string, mood model.Mood) model.Poem {
	args := m.Called(ctx, word, mood)
	return args.Get(0).(model.Poem)
}

func newPoemRouter(svc *MockPoemService) *gin.Engine {
	r := gin.New()
	h := NewPoemHandler(svc)
	r.POST("/api/poems", h.Create)
	r.GET("/api/poems", h.List)
	return r
}

func postPoem(r *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/poems", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePoemRejectsNonKoreanWord(t *testing.T) {
	svc := new(MockPoemService)
	w := postPoem(newPoemRouter(svc), map[string]interface{}{"inputWord": "abc", "mood": "warm"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// 非法输入不触碰生成器，也不触碰用量计数
	svc.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePoemRejectsBadLength(t *testing.T) {
	for _, word := range []string{"가", "가나다라마바"} {
		svc := new(MockPoemService)
		w := postPoem(newPoemRouter(svc), map[string]interface{}{"inputWord": word, "mood": "warm"})

		assert.Equal(t, http.StatusBadRequest, w.Code, "word %q", word)
		svc.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestCreatePoemRejectsUnknownMood(t *testing.T) {
	svc := new(MockPoemService)
	w := postPoem(newPoemRouter(svc), map[string]interface{}{"inputWord": "행복", "mood": "angry"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePoemReturnsComposedPoem(t *testing.T) {
	svc := new(MockPoemService)
	svc.On("Compose", mock.Anything, "행복", model.MoodWarm).Return(model.Poem{
		InputWord: "행복",
		Mood:      model.MoodWarm,
		Lines:     []string{"행살이 좋은 날", "복스러운 웃음"},
		CreatedAt: time.Now(),
		UsedAI:    true,
	})

	w := postPoem(newPoemRouter(svc), map[string]interface{}{"inputWord": "행복", "mood": "warm"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var poem model.Poem
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &poem))
	assert.Equal(t, "행복", poem.InputWord)
	assert.Len(t, poem.Lines, 2)
	assert.True(t, poem.UsedAI)
}

func TestListPoemsAlwaysEmpty(t *testing.T) {
	r := newPoemRouter(new(MockPoemService))
	req := httptest.NewRequest(http.MethodGet, "/api/poems", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestValidatePoemRequestHangulBoundary(t *testing.T) {
	// 韩文音节区边界内外各取一例
	assert.Empty(t, validatePoemRequest("가힣", model.MoodWarm))
	assert.NotEmpty(t, validatePoemRequest("가ㄱ", model.MoodWarm))  // 兼容字母不在音节区
	assert.NotEmpty(t, validatePoemRequest("행복!", model.MoodWarm))
}
