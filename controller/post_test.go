package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/bamboo_service/models/dto"
	"github.com/Xushengqwer/bamboo_service/models/vo"
	"github.com/Xushengqwer/bamboo_service/myErrors"
)

type fakePostService struct {
	postVO      *vo.PostVO
	recommendVO *vo.RecommendVO
	reportVO    *vo.ReportVO
	err         error
}

func (f *fakePostService) CreatePost(_ context.Context, _ *dto.CreatePostRequest) (*vo.PostVO, error) {
	return f.postVO, f.err
}

func (f *fakePostService) GetPostByID(_ context.Context, _ string) (*vo.PostVO, error) {
	return f.postVO, f.err
}

func (f *fakePostService) RecommendPost(_ context.Context, _ string) (*vo.RecommendVO, error) {
	return f.recommendVO, f.err
}

func (f *fakePostService) ReportPost(_ context.Context, _ string) (*vo.ReportVO, error) {
	return f.reportVO, f.err
}

func (f *fakePostService) SetPostTags(_ context.Context, _ string, _ []string) error {
	return f.err
}

func newTestRouter(svc *fakePostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1/bamboo")
	NewPostController(svc).RegisterRoutes(group)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreatePostHandler_Success(t *testing.T) {
	svc := &fakePostService{postVO: &vo.PostVO{ID: "post_abc", Content: "你好", CreatedAt: time.Now(), Status: "active"}}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/bamboo/posts", `{"content":"你好"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "post_abc")
}

func TestCreatePostHandler_BindingRejectsMissingContent(t *testing.T) {
	router := newTestRouter(&fakePostService{})

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/bamboo/posts", `{}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreatePostHandler_BlankContentIs400(t *testing.T) {
	svc := &fakePostService{err: myErrors.ErrInvalidContent}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/bamboo/posts", `{"content":"   "}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetPostHandler_NotFoundIs404(t *testing.T) {
	svc := &fakePostService{err: myErrors.ErrPostNotFound}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodGet, "/api/v1/bamboo/posts/post_gone", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRecommendHandler_RejectedIs409(t *testing.T) {
	svc := &fakePostService{err: myErrors.ErrOperationRejected}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/bamboo/posts/post_x/recommend", "")

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestReportHandler_Success(t *testing.T) {
	svc := &fakePostService{reportVO: &vo.ReportVO{Reports: 12, Blinded: false}}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/bamboo/posts/post_x/report", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"reports":12`)
}

func TestRecommendHandler_TransientErrorIs500(t *testing.T) {
	svc := &fakePostService{err: assert.AnError}
	router := newTestRouter(svc)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/bamboo/posts/post_x/recommend", "")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCreatePostHandler_OverlongContentIs400(t *testing.T) {
	store := &fakePostService{}
	router := newTestRouter(store)

	// 201 个字符，超出 max=200 的绑定约束
	body := `{"content":"` + strings.Repeat("长", 201) + `"}`
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/bamboo/posts", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
