package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-dispatch/internal/dispatch"
	"github.com/jonathan/resume-dispatch/internal/mailer"
	"github.com/jonathan/resume-dispatch/internal/server/ratelimit"
	"github.com/jonathan/resume-dispatch/internal/store"
	"github.com/jonathan/resume-dispatch/internal/types"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

const resumeText = `张三
电话：13800138000
个人简介
五年Go后端经验
工作经验
B公司 Go Redis 微服务
专业技能
Java、Go、Redis`

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T, rl *ratelimit.Config, opts ...dispatch.Option) http.Handler {
	t.Helper()
	seq := 0
	base := []dispatch.Option{
		dispatch.WithClock(func() time.Time { return fixedNow }),
		dispatch.WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
	}
	svc := dispatch.New(store.NewMemory(), append(base, opts...)...)
	if rl == nil {
		rl = ratelimit.NewConfig(0, 0)
	}
	s := New(Config{RateLimit: rl}, svc, zerolog.Nop())
	t.Cleanup(s.rateLimiter.Stop)
	s.now = func() time.Time { return fixedNow }
	return s.Handler()
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return do(t, h, req)
}

func uploadRequest(t *testing.T, field, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func testJob() map[string]any {
	return map[string]any{
		"title":        "Go工程师",
		"company":      "Acme",
		"requirements": []string{"Go", "Redis"},
		"contactEmail": "hr@acme.com",
		"articleUrl":   "https://mp.weixin.qq.com/s/abc",
		"articleTitle": "Acme招聘",
	}
}

// uploadAndCustomize returns the customized résumé id.
func uploadAndCustomize(t *testing.T, h http.Handler, job map[string]any) string {
	t.Helper()
	w, env := do(t, h, uploadRequest(t, "resume", "zhangsan.txt", []byte(resumeText)))
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	resume := decode[types.ResumeSummary](t, env.Data)

	w, env = doJSON(t, h, http.MethodPost, "/api/resume/customize", map[string]any{
		"resumeId": resume.ID,
		"jobInfo":  job,
	})
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	return decode[CustomizeResponse](t, env.Data).ID
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	w, env := doJSON(t, h, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	health := decode[HealthResponse](t, env.Data)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, fixedNow, health.Timestamp)
}

func TestExtractEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/extract", map[string]string{"url": "https://x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "请提供文章文本", env.Error)

	w, env = doJSON(t, h, http.MethodPost, "/api/extract", map[string]string{
		"text": "欢迎加入我们\n简历投递至 hr@acme.com",
		"url":  "https://mp.weixin.qq.com/s/abc",
	})
	require.Equal(t, http.StatusOK, w.Code)
	job := decode[types.JobInfo](t, env.Data)
	assert.Equal(t, "hr@acme.com", job.ContactEmail)
	assert.Equal(t, "https://mp.weixin.qq.com/s/abc", job.ArticleURL)
}

func TestExtractPageEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/extract/page", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "请提供文章内容", env.Error)

	html := `<html><body>
		<h1 class="rich_media_title">Acme 2024 招聘</h1>
		<div id="js_content"><p>欢迎加入</p><p>简历请发送至 jobs@acme.com</p></div>
	</body></html>`
	w, env = doJSON(t, h, http.MethodPost, "/api/extract/page", map[string]string{
		"html": html,
		"url":  "https://mp.weixin.qq.com/s/abc",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	job := decode[types.JobInfo](t, env.Data)
	assert.Equal(t, "Acme 2024 招聘", job.ArticleTitle)
	assert.Equal(t, "jobs@acme.com", job.ContactEmail)
	assert.Equal(t, fixedNow, job.ExtractedAt)
}

func TestUploadEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	w, env := do(t, h, uploadRequest(t, "resume", "zhangsan.txt", []byte(resumeText)))
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	resume := decode[types.ResumeSummary](t, env.Data)
	assert.Equal(t, "id-1", resume.ID)
	assert.Equal(t, "zhangsan.txt", resume.FileName)
	assert.Equal(t, "张三", resume.ParsedSections.Name)
	assert.NotContains(t, string(env.Data), "rawText")

	w, env = doJSON(t, h, http.MethodGet, "/api/resume/list", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]types.ResumeSummary](t, env.Data)
	require.Len(t, list, 1)
	assert.Equal(t, "id-1", list[0].ID)
}

func TestUploadEndpoint_Errors(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name     string
		req      *http.Request
		wantCode int
		wantErr  string
	}{
		{"missing file", uploadRequest(t, "", "", nil), http.StatusBadRequest, "请上传简历文件"},
		{"wrong field", uploadRequest(t, "file", "a.txt", []byte("x")), http.StatusBadRequest, "请上传简历文件"},
		{"unsupported", uploadRequest(t, "resume", "photo.png", []byte("x")), http.StatusBadRequest, "不支持的文件格式: .png"},
		{"too large", uploadRequest(t, "resume", "big.txt", bytes.Repeat([]byte("a"), DefaultUploadLimit+1)), http.StatusRequestEntityTooLarge, "文件大小不能超过10MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, h, tt.req)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantErr, env.Error)
		})
	}
}

func TestListEndpoints_Empty(t *testing.T) {
	h := newTestServer(t, nil)

	for _, path := range []string{"/api/resume/list", "/api/submissions"} {
		w, env := doJSON(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", string(env.Data), path)
	}
}

func TestCustomizeEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	w, env := doJSON(t, h, http.MethodPost, "/api/resume/customize", map[string]any{"resumeId": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "缺少简历ID或岗位信息", env.Error)

	w, env = doJSON(t, h, http.MethodPost, "/api/resume/customize", map[string]any{"resumeId": "missing", "jobInfo": testJob()})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "未找到简历", env.Error)

	_, env = do(t, h, uploadRequest(t, "resume", "zhangsan.txt", []byte(resumeText)))
	resume := decode[types.ResumeSummary](t, env.Data)

	w, env = doJSON(t, h, http.MethodPost, "/api/resume/customize", map[string]any{"resumeId": resume.ID, "jobInfo": testJob()})
	require.Equal(t, http.StatusOK, w.Code, env.Error)
	got := decode[CustomizeResponse](t, env.Data)
	assert.Equal(t, "张三_Acme_Go工程师.txt", got.CustomizedFileName)
	assert.Equal(t, types.StatusPendingReview, got.Status)
	assert.Contains(t, got.CoverLetter, "Go工程师")
	assert.NotEmpty(t, got.EmailSubject)
	assert.NotContains(t, string(env.Data), "customizedText")
}

func TestSendEndpoint(t *testing.T) {
	m := &fakeMailer{}
	h := newTestServer(t, nil, dispatch.WithMailer(m))
	id := uploadAndCustomize(t, h, testJob())

	w, env := doJSON(t, h, http.MethodPost, "/api/resume/send", map[string]any{
		"customizedResumeId": id,
		"emailSubject":       "自定义主题",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	record := decode[types.SubmissionRecord](t, env.Data)
	assert.Equal(t, types.SubmissionSent, record.Status)
	assert.Equal(t, "hr@acme.com", record.RecipientEmail)
	assert.Equal(t, "自定义主题", record.EmailSubject)

	require.Len(t, m.sent, 1)
	require.NotNil(t, m.sent[0].Attachment)
	assert.Equal(t, "张三_Acme_Go工程师.txt", m.sent[0].Attachment.Name)

	w, env = doJSON(t, h, http.MethodPost, "/api/resume/send", map[string]any{"customizedResumeId": id})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, env.Error, "sent")

	w, env = doJSON(t, h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[types.Stats](t, env.Data)
	assert.Equal(t, types.Stats{TodayCount: 1, TotalCount: 1, ResumeCount: 1}, stats)

	w, env = doJSON(t, h, http.MethodGet, "/api/submissions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]types.SubmissionRecord](t, env.Data), 1)
}

func TestSendEndpoint_DeliveryFailure(t *testing.T) {
	h := newTestServer(t, nil, dispatch.WithMailer(&fakeMailer{err: errors.New("535 authentication failed")}))
	id := uploadAndCustomize(t, h, testJob())

	w, env := doJSON(t, h, http.MethodPost, "/api/resume/send", map[string]any{"customizedResumeId": id, "skipReview": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "535 authentication failed", env.Error)
	record := decode[types.SubmissionRecord](t, env.Data)
	assert.Equal(t, types.SubmissionFailed, record.Status)
}

func TestSendEndpoint_Preconditions(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		h := newTestServer(t, nil)
		w, env := doJSON(t, h, http.MethodPost, "/api/resume/send", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "缺少定制简历ID", env.Error)
	})

	t.Run("unknown id", func(t *testing.T) {
		h := newTestServer(t, nil, dispatch.WithMailer(&fakeMailer{}))
		w, env := doJSON(t, h, http.MethodPost, "/api/resume/send", map[string]any{"customizedResumeId": "nope"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "未找到定制简历", env.Error)
	})

	t.Run("no recipient", func(t *testing.T) {
		h := newTestServer(t, nil, dispatch.WithMailer(&fakeMailer{}))
		job := testJob()
		delete(job, "contactEmail")
		id := uploadAndCustomize(t, h, job)
		w, env := doJSON(t, h, http.MethodPost, "/api/resume/send", map[string]any{"customizedResumeId": id})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "缺少投递邮箱地址", env.Error)
	})

	t.Run("mailer not configured", func(t *testing.T) {
		h := newTestServer(t, nil)
		id := uploadAndCustomize(t, h, testJob())
		w, env := doJSON(t, h, http.MethodPost, "/api/resume/send", map[string]any{"customizedResumeId": id})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, msgMailerNotConfigured, env.Error)
	})
}

func TestCORSRejected(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w, env := do(t, h, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Success)
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, ratelimit.NewConfig(1, 1))

	body := map[string]any{"resumeId": "missing", "jobInfo": testJob()}
	w, _ := doJSON(t, h, http.MethodPost, "/api/resume/customize", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w, env := doJSON(t, h, http.MethodPost, "/api/resume/customize", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "请求过于频繁，请稍后再试", env.Error)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w, _ = doJSON(t, h, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound},
		{"validation", &ErrValidation{Field: "text", Message: "required"}, http.StatusBadRequest},
		{"no recipient", dispatch.ErrNoRecipient, http.StatusBadRequest},
		{"transition", &types.TransitionError{From: types.StatusSent, To: types.StatusSent}, http.StatusConflict},
		{"mailer", dispatch.ErrMailerNotConfigured, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "email", Message: "invalid format"}
	assert.Equal(t, "validation error: email - invalid format", err.Error())
}
