package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-dispatch/internal/dispatch"
	"github.com/jonathan/resume-dispatch/internal/extraction"
	"github.com/jonathan/resume-dispatch/internal/fetch"
	"github.com/jonathan/resume-dispatch/internal/ingestion"
	"github.com/jonathan/resume-dispatch/internal/store"
	"github.com/jonathan/resume-dispatch/internal/types"
)

const msgMailerNotConfigured = "邮件服务未配置。请设置环境变量 SMTP_USER 和 SMTP_PASS"

// HealthResponse is the data of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CustomizeResponse is the data of POST /api/resume/customize.
type CustomizeResponse struct {
	ID                 string       `json:"id"`
	CustomizedFileName string       `json:"customizedFileName"`
	CoverLetter        string       `json:"coverLetter"`
	EmailSubject       string       `json:"emailSubject"`
	EmailBody          string       `json:"emailBody"`
	Status             types.Status `json:"status"`
}

// decodeJSON reads a JSON body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.successResponse(w, HealthResponse{Status: "ok", Timestamp: s.now().UTC()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to load stats")
		s.errorResponse(w, http.StatusInternalServerError, "获取统计失败")
		return
	}
	s.successResponse(w, stats)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.uploadLimit+multipartOverhead)
	file, header, err := r.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "文件大小不能超过10MB")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "请上传简历文件")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, s.uploadLimit+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "请上传简历文件")
		return
	}
	if int64(len(data)) > s.uploadLimit {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "文件大小不能超过10MB")
		return
	}

	resume, err := s.svc.Upload(r.Context(), header.Filename, data)
	if err != nil {
		status := HTTPStatus(err)
		msg := "简历解析失败"
		var format *ingestion.UnsupportedFormatError
		switch {
		case errors.As(err, &format):
			msg = format.Error()
		case errors.Is(err, ingestion.ErrFileTooLarge):
			msg = "文件大小不能超过10MB"
		default:
			zerolog.Ctx(r.Context()).Error().Err(err).Str("file", header.Filename).Msg("resume upload failed")
		}
		s.errorResponse(w, status, msg)
		return
	}

	s.successResponse(w, types.ResumeSummary{
		ID:             resume.ID,
		FileName:       resume.FileName,
		ParsedSections: resume.ParsedSections,
		UploadedAt:     resume.UploadedAt,
	})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.svc.Resumes(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list resumes")
		s.errorResponse(w, http.StatusInternalServerError, "获取简历列表失败")
		return
	}
	if resumes == nil {
		resumes = []types.ResumeSummary{}
	}
	s.successResponse(w, resumes)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := s.decodeJSON(w, r, &req); err != nil || req.Validate() != nil {
		s.errorResponse(w, http.StatusBadRequest, "请提供文章文本")
		return
	}
	s.successResponse(w, extraction.Extract(req.Text, req.URL))
}

func (s *Server) handleExtractPage(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractPageRequest
	if err := s.decodeJSON(w, r, &req); err != nil || req.Validate() != nil {
		s.errorResponse(w, http.StatusBadRequest, "请提供文章内容")
		return
	}

	article, err := fetch.ExtractArticle(req.HTML, req.URL)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("url", req.URL).Msg("page extraction failed")
		s.errorResponse(w, http.StatusInternalServerError, "提取失败")
		return
	}
	s.successResponse(w, extraction.ExtractPage(*article, s.now()))
}

func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	var req types.CustomizeRequest
	if err := s.decodeJSON(w, r, &req); err != nil || req.Validate() != nil {
		s.errorResponse(w, http.StatusBadRequest, "缺少简历ID或岗位信息")
		return
	}

	customized, err := s.svc.Customize(r.Context(), req.ResumeID, req.JobInfo)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "未找到简历")
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Str("resume_id", req.ResumeID).Msg("customize failed")
		s.errorResponse(w, HTTPStatus(err), "简历优化失败")
		return
	}

	s.successResponse(w, CustomizeResponse{
		ID:                 customized.ID,
		CustomizedFileName: customized.CustomizedFileName,
		CoverLetter:        customized.CoverLetter,
		EmailSubject:       customized.EmailSubject,
		EmailBody:          customized.EmailBody,
		Status:             customized.Status,
	})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req types.SendRequest
	if err := s.decodeJSON(w, r, &req); err != nil || req.Validate() != nil {
		s.errorResponse(w, http.StatusBadRequest, "缺少定制简历ID")
		return
	}

	record, err := s.svc.Send(r.Context(), req)
	if err != nil {
		var transition *types.TransitionError
		switch {
		case errors.Is(err, store.ErrNotFound):
			s.errorResponse(w, http.StatusNotFound, "未找到定制简历")
		case errors.Is(err, dispatch.ErrNoRecipient):
			s.errorResponse(w, http.StatusBadRequest, "缺少投递邮箱地址")
		case errors.Is(err, dispatch.ErrMailerNotConfigured):
			s.errorResponse(w, http.StatusInternalServerError, msgMailerNotConfigured)
		case errors.As(err, &transition):
			s.errorResponse(w, http.StatusConflict, "该简历当前状态不可投递: "+string(transition.From))
		default:
			zerolog.Ctx(r.Context()).Error().Err(err).Str("customized_id", req.CustomizedResumeID).Msg("send failed")
			s.errorResponse(w, http.StatusInternalServerError, "发送失败")
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, Response{
		Success: record.Status == types.SubmissionSent,
		Data:    record,
		Error:   record.Error,
	})
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := s.svc.Submissions(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list submissions")
		s.errorResponse(w, http.StatusInternalServerError, "获取投递历史失败")
		return
	}
	if submissions == nil {
		submissions = []types.SubmissionRecord{}
	}
	s.successResponse(w, submissions)
}
