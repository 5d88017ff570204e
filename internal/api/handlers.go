package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleRegister(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "All fields required")
		return
	}

	candidate, err := s.svc.Register(c.Request.Context(), req)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusCreated, gin.H{"message": "registered", "candidate_id": candidate.ID})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	res, err := s.svc.Login(c.Request.Context(), req)
	if err != nil {
		s.log.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, res)
}

func (s *Server) handleExtractJD(c *gin.Context) {
	var req struct {
		JDText string `json:"jd_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.JDText) == "" {
		s.respondError(c, http.StatusBadRequest, "jd_text is required")
		return
	}
	s.respondJSON(c, http.StatusOK, s.svc.ExtractJD(c.Request.Context(), req.JDText))
}

func (s *Server) handleCreateJD(c *gin.Context) {
	var req models.JDCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	jd, err := s.svc.CreateJD(c.Request.Context(), req)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusCreated, jd)
}

func (s *Server) handleListJDs(c *gin.Context) {
	jds, err := s.svc.ListJDs(c.Request.Context())
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, gin.H{"jd_configs": jds})
}

func (s *Server) handleLatestJD(c *gin.Context) {
	jd, err := s.svc.LatestJD(c.Request.Context())
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, jd)
}

func (s *Server) handleGetJD(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	jd, err := s.svc.GetJD(c.Request.Context(), id)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, jd)
}

func (s *Server) handleListCandidates(c *gin.Context) {
	candidates, err := s.svc.ListCandidates(c.Request.Context())
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, gin.H{"candidates": candidates})
}

func (s *Server) handleCandidateDetail(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	detail, err := s.svc.CandidateDetail(c.Request.Context(), id)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, detail)
}

func (s *Server) handleCandidateResume(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	path, err := s.svc.ResumePath(c.Request.Context(), id)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	c.File(path)
}

func (s *Server) handleExport(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.svc.ExportReport(c.Request.Context(), &buf); err != nil {
		s.respondErr(c, err)
		return
	}
	name := fmt.Sprintf("candidates_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleMe(c *gin.Context) {
	candidate, err := s.svc.Me(c.Request.Context(), claimsFrom(c).Email)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, candidate)
}

func (s *Server) handleUploadResume(c *gin.Context) {
	header, err := c.FormFile("resume")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "Resume required")
		return
	}

	jdID, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("jd_config_id")), 10, 64)
	if err != nil || jdID <= 0 {
		s.respondError(c, http.StatusBadRequest, "Please select a valid JD")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondError(c, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	defer file.Close()

	res, err := s.svc.UploadResume(c.Request.Context(), claimsFrom(c).Email, jdID, filepath.Base(header.Filename), file)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, res)
}

func (s *Server) handleSchedule(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, "Interview date is required")
		return
	}

	res, err := s.svc.Schedule(c.Request.Context(), claimsFrom(c).Email, req.InterviewDate)
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, res)
}

// payload reads a loosely typed JSON body. Anything that is not a JSON
// object is treated as empty.
func payload(c *gin.Context) map[string]any {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		return map[string]any{}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

func (s *Server) handleOpenInterview(c *gin.Context) {
	view, err := s.svc.OpenInterview(c.Request.Context(), c.Param("token"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, view)
}

func (s *Server) handleSaveAnswer(c *gin.Context) {
	res, err := s.svc.SaveAnswer(c.Request.Context(), c.Param("token"), payload(c))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, res)
}

func (s *Server) handleMonitoring(c *gin.Context) {
	m, err := s.svc.UpdateMonitoring(c.Request.Context(), c.Param("token"), payload(c))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, gin.H{"ok": true, "monitoring": m})
}

func (s *Server) handleComplete(c *gin.Context) {
	res, err := s.svc.Complete(c.Request.Context(), c.Param("token"), payload(c))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, res)
}

func (s *Server) handleDone(c *gin.Context) {
	view, err := s.svc.Done(c.Request.Context(), c.Param("token"))
	if err != nil {
		s.respondErr(c, err)
		return
	}
	s.respondJSON(c, http.StatusOK, view)
}
