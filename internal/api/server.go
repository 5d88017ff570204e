package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/auth"
	"github.com/mohit-756/interview-bot/internal/logger"
	"github.com/mohit-756/interview-bot/internal/storage"
	"github.com/mohit-756/interview-bot/internal/workflow"
)

// Version is reported by the root endpoint
var Version = "dev"

// maxUploadBytes bounds multipart resume uploads
const maxUploadBytes = 32 << 20

// Server handles HTTP requests
type Server struct {
	svc    *workflow.Service
	tokens *auth.JWTMaker
	log    *zap.Logger
}

// NewServer creates a new API server
func NewServer(svc *workflow.Service, tokens *auth.JWTMaker, log *zap.Logger) *Server {
	return &Server{
		svc:    svc,
		tokens: tokens,
		log:    logger.OrNop(log).Named("api"),
	}
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.loggingMiddleware())
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", s.handleRegister)
		v1.POST("/auth/login", s.handleLogin)
	}

	hr := v1.Group("/hr")
	hr.Use(s.requireRole(rolesHR))
	{
		hr.POST("/jd/extract", s.handleExtractJD)
		hr.POST("/jd", s.handleCreateJD)
		hr.GET("/jd", s.handleListJDs)
		hr.GET("/jd/latest", s.handleLatestJD)
		hr.GET("/jd/:id", s.handleGetJD)

		hr.GET("/candidates", s.handleListCandidates)
		hr.GET("/candidates/export", s.handleExport)
		hr.GET("/candidates/:id", s.handleCandidateDetail)
		hr.GET("/candidates/:id/resume", s.handleCandidateResume)
	}

	candidate := v1.Group("/candidate")
	candidate.Use(s.requireRole(rolesCandidate))
	{
		candidate.GET("/me", s.handleMe)
		candidate.GET("/jd", s.handleListJDs)
		candidate.POST("/resume", s.handleUploadResume)
		candidate.POST("/schedule", s.handleSchedule)
	}

	session := r.Group("/interview/:token")
	{
		session.GET("", s.handleOpenInterview)
		session.POST("/answers", s.handleSaveAnswer)
		session.POST("/save_answer", s.handleSaveAnswer)
		session.POST("/monitoring", s.handleMonitoring)
		session.POST("/complete", s.handleComplete)
		session.GET("/done", s.handleDone)
	}

	return r
}

// handleRoot provides API information
func (s *Server) handleRoot(c *gin.Context) {
	s.respondJSON(c, http.StatusOK, gin.H{
		"service": "Interview Bot",
		"version": Version,
		"endpoints": gin.H{
			"POST /api/v1/auth/register": "Create a candidate account",
			"POST /api/v1/auth/login":    "Obtain a bearer token",
			"/api/v1/hr/":                "JD configuration, candidate review and export (hr role)",
			"/api/v1/candidate/":         "Resume upload and scheduling (candidate role)",
			"/interview/{token}":         "Interview session",
		},
	})
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	s.respondJSON(c, http.StatusOK, gin.H{"status": "healthy"})
}

// respondJSON sends a JSON response
func (s *Server) respondJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// respondError sends an error response
func (s *Server) respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondErr maps a service error to its status. Unexpected errors are
// logged and hidden from the client.
func (s *Server) respondErr(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		s.respondError(c, status, "internal error")
		return
	}
	s.respondError(c, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrInvalidInput), errors.Is(err, workflow.ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, workflow.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, workflow.ErrNoJDConfig), errors.Is(err, workflow.ErrNoResume):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicate), errors.Is(err, workflow.ErrNotShortlisted):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// idParam reads a positive numeric path parameter
func (s *Server) idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		s.respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
