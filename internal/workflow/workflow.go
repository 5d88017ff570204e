// Package workflow drives the hiring flow: accounts, JD configuration,
// resume screening, scheduling and the token-addressed interview session.
// It owns no storage; every step is a read-modify-write through a Store.
package workflow

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/auth"
	"github.com/mohit-756/interview-bot/internal/logger"
	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/notify"
)

var (
	// ErrInvalidInput is returned for missing required fields
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidFile is returned for a missing upload or a rejected extension
	ErrInvalidFile = errors.New("resume must be a .pdf, .docx, .doc or .txt file")
	// ErrNoJDConfig is returned when a referenced JD configuration does not exist
	ErrNoJDConfig = errors.New("job description not found")
	// ErrNotShortlisted is returned when a non-shortlisted candidate tries to schedule
	ErrNotShortlisted = errors.New("only shortlisted candidates can schedule interviews")
	// ErrForbidden is returned for a resume path outside the uploads directory
	ErrForbidden = errors.New("resume path is outside the uploads directory")
	// ErrNoResume is returned when a candidate has not uploaded a resume
	ErrNoResume = errors.New("resume not found")
)

// Store is the persistence the workflow needs. *storage.DB implements it.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateJDConfig(ctx context.Context, jd *models.JDConfig) error
	GetJDConfig(ctx context.Context, id int64) (*models.JDConfig, error)
	LatestJDConfig(ctx context.Context) (*models.JDConfig, error)
	ListJDConfigs(ctx context.Context) ([]*models.JDConfig, error)

	CreateCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidate(ctx context.Context, id int64) (*models.Candidate, error)
	GetCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error)
	GetCandidateByToken(ctx context.Context, token string) (*models.Candidate, error)
	ListCandidates(ctx context.Context) ([]*models.Candidate, error)
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
}

// Extractor turns JD text into a taxonomy. It never fails.
type Extractor interface {
	Extract(ctx context.Context, jdText string) models.JDTaxonomy
}

// Scorer screens a resume against a JD taxonomy
type Scorer interface {
	Analyze(resumeText string, jd models.JDTaxonomy, qualifyScore int) models.ResumeAnalysisResult
}

// TextSource returns the plain text of a stored resume, or "" on failure
type TextSource interface {
	Text(path string) string
}

// Uploads stores resume files and answers containment checks
type Uploads interface {
	SaveUploadedFile(filename string, content io.Reader) (string, error)
	Contains(path string) bool
}

// Deps wires a Service. Log, Now and NewToken are optional.
type Deps struct {
	Store     Store
	Extractor Extractor
	Scorer    Scorer
	Resumes   TextSource
	Files     Uploads
	Mailer    notify.Notifier
	Tokens    *auth.JWTMaker
	BaseURL   string
	Log       *zap.Logger
	Now       func() time.Time
	NewToken  func() string
}

// Service implements every user-facing operation
type Service struct {
	store     Store
	extractor Extractor
	scorer    Scorer
	resumes   TextSource
	files     Uploads
	mailer    notify.Notifier
	tokens    *auth.JWTMaker
	baseURL   string
	log       *zap.Logger
	now       func() time.Time
	newToken  func() string

	// sessionMu serialises read-modify-write of interview records in this process
	sessionMu sync.Mutex
}

// New creates a Service
func New(d Deps) *Service {
	s := &Service{
		store:     d.Store,
		extractor: d.Extractor,
		scorer:    d.Scorer,
		resumes:   d.Resumes,
		files:     d.Files,
		mailer:    d.Mailer,
		tokens:    d.Tokens,
		baseURL:   d.BaseURL,
		log:       d.Log,
		now:       d.Now,
		newToken:  d.NewToken,
	}
	s.log = logger.OrNop(s.log).Named("workflow")
	if s.now == nil {
		s.now = time.Now
	}
	if s.newToken == nil {
		s.newToken = func() string { return uuid.NewString() }
	}
	return s
}

// resumeText returns "" when there is no resume or no text source
func (s *Service) resumeText(path string) string {
	if path == "" || s.resumes == nil {
		return ""
	}
	return s.resumes.Text(path)
}
