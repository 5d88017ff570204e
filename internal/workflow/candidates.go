package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/export"
	"github.com/mohit-756/interview-bot/internal/ingestion"
	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/notify"
	"github.com/mohit-756/interview-bot/internal/questions"
)

// UploadResult is the screening outcome shown to the candidate
type UploadResult struct {
	Candidate    *models.Candidate           `json:"candidate"`
	Result       models.ResumeAnalysisResult `json:"result"`
	JDTitle      string                      `json:"jd_title"`
	QualifyScore int                         `json:"qualify_score"`
	CanSchedule  bool                        `json:"can_schedule"`
}

// ScheduleResult reports the booked slot and whether the email went out
type ScheduleResult struct {
	InterviewDate string `json:"interview_date"`
	InterviewLink string `json:"interview_link"`
	MailSent      bool   `json:"mail_sent"`
}

// CandidateDetail is the HR view of one candidate
type CandidateDetail struct {
	Candidate       *models.Candidate `json:"candidate"`
	JDConfig        *models.JDConfig  `json:"jd_config,omitempty"`
	QuestionPreview []string          `json:"question_preview"`
}

// Me returns the candidate record of a logged-in candidate
func (s *Service) Me(ctx context.Context, email string) (*models.Candidate, error) {
	return s.store.GetCandidateByEmail(ctx, normalizeEmail(email))
}

// UploadResume stores a resume, screens it against the chosen JD and
// resets any previous interview booking.
func (s *Service) UploadResume(ctx context.Context, email string, jdConfigID int64, filename string, content io.Reader) (*UploadResult, error) {
	if content == nil || strings.TrimSpace(filename) == "" || !ingestion.AllowedFile(filename) {
		return nil, ErrInvalidFile
	}

	c, err := s.store.GetCandidateByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	jd, err := s.GetJD(ctx, jdConfigID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("candidate_%d_%s", c.ID, ingestion.SafeFilename(filename))
	path, err := s.files.SaveUploadedFile(name, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	result := s.scorer.Analyze(s.resumeText(path), jd.JDDict, jd.QualifyScore)

	status := models.StatusRejected
	if result.Decision == models.Shortlisted {
		status = models.StatusShortlisted
	}

	jdID := jd.ID
	c.ResumePath = path
	c.JDConfigID = &jdID
	c.Status = status
	c.Phase1Result = &result
	c.Questions = []string{}
	c.InterviewDate = ""
	c.InterviewLink = ""
	c.InterviewToken = ""
	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("resume screened",
		zap.Int64("candidate_id", c.ID),
		zap.Int64("jd_config_id", jd.ID),
		zap.Float64("final_score", result.FinalScore),
		zap.String("decision", string(result.Decision)),
	)

	return &UploadResult{
		Candidate:    c,
		Result:       result,
		JDTitle:      jd.Title,
		QualifyScore: jd.QualifyScore,
		CanSchedule:  status == models.StatusShortlisted,
	}, nil
}

// InterviewLink returns the public address of an interview session
func (s *Service) InterviewLink(token string) string {
	return strings.TrimRight(s.baseURL, "/") + "/interview/" + token
}

// Schedule books an interview for a shortlisted candidate and mails the link
func (s *Service) Schedule(ctx context.Context, email, interviewDate string) (*ScheduleResult, error) {
	interviewDate = strings.TrimSpace(interviewDate)
	if interviewDate == "" {
		return nil, fmt.Errorf("%w: interview date is required", ErrInvalidInput)
	}

	c, err := s.store.GetCandidateByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if c.Status != models.StatusShortlisted {
		return nil, ErrNotShortlisted
	}

	token := s.newToken()
	link := s.InterviewLink(token)

	c.InterviewDate = interviewDate
	c.InterviewLink = link
	c.InterviewToken = token
	c.Status = models.StatusScheduled
	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		return nil, err
	}

	sent := notify.SendSchedule(ctx, s.mailer, s.log, c.Email, interviewDate, link)
	s.log.Info("interview scheduled",
		zap.Int64("candidate_id", c.ID),
		zap.String("interview_date", interviewDate),
		zap.Bool("mail_sent", sent),
	)

	return &ScheduleResult{InterviewDate: interviewDate, InterviewLink: link, MailSent: sent}, nil
}

// ListCandidates returns every candidate, newest first
func (s *Service) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	return s.store.ListCandidates(ctx)
}

// CandidateDetail returns a candidate with its JD and the questions it would
// be asked. Stored questions win over freshly generated ones.
func (s *Service) CandidateDetail(ctx context.Context, id int64) (*CandidateDetail, error) {
	c, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &CandidateDetail{Candidate: c, QuestionPreview: []string{}}
	jd, err := s.jdForCandidate(ctx, c)
	if err != nil {
		return nil, err
	}
	if jd.ID != 0 {
		detail.JDConfig = jd
	}

	switch {
	case len(c.Questions) > 0:
		detail.QuestionPreview = c.Questions
	case c.ResumePath != "" && detail.JDConfig != nil:
		detail.QuestionPreview = questions.Generate(
			s.resumeText(c.ResumePath), jd.JDDict, jd.SkillWeights, jd.QuestionCount, jd.ProjectRatio,
		)
	}
	return detail, nil
}

// ResumePath returns the stored resume of a candidate when it lies inside
// the uploads directory and still exists.
func (s *Service) ResumePath(ctx context.Context, id int64) (string, error) {
	c, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return "", err
	}
	if c.ResumePath == "" {
		return "", ErrNoResume
	}
	if !s.files.Contains(c.ResumePath) {
		s.log.Warn("resume path outside uploads directory",
			zap.Int64("candidate_id", c.ID),
			zap.String("path", c.ResumePath),
		)
		return "", ErrForbidden
	}
	if _, err := os.Stat(c.ResumePath); err != nil {
		return "", ErrNoResume
	}
	return c.ResumePath, nil
}

// ExportReport writes the HR workbook for every candidate to w
func (s *Service) ExportReport(ctx context.Context, w io.Writer) error {
	candidates, jds, err := s.reportData(ctx)
	if err != nil {
		return err
	}
	return export.WriteCandidateReport(w, candidates, jds)
}

// ExportReportFile writes the HR workbook to path and returns the file written
func (s *Service) ExportReportFile(ctx context.Context, path string) (string, error) {
	candidates, jds, err := s.reportData(ctx)
	if err != nil {
		return "", err
	}
	return export.ExportToFile(path, candidates, jds)
}

func (s *Service) reportData(ctx context.Context) ([]*models.Candidate, []*models.JDConfig, error) {
	candidates, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, nil, err
	}
	jds, err := s.store.ListJDConfigs(ctx)
	if err != nil {
		return nil, nil, err
	}
	return candidates, jds, nil
}
