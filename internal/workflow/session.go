package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/interview"
	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/questions"
)

// InterviewView is what the interview page needs to render
type InterviewView struct {
	Token         string                 `json:"token"`
	Name          string                 `json:"name"`
	InterviewDate string                 `json:"interview_date"`
	Questions     []string               `json:"questions"`
	Answers       []models.Answer        `json:"existing_answers"`
	Monitoring    models.MonitoringState `json:"monitoring"`
}

// SaveResult acknowledges a saved answer
type SaveResult struct {
	OK         bool `json:"ok"`
	SavedCount int  `json:"saved_count"`
}

// CompleteResult acknowledges the end of an interview
type CompleteResult struct {
	OK      bool                    `json:"ok"`
	DoneURL string                  `json:"done_url"`
	Summary models.InterviewSummary `json:"summary"`
}

// DoneView is the post-interview summary page
type DoneView struct {
	Name    string                   `json:"name"`
	Summary *models.InterviewSummary `json:"summary"`
}

// OpenInterview loads the session behind token. Questions are derived and
// stored on first open.
func (s *Service) OpenInterview(ctx context.Context, token string) (*InterviewView, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	c, err := s.store.GetCandidateByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.ensureQuestions(ctx, c); err != nil {
		return nil, err
	}

	return &InterviewView{
		Token:         token,
		Name:          c.Name,
		InterviewDate: c.InterviewDate,
		Questions:     c.Questions,
		Answers:       c.Answers,
		Monitoring:    c.Monitoring,
	}, nil
}

// SaveAnswer records one answer, replacing an earlier one for the same question
func (s *Service) SaveAnswer(ctx context.Context, token string, payload map[string]any) (*SaveResult, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	c, err := s.store.GetCandidateByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	answer := interview.AnswerFromPayload(payload, s.now())
	c.Answers = interview.UpsertAnswer(c.Answers, answer)
	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		return nil, err
	}

	s.log.Debug("answer saved",
		zap.Int64("candidate_id", c.ID),
		zap.Int("question_index", answer.QuestionIndex),
		zap.Int("saved_count", len(c.Answers)),
	)
	return &SaveResult{OK: true, SavedCount: len(c.Answers)}, nil
}

// UpdateMonitoring merges a proctoring report into the session
func (s *Service) UpdateMonitoring(ctx context.Context, token string, payload map[string]any) (models.MonitoringState, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	c, err := s.store.GetCandidateByToken(ctx, token)
	if err != nil {
		return models.MonitoringState{}, err
	}

	c.Monitoring = interview.MergeMonitoring(c.Monitoring, interview.MonitoringFromPayload(payload), s.now())
	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		return models.MonitoringState{}, err
	}
	return c.Monitoring, nil
}

// Complete closes the session and stores its summary. Calling it again
// recomputes the summary from the stored answers.
func (s *Service) Complete(ctx context.Context, token string, payload map[string]any) (*CompleteResult, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	c, err := s.store.GetCandidateByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.ensureQuestions(ctx, c); err != nil {
		return nil, err
	}

	c.Monitoring = interview.Complete(c.Monitoring, interview.MonitoringFromPayload(payload), s.now())
	summary := interview.Summarize(len(c.Questions), c.Answers, c.Monitoring)
	c.InterviewSummary = &summary
	c.Status = models.StatusInterviewCompleted
	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("interview completed",
		zap.Int64("candidate_id", c.ID),
		zap.Int("answered", summary.AnsweredCount),
		zap.Int("total_questions", summary.TotalQuestions),
		zap.Int("communication_score", summary.CommunicationScore),
		zap.Int("tab_switch_count", summary.TabSwitchCount),
	)

	return &CompleteResult{
		OK:      true,
		DoneURL: "/interview/" + token + "/done",
		Summary: summary,
	}, nil
}

// Done returns the stored summary of a completed session. Summary is nil
// until the interview is completed.
func (s *Service) Done(ctx context.Context, token string) (*DoneView, error) {
	c, err := s.store.GetCandidateByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &DoneView{Name: c.Name, Summary: c.InterviewSummary}, nil
}

// ensureQuestions derives and stores the question list when c has none
func (s *Service) ensureQuestions(ctx context.Context, c *models.Candidate) error {
	if len(c.Questions) > 0 {
		return nil
	}

	jd, err := s.jdForCandidate(ctx, c)
	if err != nil {
		return err
	}

	qs := questions.Generate(s.resumeText(c.ResumePath), jd.JDDict, jd.SkillWeights, jd.QuestionCount, jd.ProjectRatio)
	if len(qs) == 0 {
		qs = questions.FallbackFromJD(jd.JDDict)
	}

	c.Questions = qs
	if err := s.store.UpdateCandidate(ctx, c); err != nil {
		return err
	}
	s.log.Info("interview questions derived",
		zap.Int64("candidate_id", c.ID),
		zap.Int("count", len(qs)),
	)
	return nil
}
