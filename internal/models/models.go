package models

import (
	"time"
)

// CandidateType classifies a resume before scoring
type CandidateType string

const (
	Fresher     CandidateType = "fresher"
	Experienced CandidateType = "experienced"
)

// Decision is the outcome of resume screening
type Decision string

const (
	Shortlisted Decision = "Shortlisted"
	Rejected    Decision = "Rejected"
)

// CandidateStatus tracks where a candidate is in the hiring flow
type CandidateStatus string

const (
	StatusNew                CandidateStatus = "new"
	StatusShortlisted        CandidateStatus = "shortlisted"
	StatusRejected           CandidateStatus = "rejected"
	StatusScheduled          CandidateStatus = "scheduled"
	StatusInterviewCompleted CandidateStatus = "interview_completed"
)

// Role distinguishes HR staff from candidates
type Role string

const (
	RoleHR        Role = "hr"
	RoleCandidate Role = "candidate"
)

// Defaults applied to a JD configuration when HR leaves a field empty
const (
	DefaultMinAcademicPercent = 60
	DefaultQualifyScore       = 60
	DefaultQuestionCount      = 10
	DefaultProjectRatio       = 80
)

// User is a login account
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// JDConfig is an HR-defined job description with its screening parameters.
// Rows are never updated; a new edit creates a new row.
type JDConfig struct {
	ID                 int64        `json:"id"`
	Title              string       `json:"title"`
	JDText             string       `json:"jd_text"`
	JDDict             JDTaxonomy   `json:"jd_dict"`
	SkillWeights       SkillWeights `json:"skill_weights"`
	MinAcademicPercent int          `json:"min_academic_percent"`
	QualifyScore       int          `json:"qualify_score"`
	QuestionCount      int          `json:"question_count"`
	ProjectRatio       int          `json:"project_ratio"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Candidate is an applicant and everything recorded about their application
type Candidate struct {
	ID               int64                 `json:"id"`
	Name             string                `json:"name"`
	Email            string                `json:"email"`
	ResumePath       string                `json:"resume_path,omitempty"`
	JDConfigID       *int64                `json:"jd_config_id,omitempty"`
	Status           CandidateStatus       `json:"status"`
	Phase1Result     *ResumeAnalysisResult `json:"phase1_result,omitempty"`
	InterviewDate    string                `json:"interview_date,omitempty"`
	InterviewLink    string                `json:"interview_link,omitempty"`
	InterviewToken   string                `json:"interview_token,omitempty"`
	Questions        []string              `json:"questions"`
	Answers          []Answer              `json:"answers"`
	Monitoring       MonitoringState       `json:"monitoring"`
	InterviewSummary *InterviewSummary     `json:"interview_summary,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// Answer is one timed response in an interview session
type Answer struct {
	QuestionIndex    int       `json:"question_index"`
	QuestionText     string    `json:"question_text"`
	AnswerText       string    `json:"answer_text"`
	TimeTakenSeconds float64   `json:"time_taken_seconds"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// MonitoringState holds the proctoring signals reported by the interview page
type MonitoringState struct {
	CameraGranted  bool       `json:"camera_granted"`
	MicGranted     bool       `json:"mic_granted"`
	TabSwitchCount int        `json:"tab_switch_count"`
	LastUpdatedAt  *time.Time `json:"last_updated_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// MonitoringUpdate is a partial monitoring report; nil fields keep the prior value
type MonitoringUpdate struct {
	CameraGranted  *bool
	MicGranted     *bool
	TabSwitchCount *int
}

// ResumeAnalysisResult is the outcome of scoring one resume against a JD
type ResumeAnalysisResult struct {
	CandidateType   CandidateType       `json:"candidate_type"`
	ExperienceYears int                 `json:"experience_years"`
	FinalScore      float64             `json:"final_score"`
	Decision        Decision            `json:"decision"`
	DomainScores    map[string]int      `json:"domain_scores"`
	MatchedDetails  map[string][]string `json:"matched_details"`
	Strength        string              `json:"strength,omitempty"`
	Weakness        string              `json:"weakness,omitempty"`
}

// InterviewSummary is computed once the candidate completes the interview
type InterviewSummary struct {
	TotalQuestions     int     `json:"total_questions"`
	AnsweredCount      int     `json:"answered_count"`
	AvgAnswerLength    float64 `json:"avg_answer_length"`
	TotalTimeSeconds   float64 `json:"total_time_seconds"`
	TabSwitchCount     int     `json:"tab_switch_count"`
	CameraGranted      bool    `json:"camera_granted"`
	MicGranted         bool    `json:"mic_granted"`
	CommunicationScore int     `json:"communication_score"`
}

// RegisterRequest is the payload for candidate sign-up
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for both HR and candidate login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// JDCreateRequest carries the HR form. Numeric fields arrive loosely typed.
type JDCreateRequest struct {
	Title              string       `json:"title"`
	JDText             string       `json:"jd_text"`
	JDDict             *JDTaxonomy  `json:"jd_dict,omitempty"`
	SkillWeights       SkillWeights `json:"skill_weights,omitempty"`
	MinAcademicPercent any          `json:"min_academic_percent,omitempty"`
	QualifyScore       any          `json:"qualify_score,omitempty"`
	QuestionCount      any          `json:"question_count,omitempty"`
	ProjectRatio       any          `json:"project_ratio,omitempty"`
}

// ScheduleRequest is the payload for booking an interview slot
type ScheduleRequest struct {
	InterviewDate string `json:"interview_date" binding:"required"`
}

// ExtractionResponse is returned by the JD extract action
type ExtractionResponse struct {
	JDDict       JDTaxonomy   `json:"jd_dict"`
	SkillWeights SkillWeights `json:"skill_weights"`
}
