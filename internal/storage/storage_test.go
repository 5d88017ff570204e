package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/mohit-756/interview-bot/internal/models"
)

var candidateRowColumns = []string{
	"id", "name", "email", "resume_path", "jd_config_id", "status", "phase1_result_json",
	"interview_date", "interview_link", "interview_token", "questions_json", "answers_json",
	"monitoring_json", "interview_summary_json", "created_at",
}

var jdRowColumns = []string{
	"id", "title", "jd_text", "jd_dict_json", "skill_weights_json",
	"min_academic_percent", "qualify_score", "question_count", "project_ratio", "created_at",
}

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return New(conn, nil), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db, mock := newMock(t)
	for _, table := range []string{"users", "jd_configs", "candidates"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	expectationsMet(t, mock)
}

func TestCreateUser(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jane@example.com", "hash", "candidate").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))

	u := &models.User{Email: "jane@example.com", PasswordHash: "hash", Role: models.RoleCandidate}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if u.ID != 7 || !u.CreatedAt.Equal(created) {
		t.Errorf("user not filled in: %+v", u)
	}
	expectationsMet(t, mock)
}

func TestCreateUserDuplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := db.CreateUser(context.Background(), &models.User{Email: "hr", Role: models.RoleHR})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM users").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at"}))

	_, err := db.GetUserByEmail(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetJDConfigToleratesBadColumns(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM jd_configs WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(jdRowColumns).AddRow(
			3, "Backend", "Go developer", "not json", `{"go": "4", "sql": 2}`,
			nil, 55, nil, 0, time.Now(),
		))

	jd, err := db.GetJDConfig(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetJDConfig() failed: %v", err)
	}

	if jd.JDDict.MandatoryProgramming == nil || len(jd.JDDict.AllSkills()) != 0 {
		t.Errorf("malformed jd_dict should decode to empty lists, got %+v", jd.JDDict)
	}
	if w, _ := jd.SkillWeights.Get("go"); w != 4 || len(jd.SkillWeights) != 2 {
		t.Errorf("SkillWeights = %+v", jd.SkillWeights)
	}
	if jd.MinAcademicPercent != models.DefaultMinAcademicPercent || jd.QuestionCount != models.DefaultQuestionCount {
		t.Errorf("NULL columns should take defaults, got %d/%d", jd.MinAcademicPercent, jd.QuestionCount)
	}
	if jd.QualifyScore != 55 || jd.ProjectRatio != 0 {
		t.Errorf("stored values should be kept, got %d/%d", jd.QualifyScore, jd.ProjectRatio)
	}
	expectationsMet(t, mock)
}

func TestLatestJDConfigEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id DESC LIMIT 1")).
		WillReturnRows(sqlmock.NewRows(jdRowColumns))

	if _, err := db.LatestJDConfig(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCreateJDConfig(t *testing.T) {
	db, mock := newMock(t)
	jd := &models.JDConfig{
		Title:         "Data Engineer",
		JDText:        "Python and SQL",
		JDDict:        models.JDTaxonomy{MandatoryProgramming: []string{"python"}},
		SkillWeights:  models.SkillWeights{{Skill: "python", Weight: 100}},
		QualifyScore:  60,
		QuestionCount: 10,
		ProjectRatio:  80,
	}
	mock.ExpectQuery("INSERT INTO jd_configs").
		WithArgs("Data Engineer", "Python and SQL",
			`{"mandatory_programming":["python"],"domain_skills":[],"optional_domains":[],"tools":[],"soft_skills":[]}`,
			`{"python":100}`, 0, 60, 10, 80).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	if err := db.CreateJDConfig(context.Background(), jd); err != nil {
		t.Fatalf("CreateJDConfig() failed: %v", err)
	}
	if jd.ID != 1 {
		t.Errorf("ID = %d, want 1", jd.ID)
	}
	expectationsMet(t, mock)
}

func TestGetCandidateByTokenToleratesBadColumns(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM candidates WHERE interview_token = $1")).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(candidateRowColumns).AddRow(
			5, "Jane", "jane@example.com", "uploads/cv.pdf", 2, "scheduled", "null",
			"2024-05-01 10:00", "http://x/interview/tok", "tok",
			`["q1", {"question": "q2"}, "", 7]`,
			`[{"question_index": 2, "answer": "later"}, 5, null, {"question_index": 0, "answer_text": "first"}]`,
			"garbage", nil, time.Now(),
		))

	c, err := db.GetCandidateByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("GetCandidateByToken() failed: %v", err)
	}

	if c.JDConfigID == nil || *c.JDConfigID != 2 {
		t.Errorf("JDConfigID = %v", c.JDConfigID)
	}
	if c.Phase1Result != nil || c.InterviewSummary != nil {
		t.Error("null JSON columns should decode to nil")
	}
	if len(c.Questions) != 3 || c.Questions[1] != "q2" || c.Questions[2] != "7" {
		t.Errorf("Questions = %q", c.Questions)
	}
	if len(c.Answers) != 2 || c.Answers[0].AnswerText != "first" || c.Answers[1].AnswerText != "later" {
		t.Errorf("Answers = %+v", c.Answers)
	}
	if c.Monitoring != (models.MonitoringState{}) {
		t.Errorf("malformed monitoring should be empty, got %+v", c.Monitoring)
	}
	expectationsMet(t, mock)
}

func TestGetCandidateKeepsWellTypedMonitoringFields(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM candidates WHERE interview_token = $1")).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(candidateRowColumns).AddRow(
			5, "Jane", "jane@example.com", "uploads/cv.pdf", 2, "scheduled", "null",
			"2024-05-01 10:00", "http://x/interview/tok", "tok", "[]", "[]",
			`{"camera_granted": true, "mic_granted": "maybe", "tab_switch_count": "3", "last_updated_at": "2024-05-01T10:05:00Z", "completed_at": 12}`,
			nil, time.Now(),
		))

	c, err := db.GetCandidateByToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("GetCandidateByToken() failed: %v", err)
	}

	m := c.Monitoring
	if !m.CameraGranted || m.MicGranted || m.TabSwitchCount != 3 {
		t.Errorf("Monitoring = %+v", m)
	}
	if m.LastUpdatedAt == nil || !m.LastUpdatedAt.Equal(time.Date(2024, 5, 1, 10, 5, 0, 0, time.UTC)) {
		t.Errorf("LastUpdatedAt = %v", m.LastUpdatedAt)
	}
	if m.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil for a non-string value", m.CompletedAt)
	}
	expectationsMet(t, mock)
}

func TestGetCandidateByEmptyToken(t *testing.T) {
	db, mock := newMock(t)
	if _, err := db.GetCandidateByToken(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateCandidate(t *testing.T) {
	db, mock := newMock(t)
	jdID := int64(4)
	c := &models.Candidate{
		ID:         9,
		Name:       "Jane",
		ResumePath: "uploads/cv.pdf",
		JDConfigID: &jdID,
		Status:     models.StatusShortlisted,
		Phase1Result: &models.ResumeAnalysisResult{
			CandidateType: models.Fresher, FinalScore: 54.8, Decision: models.Shortlisted,
		},
	}

	mock.ExpectExec("UPDATE candidates SET").
		WithArgs("Jane", "uploads/cv.pdf", int64(4), "shortlisted", sqlmock.AnyArg(),
			nil, nil, nil, "[]", "[]", sqlmock.AnyArg(), nil, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := db.UpdateCandidate(context.Background(), c); err != nil {
		t.Fatalf("UpdateCandidate() failed: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateCandidateMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE candidates SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := db.UpdateCandidate(context.Background(), &models.Candidate{ID: 404, Status: models.StatusNew})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListCandidates(t *testing.T) {
	db, mock := newMock(t)
	rows := sqlmock.NewRows(candidateRowColumns)
	for _, id := range []driver.Value{int64(2), int64(1)} {
		rows.AddRow(id, "C", "c@example.com", nil, nil, "new", nil, nil, nil, nil, nil, nil, nil, nil, time.Now())
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM candidates ORDER BY id DESC")).WillReturnRows(rows)

	list, err := db.ListCandidates(context.Background())
	if err != nil {
		t.Fatalf("ListCandidates() failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].Questions == nil || list[0].Answers == nil {
		t.Error("empty JSON columns should decode to empty lists")
	}
	expectationsMet(t, mock)
}
