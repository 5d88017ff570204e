package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mohit-756/interview-bot/internal/models"
)

const candidateColumns = `id, name, email, resume_path, jd_config_id, status, phase1_result_json,
	interview_date, interview_link, interview_token, questions_json, answers_json,
	monitoring_json, interview_summary_json, created_at`

// CreateCandidate inserts a new candidate with status new
func (db *DB) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	if c.Status == "" {
		c.Status = models.StatusNew
	}
	query := `INSERT INTO candidates (name, email, status) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := db.connection.QueryRowContext(ctx, query, c.Name, c.Email, string(c.Status)).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", translate(err))
	}
	if c.Questions == nil {
		c.Questions = []string{}
	}
	if c.Answers == nil {
		c.Answers = []models.Answer{}
	}
	return nil
}

// GetCandidate returns the candidate with the given id
func (db *DB) GetCandidate(ctx context.Context, id int64) (*models.Candidate, error) {
	return db.getCandidate(ctx, "id", id)
}

// GetCandidateByEmail returns the candidate registered under email
func (db *DB) GetCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	return db.getCandidate(ctx, "email", email)
}

// GetCandidateByToken returns the candidate holding an interview token
func (db *DB) GetCandidateByToken(ctx context.Context, token string) (*models.Candidate, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return db.getCandidate(ctx, "interview_token", token)
}

// column is one of the fixed lookup columns above, never user input
func (db *DB) getCandidate(ctx context.Context, column string, value any) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE ` + column + ` = $1`
	return scanCandidate(db.connection.QueryRowContext(ctx, query, value))
}

// ListCandidates returns every candidate, newest first
func (db *DB) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	rows, err := db.connection.QueryContext(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []*models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// UpdateCandidate writes every mutable field of c
func (db *DB) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	questions := c.Questions
	if questions == nil {
		questions = []string{}
	}
	answers := c.Answers
	if answers == nil {
		answers = []models.Answer{}
	}

	encoded := make([]any, 0, 5)
	for _, v := range []any{c.Phase1Result, questions, answers, c.Monitoring, c.InterviewSummary} {
		e, err := encodeJSON(v)
		if err != nil {
			return fmt.Errorf("failed to encode candidate %d: %w", c.ID, err)
		}
		encoded = append(encoded, e)
	}

	query := `UPDATE candidates SET
		name = $1, resume_path = $2, jd_config_id = $3, status = $4, phase1_result_json = $5,
		interview_date = $6, interview_link = $7, interview_token = $8,
		questions_json = $9, answers_json = $10, monitoring_json = $11, interview_summary_json = $12
		WHERE id = $13`
	res, err := db.connection.ExecContext(ctx, query,
		c.Name,
		nullString(c.ResumePath),
		nullInt64(c.JDConfigID),
		string(c.Status),
		encoded[0],
		nullString(c.InterviewDate),
		nullString(c.InterviewLink),
		nullString(c.InterviewToken),
		encoded[1],
		encoded[2],
		encoded[3],
		encoded[4],
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate %d: %w", c.ID, translate(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCandidate(s scanner) (*models.Candidate, error) {
	var (
		c                                  models.Candidate
		resumePath, date, link, token      sql.NullString
		jdID                               sql.NullInt64
		status                             string
		phase1, qs, answers, monitor, summ []byte
		createdAt                          sql.NullTime
	)
	err := s.Scan(&c.ID, &c.Name, &c.Email, &resumePath, &jdID, &status, &phase1,
		&date, &link, &token, &qs, &answers, &monitor, &summ, &createdAt)
	if err != nil {
		return nil, translate(err)
	}

	c.ResumePath = resumePath.String
	if jdID.Valid {
		id := jdID.Int64
		c.JDConfigID = &id
	}
	c.Status = models.CandidateStatus(status)
	c.Phase1Result = decodePhase1(phase1)
	c.InterviewDate = date.String
	c.InterviewLink = link.String
	c.InterviewToken = token.String
	c.Questions = decodeQuestions(qs)
	c.Answers = decodeAnswers(answers)
	c.Monitoring = decodeMonitoring(monitor)
	c.InterviewSummary = decodeSummary(summ)
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	return &c, nil
}
