package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mohit-756/interview-bot/internal/models"
)

const jdColumns = `id, COALESCE(title, ''), jd_text, jd_dict_json, skill_weights_json,
	min_academic_percent, qualify_score, question_count, project_ratio, created_at`

// CreateJDConfig inserts a new JD configuration. Rows are never updated.
func (db *DB) CreateJDConfig(ctx context.Context, jd *models.JDConfig) error {
	dict, err := encodeJSON(jd.JDDict)
	if err != nil {
		return fmt.Errorf("failed to encode jd_dict: %w", err)
	}
	weights, err := encodeJSON(jd.SkillWeights)
	if err != nil {
		return fmt.Errorf("failed to encode skill_weights: %w", err)
	}

	query := `INSERT INTO jd_configs
		(title, jd_text, jd_dict_json, skill_weights_json, min_academic_percent, qualify_score, question_count, project_ratio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	err = db.connection.QueryRowContext(ctx, query,
		jd.Title,
		jd.JDText,
		dict,
		weights,
		jd.MinAcademicPercent,
		jd.QualifyScore,
		jd.QuestionCount,
		jd.ProjectRatio,
	).Scan(&jd.ID, &jd.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create jd config: %w", translate(err))
	}
	return nil
}

// GetJDConfig returns the configuration with the given id
func (db *DB) GetJDConfig(ctx context.Context, id int64) (*models.JDConfig, error) {
	row := db.connection.QueryRowContext(ctx, `SELECT `+jdColumns+` FROM jd_configs WHERE id = $1`, id)
	return scanJDConfig(row)
}

// LatestJDConfig returns the most recently created configuration
func (db *DB) LatestJDConfig(ctx context.Context) (*models.JDConfig, error) {
	row := db.connection.QueryRowContext(ctx, `SELECT `+jdColumns+` FROM jd_configs ORDER BY id DESC LIMIT 1`)
	return scanJDConfig(row)
}

// ListJDConfigs returns every configuration, newest first
func (db *DB) ListJDConfigs(ctx context.Context) ([]*models.JDConfig, error) {
	rows, err := db.connection.QueryContext(ctx, `SELECT `+jdColumns+` FROM jd_configs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jd configs: %w", err)
	}
	defer rows.Close()

	configs := []*models.JDConfig{}
	for rows.Next() {
		jd, err := scanJDConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, jd)
	}
	return configs, rows.Err()
}

func scanJDConfig(s scanner) (*models.JDConfig, error) {
	var (
		jd                               models.JDConfig
		dict, weights                    []byte
		minAcademic, qualify, count, pct sql.NullInt64
		createdAt                        sql.NullTime
	)
	err := s.Scan(&jd.ID, &jd.Title, &jd.JDText, &dict, &weights,
		&minAcademic, &qualify, &count, &pct, &createdAt)
	if err != nil {
		return nil, translate(err)
	}

	jd.JDDict = decodeTaxonomy(dict)
	jd.SkillWeights = decodeWeights(weights)
	jd.MinAcademicPercent = intOr(minAcademic, models.DefaultMinAcademicPercent)
	jd.QualifyScore = intOr(qualify, models.DefaultQualifyScore)
	jd.QuestionCount = intOr(count, models.DefaultQuestionCount)
	jd.ProjectRatio = intOr(pct, models.DefaultProjectRatio)
	if createdAt.Valid {
		jd.CreatedAt = createdAt.Time
	}
	return &jd, nil
}

func intOr(n sql.NullInt64, def int) int {
	if !n.Valid {
		return def
	}
	return int(n.Int64)
}
