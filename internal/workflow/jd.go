package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/coerce"
	"github.com/mohit-756/interview-bot/internal/extraction"
	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/storage"
)

const defaultJDTitle = "Untitled JD"

// ExtractJD derives the taxonomy of jdText with equal default weights
func (s *Service) ExtractJD(ctx context.Context, jdText string) models.ExtractionResponse {
	taxonomy := s.extractor.Extract(ctx, jdText)
	return models.ExtractionResponse{
		JDDict:       taxonomy,
		SkillWeights: extraction.DefaultWeights(taxonomy),
	}
}

// CreateJD stores a new JD configuration. A missing taxonomy is extracted
// from the text and missing weights default to equal shares.
func (s *Service) CreateJD(ctx context.Context, req models.JDCreateRequest) (*models.JDConfig, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultJDTitle
	}
	jdText := strings.TrimSpace(req.JDText)

	var taxonomy models.JDTaxonomy
	if req.JDDict != nil {
		taxonomy = req.JDDict.Normalized()
	} else {
		if jdText == "" {
			return nil, fmt.Errorf("%w: jd_text or jd_dict is required", ErrInvalidInput)
		}
		taxonomy = s.extractor.Extract(ctx, jdText)
	}

	weights := req.SkillWeights
	if len(weights) == 0 {
		weights = extraction.DefaultWeights(taxonomy)
	}

	jd := &models.JDConfig{
		Title:              title,
		JDText:             jdText,
		JDDict:             taxonomy,
		SkillWeights:       weights,
		MinAcademicPercent: coerce.Int(req.MinAcademicPercent, models.DefaultMinAcademicPercent),
		QualifyScore:       coerce.Int(req.QualifyScore, models.DefaultQualifyScore),
		QuestionCount:      max(1, coerce.Int(req.QuestionCount, models.DefaultQuestionCount)),
		ProjectRatio:       coerce.Clamp(coerce.Int(req.ProjectRatio, models.DefaultProjectRatio), 0, 100),
	}
	if err := s.store.CreateJDConfig(ctx, jd); err != nil {
		return nil, err
	}

	s.log.Info("jd config created",
		zap.Int64("jd_config_id", jd.ID),
		zap.String("title", jd.Title),
		zap.Int("skills", len(taxonomy.AllSkills())),
	)
	return jd, nil
}

// ListJDs returns every JD configuration, newest first
func (s *Service) ListJDs(ctx context.Context) ([]*models.JDConfig, error) {
	return s.store.ListJDConfigs(ctx)
}

// LatestJD returns the newest JD configuration or ErrNoJDConfig
func (s *Service) LatestJD(ctx context.Context) (*models.JDConfig, error) {
	return s.jdOrErr(s.store.LatestJDConfig(ctx))
}

// GetJD returns one JD configuration or ErrNoJDConfig
func (s *Service) GetJD(ctx context.Context, id int64) (*models.JDConfig, error) {
	return s.jdOrErr(s.store.GetJDConfig(ctx, id))
}

func (s *Service) jdOrErr(jd *models.JDConfig, err error) (*models.JDConfig, error) {
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoJDConfig
	}
	return jd, err
}

// jdForCandidate returns the candidate's JD, the latest one when it is
// gone, or an empty configuration with defaults when none exist.
func (s *Service) jdForCandidate(ctx context.Context, c *models.Candidate) (*models.JDConfig, error) {
	if c.JDConfigID != nil {
		jd, err := s.store.GetJDConfig(ctx, *c.JDConfigID)
		if err == nil {
			return jd, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	jd, err := s.store.LatestJDConfig(ctx)
	if err == nil {
		return jd, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return &models.JDConfig{
		JDDict:             models.JDTaxonomy{}.Normalized(),
		MinAcademicPercent: models.DefaultMinAcademicPercent,
		QualifyScore:       models.DefaultQualifyScore,
		QuestionCount:      models.DefaultQuestionCount,
		ProjectRatio:       models.DefaultProjectRatio,
	}, nil
}
