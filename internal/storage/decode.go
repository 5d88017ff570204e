package storage

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/questions"
)

// decodeQuestions returns the stored question texts; anything malformed yields none
func decodeQuestions(raw []byte) []string {
	var list []any
	if len(raw) == 0 || json.Unmarshal(raw, &list) != nil {
		return []string{}
	}
	return questions.NormalizeQuestions(list)
}

// decodeAnswers keeps the well-formed answers, sorted by question index
func decodeAnswers(raw []byte) []models.Answer {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return []models.Answer{}
	}

	answers := make([]models.Answer, 0, len(items))
	for _, item := range items {
		var a models.Answer
		if err := json.Unmarshal(item, &a); err != nil {
			continue
		}
		answers = append(answers, a)
	}
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].QuestionIndex < answers[j].QuestionIndex
	})
	return answers
}

func decodeMonitoring(raw []byte) models.MonitoringState {
	var m models.MonitoringState
	if len(raw) == 0 || json.Unmarshal(raw, &m) != nil {
		return models.MonitoringState{}
	}
	return m
}

func decodeSummary(raw []byte) *models.InterviewSummary {
	var s models.InterviewSummary
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return &s
}

func decodePhase1(raw []byte) *models.ResumeAnalysisResult {
	var r models.ResumeAnalysisResult
	if isNull(raw) || json.Unmarshal(raw, &r) != nil {
		return nil
	}
	return &r
}

func decodeTaxonomy(raw []byte) models.JDTaxonomy {
	var t models.JDTaxonomy
	if len(raw) == 0 || json.Unmarshal(raw, &t) != nil {
		return models.JDTaxonomy{}.Normalized()
	}
	return t
}

func decodeWeights(raw []byte) models.SkillWeights {
	var w models.SkillWeights
	if len(raw) == 0 || json.Unmarshal(raw, &w) != nil || w == nil {
		return models.SkillWeights{}
	}
	return w
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// encodeJSON marshals v for a text column; nil pointers become NULL
func encodeJSON(v any) (any, error) {
	switch x := v.(type) {
	case *models.ResumeAnalysisResult:
		if x == nil {
			return nil, nil
		}
	case *models.InterviewSummary:
		if x == nil {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
