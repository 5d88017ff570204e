package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mohit-756/interview-bot/internal/coerce"
)

// UnmarshalJSON decodes a stored answer leniently. Numeric fields that do not
// parse fall back to zero; the legacy "answer" key is accepted for the text.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("answer is not an object: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("answer is null")
	}

	text := raw["answer_text"]
	if text == nil {
		text = raw["answer"]
	}

	*a = Answer{
		QuestionIndex:    coerce.Int(raw["question_index"], 0),
		QuestionText:     coerce.String(raw["question_text"]),
		AnswerText:       coerce.String(text),
		TimeTakenSeconds: max(0, coerce.Float(raw["time_taken_seconds"], 0)),
	}
	if ts, ok := raw["submitted_at"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			a.SubmittedAt = parsed
		}
	}
	return nil
}

// UnmarshalJSON decodes stored monitoring leniently, one field at a time, so
// a single mistyped value does not reset the rest. A negative or unparseable
// tab count reads as zero.
func (m *MonitoringState) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("monitoring is not an object: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("monitoring is null")
	}

	*m = MonitoringState{
		CameraGranted:  coerce.Bool(raw["camera_granted"], false),
		MicGranted:     coerce.Bool(raw["mic_granted"], false),
		TabSwitchCount: max(0, coerce.Int(raw["tab_switch_count"], 0)),
		LastUpdatedAt:  parseTime(raw["last_updated_at"]),
		CompletedAt:    parseTime(raw["completed_at"]),
	}
	return nil
}

func parseTime(v any) *time.Time {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
