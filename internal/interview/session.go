package interview

import (
	"sort"
	"strings"
	"time"

	"github.com/mohit-756/interview-bot/internal/coerce"
	"github.com/mohit-756/interview-bot/internal/models"
)

// AnswerFromPayload builds an answer from a loosely typed request body.
// Missing or malformed fields default to zero values; negative durations
// become 0 and durations keep two decimals.
func AnswerFromPayload(payload map[string]any, now time.Time) models.Answer {
	return models.Answer{
		QuestionIndex:    max(0, coerce.Int(payload["question_index"], 0)),
		QuestionText:     strings.TrimSpace(coerce.String(payload["question_text"])),
		AnswerText:       strings.TrimSpace(coerce.String(payload["answer"])),
		TimeTakenSeconds: round2(max(0, coerce.Float(payload["time_taken_seconds"], 0))),
		SubmittedAt:      now.UTC(),
	}
}

// UpsertAnswer replaces the answer with the same question index or adds it,
// returning a new list sorted by question index.
func UpsertAnswer(answers []models.Answer, incoming models.Answer) []models.Answer {
	out := make([]models.Answer, 0, len(answers)+1)
	replaced := false
	for _, a := range answers {
		if a.QuestionIndex == incoming.QuestionIndex {
			if !replaced {
				out = append(out, incoming)
				replaced = true
			}
			continue
		}
		out = append(out, a)
	}
	if !replaced {
		out = append(out, incoming)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QuestionIndex < out[j].QuestionIndex
	})
	return out
}

// MonitoringFromPayload reads the optional proctoring fields of a request
// body. Absent or unparseable fields are left nil.
func MonitoringFromPayload(payload map[string]any) models.MonitoringUpdate {
	var u models.MonitoringUpdate
	if v, ok := payload["camera_granted"]; ok {
		b := coerce.Bool(v, false)
		u.CameraGranted = &b
	}
	if v, ok := payload["mic_granted"]; ok {
		b := coerce.Bool(v, false)
		u.MicGranted = &b
	}
	if v, ok := payload["tab_switch_count"]; ok {
		if n := coerce.Int(v, -1); n >= 0 {
			u.TabSwitchCount = &n
		}
	}
	return u
}

// MergeMonitoring applies a partial update to the prior state. Booleans
// take the reported value, and the tab switch count never decreases.
func MergeMonitoring(prior models.MonitoringState, u models.MonitoringUpdate, now time.Time) models.MonitoringState {
	next := prior
	if u.CameraGranted != nil {
		next.CameraGranted = *u.CameraGranted
	}
	if u.MicGranted != nil {
		next.MicGranted = *u.MicGranted
	}
	if u.TabSwitchCount != nil {
		next.TabSwitchCount = max(prior.TabSwitchCount, *u.TabSwitchCount)
	}
	ts := now.UTC()
	next.LastUpdatedAt = &ts
	return next
}

// Complete merges the final monitoring report and stamps the completion time
func Complete(prior models.MonitoringState, u models.MonitoringUpdate, now time.Time) models.MonitoringState {
	next := MergeMonitoring(prior, u, now)
	ts := now.UTC()
	next.CompletedAt = &ts
	return next
}
