package interview

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mohit-756/interview-bot/internal/models"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		answers   []models.Answer
		wantCount int
		wantAvg   float64
		wantTime  float64
		wantScore int
	}{
		{
			name:  "Partial coverage",
			total: 4,
			answers: []models.Answer{
				{QuestionIndex: 0, AnswerText: words(30), TimeTakenSeconds: 12.5},
				{QuestionIndex: 1, AnswerText: "   ", TimeTakenSeconds: 100},
				{QuestionIndex: 2, AnswerText: words(10), TimeTakenSeconds: 7.25},
			},
			wantCount: 2,
			wantAvg:   20,
			wantTime:  19.75,
			wantScore: 6,
		},
		{
			name:  "Half rounds to even",
			total: 8,
			answers: []models.Answer{
				{QuestionIndex: 0, AnswerText: words(7)},
				{QuestionIndex: 1, AnswerText: words(8)},
			},
			wantCount: 2,
			wantAvg:   7.5,
			wantScore: 2,
		},
		{
			name:      "Nothing answered",
			total:     0,
			wantScore: 0,
		},
		{
			name:  "Full marks",
			total: 2,
			answers: []models.Answer{
				{QuestionIndex: 0, AnswerText: words(40), TimeTakenSeconds: 1.111},
				{QuestionIndex: 1, AnswerText: words(50), TimeTakenSeconds: 2.222},
			},
			wantCount: 2,
			wantAvg:   45,
			wantTime:  3.33,
			wantScore: 10,
		},
		{
			name:  "Average keeps two decimals",
			total: 3,
			answers: []models.Answer{
				{AnswerText: words(1)},
				{QuestionIndex: 1, AnswerText: words(1)},
				{QuestionIndex: 2, AnswerText: words(2)},
			},
			wantCount: 3,
			wantAvg:   1.33,
			wantScore: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.total, tt.answers, models.MonitoringState{})
			if got.TotalQuestions != tt.total || got.AnsweredCount != tt.wantCount {
				t.Errorf("counts = %d/%d, want %d/%d", got.AnsweredCount, got.TotalQuestions, tt.wantCount, tt.total)
			}
			if got.AvgAnswerLength != tt.wantAvg {
				t.Errorf("AvgAnswerLength = %v, want %v", got.AvgAnswerLength, tt.wantAvg)
			}
			if got.TotalTimeSeconds != tt.wantTime {
				t.Errorf("TotalTimeSeconds = %v, want %v", got.TotalTimeSeconds, tt.wantTime)
			}
			if got.CommunicationScore != tt.wantScore {
				t.Errorf("CommunicationScore = %d, want %d", got.CommunicationScore, tt.wantScore)
			}
		})
	}
}

func TestSummarizeCopiesMonitoring(t *testing.T) {
	m := models.MonitoringState{CameraGranted: true, MicGranted: false, TabSwitchCount: 3}
	got := Summarize(1, nil, m)
	if !got.CameraGranted || got.MicGranted || got.TabSwitchCount != 3 {
		t.Errorf("monitoring not carried into summary: %+v", got)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	answers := []models.Answer{
		{QuestionIndex: 0, AnswerText: words(12), TimeTakenSeconds: 4.2},
		{QuestionIndex: 3, AnswerText: words(25), TimeTakenSeconds: 9.9},
	}
	m := models.MonitoringState{CameraGranted: true, TabSwitchCount: 1}

	first := Summarize(5, answers, m)
	second := Summarize(5, answers, m)
	if first != second {
		t.Errorf("summaries differ: %+v vs %+v", first, second)
	}
}

func TestUpsertAnswer(t *testing.T) {
	var answers []models.Answer
	answers = UpsertAnswer(answers, models.Answer{QuestionIndex: 2, AnswerText: "two"})
	answers = UpsertAnswer(answers, models.Answer{QuestionIndex: 0, AnswerText: "zero"})
	answers = UpsertAnswer(answers, models.Answer{QuestionIndex: 2, AnswerText: "two again"})

	if len(answers) != 2 {
		t.Fatalf("Expected 2 answers, got %d", len(answers))
	}
	if answers[0].QuestionIndex != 0 || answers[1].QuestionIndex != 2 {
		t.Errorf("answers not sorted: %+v", answers)
	}
	if answers[1].AnswerText != "two again" {
		t.Errorf("Expected overwrite, got %q", answers[1].AnswerText)
	}
}

func TestUpsertAnswerDoesNotMutateInput(t *testing.T) {
	original := []models.Answer{{QuestionIndex: 1, AnswerText: "old"}}
	_ = UpsertAnswer(original, models.Answer{QuestionIndex: 1, AnswerText: "new"})
	if original[0].AnswerText != "old" {
		t.Error("UpsertAnswer modified its input")
	}
}

func TestAnswerFromPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    models.Answer
	}{
		{
			name: "Well formed",
			payload: map[string]any{
				"question_index":     float64(3),
				"question_text":      " What is Go? ",
				"answer":             " A language ",
				"time_taken_seconds": 12.3456,
			},
			want: models.Answer{QuestionIndex: 3, QuestionText: "What is Go?", AnswerText: "A language", TimeTakenSeconds: 12.35},
		},
		{
			name: "Loose types",
			payload: map[string]any{
				"question_index":     "4",
				"answer":             42,
				"time_taken_seconds": "-5",
			},
			want: models.Answer{QuestionIndex: 4, AnswerText: "42"},
		},
		{
			name:    "Garbage",
			payload: map[string]any{"question_index": "x", "time_taken_seconds": "slow"},
			want:    models.Answer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnswerFromPayload(tt.payload, fixedNow)
			tt.want.SubmittedAt = fixedNow
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AnswerFromPayload() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTabSwitchCountNeverDecreases(t *testing.T) {
	state := models.MonitoringState{}
	reports := []any{5, 3, "2", 7, 0, "junk"}
	want := []int{5, 5, 5, 7, 7, 7}

	for i, r := range reports {
		u := MonitoringFromPayload(map[string]any{"tab_switch_count": r})
		state = MergeMonitoring(state, u, fixedNow)
		if state.TabSwitchCount != want[i] {
			t.Errorf("after report %v: count = %d, want %d", r, state.TabSwitchCount, want[i])
		}
	}
}

func TestMergeMonitoringBooleans(t *testing.T) {
	prior := models.MonitoringState{CameraGranted: true, MicGranted: true, TabSwitchCount: 2}

	got := MergeMonitoring(prior, MonitoringFromPayload(map[string]any{"mic_granted": false}), fixedNow)
	if !got.CameraGranted {
		t.Error("absent camera_granted must keep the prior value")
	}
	if got.MicGranted {
		t.Error("mic_granted should take the reported value")
	}
	if got.LastUpdatedAt == nil || !got.LastUpdatedAt.Equal(fixedNow) {
		t.Errorf("LastUpdatedAt = %v", got.LastUpdatedAt)
	}
	if got.CompletedAt != nil {
		t.Error("a monitoring update must not complete the interview")
	}

	got = MergeMonitoring(got, MonitoringFromPayload(map[string]any{"camera_granted": "false"}), fixedNow)
	if got.CameraGranted {
		t.Error(`"false" should clear camera_granted`)
	}
}

func TestComplete(t *testing.T) {
	prior := models.MonitoringState{TabSwitchCount: 4}
	got := Complete(prior, MonitoringFromPayload(map[string]any{"tab_switch_count": 1, "camera_granted": true}), fixedNow)

	if got.TabSwitchCount != 4 {
		t.Errorf("TabSwitchCount = %d, want 4", got.TabSwitchCount)
	}
	if !got.CameraGranted {
		t.Error("camera_granted should be set")
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(fixedNow) {
		t.Errorf("CompletedAt = %v", got.CompletedAt)
	}
}
