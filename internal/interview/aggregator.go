// Package interview holds the token-addressed interview session logic:
// answer upserts, proctoring signal merges and the completion summary.
package interview

import (
	"math"
	"strings"

	"github.com/mohit-756/interview-bot/internal/models"
)

// Communication score shape
const (
	coverageWeight   = 6.0
	lengthWeight     = 4.0
	targetWordLength = 30.0
	maxCommunication = 10.0
)

// Summarize computes the completion statistics for an interview. It is a
// pure function: the same inputs always produce the same summary.
func Summarize(totalQuestions int, answers []models.Answer, m models.MonitoringState) models.InterviewSummary {
	answered, words := 0, 0
	var seconds float64
	for _, a := range answers {
		if strings.TrimSpace(a.AnswerText) == "" {
			continue
		}
		answered++
		words += len(strings.Fields(a.AnswerText))
		seconds += a.TimeTakenSeconds
	}

	var avg float64
	if answered > 0 {
		avg = round2(float64(words) / float64(answered))
	}

	coverage := float64(answered) / float64(max(1, totalQuestions))
	lengthFactor := math.Min(1.0, avg/targetWordLength)
	score := math.Min(maxCommunication, coverage*coverageWeight+lengthFactor*lengthWeight)

	return models.InterviewSummary{
		TotalQuestions:     totalQuestions,
		AnsweredCount:      answered,
		AvgAnswerLength:    avg,
		TotalTimeSeconds:   round2(seconds),
		TabSwitchCount:     m.TabSwitchCount,
		CameraGranted:      m.CameraGranted,
		MicGranted:         m.MicGranted,
		CommunicationScore: int(math.RoundToEven(score)),
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
