package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mohit-756/interview-bot/internal/models"
)

// Fresher phrases take priority over any stated years of experience.
// "be" is matched as a plain substring like the rest.
var fresherPhrases = []string{
	"currently studying", "pursuing", "student",
	"final year", "undergraduate", "bachelor",
	"b.tech", "be",
}

var (
	yearsPattern      = regexp.MustCompile(`(\d+)\+?\s*years?`)
	percentagePattern = regexp.MustCompile(`(\d{2})\s*%`)
	cgpaPattern       = regexp.MustCompile(`cgpa[:\s]*([\d.]+)`)
)

// Minimum academic mark for the fresher gate
const minAcademicMark = 40

var (
	eligibilityLanguages = []string{"python", "java", "c++", "c", "javascript"}
	eligibilityDomains   = []string{"machine learning", "ai", "web", "flask", "data analysis", "ml", "html", "css"}
)

// Rejection reasons reported as the weakness of an ineligible fresher
const (
	ReasonLowAcademics = "Academic score below 40%"
	ReasonNoLanguage   = "No minimum programming language found"
	ReasonNoDomain     = "No basic domain knowledge found"
)

// Classify reports whether text describes a fresher or an experienced
// candidate, with the largest number of years mentioned. text must be lower-cased.
func Classify(text string) (models.CandidateType, int) {
	if containsAny(text, fresherPhrases) {
		return models.Fresher, 0
	}

	matches := yearsPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return models.Fresher, 0
	}

	years := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		years = max(years, n)
	}
	return models.Experienced, years
}

// academicMarks collects NN% tokens plus the first CGPA token scaled to a percentage
func academicMarks(text string) []float64 {
	var marks []float64
	for _, m := range percentagePattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			marks = append(marks, float64(n))
		}
	}

	if m := cgpaPattern.FindStringSubmatch(text); m != nil {
		if cgpa, err := strconv.ParseFloat(m[1], 64); err == nil && cgpa != 0 {
			marks = append(marks, cgpa*10)
		}
	}
	return marks
}

// fresherEligibility applies the basic gate. It returns "" when eligible,
// otherwise the rejection reason. text must be lower-cased.
func fresherEligibility(text string) string {
	marks := academicMarks(text)
	if len(marks) == 0 {
		return ReasonLowAcademics
	}
	for _, m := range marks {
		if m < minAcademicMark {
			return ReasonLowAcademics
		}
	}

	if !containsAny(text, eligibilityLanguages) {
		return ReasonNoLanguage
	}
	if !containsAny(text, eligibilityDomains) {
		return ReasonNoDomain
	}
	return ""
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func countHits(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}
