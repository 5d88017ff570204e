// Package questions builds the ordered interview question list for a
// candidate from their resume, the JD taxonomy and HR skill weights.
package questions

import (
	"fmt"
	"math"

	"github.com/mohit-756/interview-bot/internal/coerce"
	"github.com/mohit-756/interview-bot/internal/models"
)

// Question templates
const (
	introQuestion          = "Introduce yourself and summarize your relevant experience in 1-2 minutes."
	genericProjectQuestion = "Describe one project you built. Explain architecture, tradeoffs, and outcomes."
	genericTheoryQuestion  = "Walk through a technical challenge you solved recently."
	projectQuestionFormat  = "Explain your project: %s. What problem did it solve and what was your contribution?"
	theoryQuestionFormat   = "Explain key concepts of %s and where you applied it."
)

// Plan is the coerced split between project and theory questions
type Plan struct {
	Total    int
	Projects int
	Theory   int
}

// NewPlan coerces questionCount to at least 1 (default 10) and projectRatio
// to 0..100 (default 80), then splits the count by the ratio.
func NewPlan(questionCount, projectRatio any) Plan {
	total := max(1, coerce.Int(questionCount, models.DefaultQuestionCount))
	ratio := coerce.Clamp(coerce.Int(projectRatio, models.DefaultProjectRatio), 0, 100)

	projects := int(math.RoundToEven(float64(total) * float64(ratio) / 100))
	return Plan{Total: total, Projects: projects, Theory: total - projects}
}

// Generate returns the interview questions for a candidate. Project questions
// come first, then one self-introduction and the weighted theory questions.
// The result never exceeds the coerced question count.
func Generate(resumeText string, jd models.JDTaxonomy, weights models.SkillWeights, questionCount, projectRatio any) []string {
	plan := NewPlan(questionCount, projectRatio)
	out := make([]string, 0, plan.Total)

	projects := ExtractProjects(resumeText)
	for i := 0; i < plan.Projects; i++ {
		if len(projects) == 0 {
			out = append(out, genericProjectQuestion)
			continue
		}
		out = append(out, fmt.Sprintf(projectQuestionFormat, projects[i%len(projects)]))
	}

	remaining := 0
	if plan.Theory > 0 {
		out = append(out, introQuestion)
		remaining = plan.Theory - 1
	}

	skills := PickWeightedSkills(weights, jd)
	for i := 0; i < remaining; i++ {
		if len(skills) == 0 {
			out = append(out, genericTheoryQuestion)
			continue
		}
		out = append(out, fmt.Sprintf(theoryQuestionFormat, skills[i%len(skills)]))
	}

	if len(out) > plan.Total {
		out = out[:plan.Total]
	}
	return out
}

// GenerateDynamic is Generate for callers without HR weights: every known
// skill found in the resume gets weight 1 and the project ratio is 80.
func GenerateDynamic(resumeText string, jd models.JDTaxonomy, questionCount any) []string {
	var weights models.SkillWeights
	for _, skill := range ResumeSkills(resumeText) {
		weights.Set(skill, 1)
	}
	return Generate(resumeText, jd, weights, questionCount, models.DefaultProjectRatio)
}
