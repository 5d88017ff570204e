package questions

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mohit-756/interview-bot/internal/models"
)

var knownResumeSkills = []string{
	"Python", "Java", "Flask", "Django", "Machine Learning", "ML", "Deep Learning",
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Pandas", "NumPy", "Scikit-learn",
	"TensorFlow", "PyTorch", "AWS", "Docker", "Kubernetes", "JavaScript", "React",
	"Node.js", "Git",
}

var resumeSkillPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(knownResumeSkills))
	for i, skill := range knownResumeSkills {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
	}
	return out
}()

// ResumeSkills returns the known skills mentioned in a resume as whole words
func ResumeSkills(resumeText string) []string {
	lower := strings.ToLower(resumeText)
	var found []string
	for i, re := range resumeSkillPatterns {
		if re.MatchString(lower) {
			found = append(found, knownResumeSkills[i])
		}
	}
	return found
}

// PickWeightedSkills orders the positively weighted skills by weight, highest
// first, spelled as in the JD taxonomy where it has them. Without usable
// weights it falls back to the JD skills in taxonomy order. The result is
// deduplicated case-insensitively.
func PickWeightedSkills(weights models.SkillWeights, jd models.JDTaxonomy) []string {
	available := jd.AllSkills()
	canonical := make(map[string]string, len(available))
	for _, s := range available {
		canonical[strings.ToLower(s)] = s
	}

	var picked []models.SkillWeight
	for _, sw := range weights {
		skill := strings.TrimSpace(sw.Skill)
		if skill == "" || sw.Weight <= 0 {
			continue
		}
		if c, ok := canonical[strings.ToLower(skill)]; ok {
			skill = c
		}
		picked = append(picked, models.SkillWeight{Skill: skill, Weight: sw.Weight})
	}

	if len(picked) == 0 {
		return dedupeFold(available)
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Weight > picked[j].Weight
	})
	names := make([]string, len(picked))
	for i, p := range picked {
		names[i] = p.Skill
	}
	return dedupeFold(names)
}

// dedupeFold drops blanks and case-insensitive repeats, keeping first occurrences
func dedupeFold(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, item := range items {
		s := strings.TrimSpace(item)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
