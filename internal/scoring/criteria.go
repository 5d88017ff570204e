package scoring

import (
	"math"
	"strings"

	"github.com/mohit-756/interview-bot/internal/models"
)

// Sub-score names, in tie-break order
const (
	Programming         = "programming"
	DomainSkills        = "domain_skills"
	Projects            = "projects"
	KnowledgeConfidence = "knowledge_confidence"
	JDDomainMatch       = "jd_domain_match"
	Experience          = "experience"
)

// input is what every sub-scorer sees
type input struct {
	text  string // lower-cased resume
	jd    models.JDTaxonomy
	years int
}

// criterion is one weighted row of the scoring table. score returns the
// sub-score and, for criteria that report them, the JD skills that matched.
type criterion struct {
	name    string
	weight  float64
	score   func(in input) (int, []string)
	matches bool
}

var (
	programmingRow   = criterion{name: Programming, score: scoreProgramming, matches: true}
	domainSkillsRow  = criterion{name: DomainSkills, score: scoreDomainSkills, matches: true}
	projectsRow      = criterion{name: Projects, score: scoreProjects}
	knowledgeRow     = criterion{name: KnowledgeConfidence, score: scoreKnowledgeConfidence}
	jdDomainMatchRow = criterion{name: JDDomainMatch, score: scoreJDDomainMatch, matches: true}
	experienceRow    = criterion{name: Experience, score: scoreExperience}
)

func weighted(c criterion, w float64) criterion {
	c.weight = w
	return c
}

// Weight tables per candidate type. Each sums to 1.0.
var (
	experiencedCriteria = []criterion{
		weighted(programmingRow, 0.20),
		weighted(domainSkillsRow, 0.15),
		weighted(projectsRow, 0.20),
		weighted(knowledgeRow, 0.15),
		weighted(jdDomainMatchRow, 0.15),
		weighted(experienceRow, 0.15),
	}
	fresherCriteria = []criterion{
		weighted(programmingRow, 0.25),
		weighted(domainSkillsRow, 0.20),
		weighted(projectsRow, 0.20),
		weighted(knowledgeRow, 0.15),
		weighted(jdDomainMatchRow, 0.20),
	}
)

var (
	projectTech = []string{"python", "ml", "flask", "sql", "api"}
	actionVerbs = []string{"implemented", "developed", "designed", "built", "trained", "analyzed", "created", "deployed"}
)

// jdMatchWeights lists the categories that count toward jd_domain_match
var jdMatchWeights = []struct {
	key    string
	weight int
}{
	{models.KeyMandatoryProgramming, 5},
	{models.KeyDomainSkills, 3},
	{models.KeyOptionalDomains, 2},
}

func matchedSkills(text string, skills []string) []string {
	matched := []string{}
	for _, s := range skills {
		if strings.Contains(text, strings.ToLower(s)) {
			matched = append(matched, s)
		}
	}
	return matched
}

// percent rounds half to even, matching the reference scores
func percent(part, whole int) int {
	return int(math.RoundToEven(100 * float64(part) / float64(whole)))
}

func scoreProgramming(in input) (int, []string) {
	mandatory := in.jd.MandatoryProgramming
	matched := matchedSkills(in.text, mandatory)
	if len(mandatory) == 0 {
		return 0, matched
	}
	return percent(len(matched), len(mandatory)), matched
}

func scoreDomainSkills(in input) (int, []string) {
	domains := in.jd.DomainSkills
	matched := matchedSkills(in.text, domains)
	if len(domains) == 0 {
		return 0, matched
	}
	return min(100, 25*len(matched)), matched
}

func scoreProjects(in input) (int, []string) {
	if !strings.Contains(in.text, "project") {
		return 30, nil
	}
	switch hits := countHits(in.text, projectTech); {
	case hits >= 3:
		return 90, nil
	case hits == 2:
		return 75, nil
	default:
		return 55, nil
	}
}

func scoreKnowledgeConfidence(in input) (int, []string) {
	switch hits := countHits(in.text, actionVerbs); {
	case hits >= 4:
		return 90, nil
	case hits >= 2:
		return 70, nil
	default:
		return 45, nil
	}
}

func scoreJDDomainMatch(in input) (int, []string) {
	matched := []string{}
	achieved, possible := 0, 0
	for _, cat := range jdMatchWeights {
		for _, skill := range in.jd.Category(cat.key) {
			possible += cat.weight
			if strings.Contains(in.text, strings.ToLower(skill)) {
				achieved += cat.weight
				matched = append(matched, skill)
			}
		}
	}
	if possible == 0 {
		return 0, matched
	}
	return percent(achieved, possible), matched
}

func scoreExperience(in input) (int, []string) {
	return min(100, in.years*20), nil
}
