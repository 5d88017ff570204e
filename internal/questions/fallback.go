package questions

import (
	"fmt"
	"strings"

	"github.com/mohit-756/interview-bot/internal/coerce"
	"github.com/mohit-756/interview-bot/internal/models"
)

const maxFallbackQuestions = 5

var genericQuestions = []string{
	"Introduce yourself and your background.",
	"Explain one project you are proud of.",
	"What challenges did you solve in your recent work?",
	"How do you approach debugging a difficult issue?",
	"Why do you think you are a fit for this role?",
}

// FallbackFromJD is used when nothing could be derived for a candidate. It
// asks about up to five JD skills, or returns fixed generic questions when
// the JD has none.
func FallbackFromJD(jd models.JDTaxonomy) []string {
	var skills []string
	for _, key := range []string{
		models.KeyMandatoryProgramming,
		models.KeyDomainSkills,
		models.KeyTools,
		models.KeyOptionalDomains,
	} {
		skills = append(skills, jd.Category(key)...)
	}

	uniq := dedupeFold(skills)
	if len(uniq) == 0 {
		return append([]string(nil), genericQuestions...)
	}
	if len(uniq) > maxFallbackQuestions {
		uniq = uniq[:maxFallbackQuestions]
	}

	out := make([]string, len(uniq))
	for i, s := range uniq {
		out[i] = fmt.Sprintf("Explain your understanding of %s.", s)
	}
	return out
}

// NormalizeQuestions turns a stored question list into plain strings.
// Objects contribute their "question" field; blanks are dropped.
func NormalizeQuestions(raw []any) []string {
	out := []string{}
	for _, q := range raw {
		var text string
		switch v := q.(type) {
		case nil:
			continue
		case map[string]any:
			text = coerce.String(v["question"])
		default:
			text = coerce.String(v)
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}
