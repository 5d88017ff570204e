package extraction

import (
	"strings"

	"github.com/mohit-756/interview-bot/internal/models"
)

// vocabulary is matched by plain substring containment against the lower-cased JD
var vocabulary = []struct {
	key   string
	terms []string
}{
	{models.KeyMandatoryProgramming, []string{"python", "java", "c", "c++", "javascript", "sql"}},
	{models.KeyDomainSkills, []string{"ai/ml", "machine learning", "deep learning", "nlp", "cloud", "aws", "azure", "gcp"}},
	{models.KeyOptionalDomains, []string{"sap", "devops", "data engineering", "data analyst"}},
	{models.KeyTools, []string{"numpy", "pandas", "docker", "kubernetes", "git", "linux", "flask", "django"}},
	{models.KeySoftSkills, []string{"communication", "problem solving", "teamwork", "leadership"}},
}

// FallbackExtract builds a taxonomy from the curated vocabulary. It never calls the network.
func FallbackExtract(jdText string) models.JDTaxonomy {
	text := strings.ToLower(jdText)

	found := make(map[string]any, len(vocabulary))
	for _, category := range vocabulary {
		var hits []any
		for _, term := range category.terms {
			if strings.Contains(text, term) {
				hits = append(hits, term)
			}
		}
		found[category.key] = hits
	}

	return models.TaxonomyFromMap(found)
}
