package scoring

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/logger"
	"github.com/mohit-756/interview-bot/internal/models"
)

// Defaults used when the caller does not configure a value
const (
	DefaultQualifyScore          = 40
	DefaultMinDomainScoreFresher = 30
)

// Options tunes the scorer
type Options struct {
	// MinDomainScoreFresher is the sub-score threshold for weakness reporting
	// and for the strict gate.
	MinDomainScoreFresher int
	// StrictFresherGate rejects freshers with any sub-score below the threshold.
	StrictFresherGate bool
}

// Scorer evaluates resumes against a JD taxonomy
type Scorer struct {
	opts Options
	log  *zap.Logger
}

// NewScorer creates a new scorer instance. MinDomainScoreFresher <= 0
// means DefaultMinDomainScoreFresher.
func NewScorer(opts Options, log *zap.Logger) *Scorer {
	if opts.MinDomainScoreFresher <= 0 {
		opts.MinDomainScoreFresher = DefaultMinDomainScoreFresher
	}
	return &Scorer{opts: opts, log: logger.OrNop(log).Named("scorer")}
}

// subScore is one evaluated row of the criteria table
type subScore struct {
	name  string
	score int
}

// Analyze scores resumeText against jd. qualifyScore <= 0 means DefaultQualifyScore.
// Rejection is a normal result, never an error.
func (s *Scorer) Analyze(resumeText string, jd models.JDTaxonomy, qualifyScore int) models.ResumeAnalysisResult {
	text := strings.ToLower(resumeText)
	candidateType, years := Classify(text)

	if candidateType == models.Fresher {
		if reason := fresherEligibility(text); reason != "" {
			s.log.Debug("fresher failed eligibility", zap.String("reason", reason))
			return models.ResumeAnalysisResult{
				CandidateType:  models.Fresher,
				FinalScore:     0,
				Decision:       models.Rejected,
				DomainScores:   map[string]int{},
				MatchedDetails: map[string][]string{},
				Weakness:       reason,
			}
		}
	}

	table := fresherCriteria
	if candidateType == models.Experienced {
		table = experiencedCriteria
	}

	in := input{text: text, jd: jd, years: years}
	scores := make([]subScore, 0, len(table))
	result := models.ResumeAnalysisResult{
		CandidateType:   candidateType,
		ExperienceYears: years,
		DomainScores:    make(map[string]int, len(table)),
		MatchedDetails:  make(map[string][]string),
	}

	var final float64
	for _, c := range table {
		score, matched := c.score(in)
		scores = append(scores, subScore{name: c.name, score: score})
		result.DomainScores[c.name] = score
		if c.matches {
			result.MatchedDetails[c.name] = matched
		}
		final += c.weight * float64(score)
	}

	result.Strength = strongest(scores)

	if candidateType == models.Fresher && s.opts.StrictFresherGate {
		if weak := s.firstBelowThreshold(scores); weak != "" {
			result.FinalScore = 0
			result.Decision = models.Rejected
			result.Weakness = fmt.Sprintf("%s below minimum %d%%", weak, s.opts.MinDomainScoreFresher)
			return result
		}
	}

	if qualifyScore <= 0 {
		qualifyScore = DefaultQualifyScore
	}

	result.FinalScore = math.Round(final*100) / 100
	result.Decision = models.Rejected
	if result.FinalScore >= float64(qualifyScore) {
		result.Decision = models.Shortlisted
	}
	result.Weakness = s.firstBelowThreshold(scores)

	s.log.Debug("resume scored",
		zap.String("candidate_type", string(candidateType)),
		zap.Float64("final_score", result.FinalScore),
		zap.String("decision", string(result.Decision)),
	)

	return result
}

func (s *Scorer) firstBelowThreshold(scores []subScore) string {
	for _, sc := range scores {
		if sc.score < s.opts.MinDomainScoreFresher {
			return sc.name
		}
	}
	return ""
}

// strongest returns the highest sub-score; ties keep the earlier row
func strongest(scores []subScore) string {
	best := -1
	name := ""
	for _, sc := range scores {
		if sc.score > best {
			best = sc.score
			name = sc.name
		}
	}
	return name
}
