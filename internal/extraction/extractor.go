// Package extraction turns free-text job descriptions into a skill taxonomy.
package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/llm"
	"github.com/mohit-756/interview-bot/internal/logger"
	"github.com/mohit-756/interview-bot/internal/models"
)

// DefaultTimeout bounds a single extraction call
const DefaultTimeout = 60 * time.Second

// Cache stores taxonomies produced by the model, keyed by JD text
type Cache interface {
	Get(ctx context.Context, jdText string) (models.JDTaxonomy, bool)
	Set(ctx context.Context, jdText string, taxonomy models.JDTaxonomy)
}

// Extractor asks a text-generation backend for a taxonomy and falls back to
// vocabulary matching on any failure.
type Extractor struct {
	gen     llm.Generator
	cache   Cache
	timeout time.Duration
	log     *zap.Logger
}

// Option customises an Extractor
type Option func(*Extractor)

// WithCache enables taxonomy caching
func WithCache(c Cache) Option {
	return func(e *Extractor) { e.cache = c }
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewExtractor creates an extractor. A nil gen always uses the fallback.
func NewExtractor(gen llm.Generator, log *zap.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		gen:     gen,
		timeout: DefaultTimeout,
		log:     logger.OrNop(log).Named("extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildPrompt returns the instruction sent to the model
func BuildPrompt(jdText string) string {
	var sb strings.Builder
	sb.WriteString("Return ONLY valid JSON (no explanations, no markdown).\n")
	sb.WriteString("JSON keys:\n")
	sb.WriteString(strings.Join(models.TaxonomyKeys, ", "))
	sb.WriteString("\n\nEach value must be a list of strings.\n\n")
	sb.WriteString("JD:\n")
	sb.WriteString(jdText)
	return sb.String()
}

// Extract returns the taxonomy for jdText. It never fails.
func (e *Extractor) Extract(ctx context.Context, jdText string) models.JDTaxonomy {
	if strings.TrimSpace(jdText) == "" || e.gen == nil {
		return FallbackExtract(jdText)
	}

	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, jdText); ok {
			e.log.Debug("taxonomy cache hit")
			return cached.Normalized()
		}
	}

	taxonomy, err := e.extractWithModel(ctx, jdText)
	if err != nil {
		e.log.Warn("model extraction failed, using keyword fallback", zap.Error(err))
		return FallbackExtract(jdText)
	}

	if e.cache != nil {
		e.cache.Set(ctx, jdText, taxonomy)
	}
	return taxonomy
}

func (e *Extractor) extractWithModel(ctx context.Context, jdText string) (models.JDTaxonomy, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := BuildPrompt(jdText)
	e.log.Debug("requesting taxonomy", logger.Preview("prompt_preview", prompt))

	reply, err := e.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return models.JDTaxonomy{}, fmt.Errorf("generate: %w", err)
	}
	e.log.Debug("model replied", logger.Preview("reply_preview", reply))

	obj, err := ExtractJSONObject(reply)
	if err != nil {
		return models.JDTaxonomy{}, fmt.Errorf("parse reply: %w", err)
	}

	return models.TaxonomyFromMap(obj), nil
}

// DefaultWeights gives every JD skill an equal share of 100, at least 1.
// The share is computed over all entries, duplicates included.
func DefaultWeights(taxonomy models.JDTaxonomy) models.SkillWeights {
	all := taxonomy.AllSkills()
	per := max(1, 100/max(1, len(all)))

	var weights models.SkillWeights
	for _, skill := range all {
		weights.Set(skill, per)
	}
	return weights
}
