package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mohit-756/interview-bot/internal/cache"
	"github.com/mohit-756/interview-bot/internal/models"
)

type stubGenerator struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

type blockingGenerator struct{}

func (blockingGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

const sampleJD = "We need a Python developer with Machine Learning, Docker and strong communication."

func assertShape(t *testing.T, tax models.JDTaxonomy) {
	t.Helper()
	for _, key := range models.TaxonomyKeys {
		list := tax.Category(key)
		if list == nil {
			t.Errorf("%s is nil", key)
		}
		for _, item := range list {
			if strings.TrimSpace(item) == "" || item != strings.TrimSpace(item) {
				t.Errorf("%s contains untrimmed or blank element %q", key, item)
			}
		}
	}
}

func TestExtractUsesModelReply(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n{\"mandatory_programming\": [\" Go \", \"\"], \"tools\": \"docker\", \"extra\": [1]}\n```"}
	e := NewExtractor(gen, nil)

	tax := e.Extract(context.Background(), sampleJD)
	assertShape(t, tax)

	if len(tax.MandatoryProgramming) != 1 || tax.MandatoryProgramming[0] != "Go" {
		t.Errorf("MandatoryProgramming = %q, want [Go]", tax.MandatoryProgramming)
	}
	if len(tax.Tools) != 0 {
		t.Errorf("non-list tools should become empty, got %q", tax.Tools)
	}
	if !strings.Contains(gen.prompt, sampleJD) || !strings.HasPrefix(gen.prompt, "Return ONLY valid JSON") {
		t.Errorf("unexpected prompt %q", gen.prompt)
	}
}

func TestExtractFallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{name: "Transport error", gen: &stubGenerator{err: errors.New("connection refused")}},
		{name: "Prose reply", gen: &stubGenerator{reply: "I am unable to comply."}},
		{name: "Broken JSON", gen: &stubGenerator{reply: `{"tools": [}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			e := NewExtractor(tt.gen, zap.New(core))

			tax := e.Extract(context.Background(), sampleJD)
			assertShape(t, tax)

			want := FallbackExtract(sampleJD)
			if strings.Join(tax.AllSkills(), ",") != strings.Join(want.AllSkills(), ",") {
				t.Errorf("Extract() = %v, want fallback %v", tax, want)
			}
			if logs.FilterMessage("model extraction failed, using keyword fallback").Len() != 1 {
				t.Errorf("Expected one fallback warning, got %v", logs.All())
			}
		})
	}
}

func TestExtractTimeoutFallsBack(t *testing.T) {
	e := NewExtractor(blockingGenerator{}, nil, WithTimeout(20*time.Millisecond))

	start := time.Now()
	tax := e.Extract(context.Background(), sampleJD)
	if time.Since(start) > 2*time.Second {
		t.Fatal("Extract() did not respect the timeout")
	}
	if len(tax.MandatoryProgramming) == 0 {
		t.Error("Expected fallback taxonomy after timeout")
	}
}

func TestExtractWithoutGenerator(t *testing.T) {
	tax := NewExtractor(nil, nil).Extract(context.Background(), sampleJD)
	assertShape(t, tax)
	if len(tax.SoftSkills) != 1 || tax.SoftSkills[0] != "communication" {
		t.Errorf("SoftSkills = %q", tax.SoftSkills)
	}
}

func TestFallbackExtract(t *testing.T) {
	tax := FallbackExtract("Looking for JAVA, SQL, AWS and Kubernetes. DevOps a plus. Leadership matters.")
	assertShape(t, tax)

	checks := map[string][]string{
		models.KeyMandatoryProgramming: {"java", "c", "sql"},
		models.KeyDomainSkills:         {"aws"},
		models.KeyOptionalDomains:      {"devops"},
		models.KeyTools:                {"kubernetes"},
		models.KeySoftSkills:           {"leadership"},
	}
	for key, want := range checks {
		if got := strings.Join(tax.Category(key), ","); got != strings.Join(want, ",") {
			t.Errorf("%s = %s, want %s", key, got, strings.Join(want, ","))
		}
	}

	empty := FallbackExtract("")
	assertShape(t, empty)
	if len(empty.AllSkills()) != 0 {
		t.Errorf("Expected empty taxonomy, got %v", empty)
	}
}

func TestExtractUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := cache.NewRedisClient(mr.Addr(), "", 0)
	defer client.Close()

	gen := &stubGenerator{reply: `{"tools": ["terraform"]}`}
	e := NewExtractor(gen, nil, WithCache(NewRedisCache(client, time.Hour, nil)))

	first := e.Extract(context.Background(), sampleJD)
	second := e.Extract(context.Background(), sampleJD)

	if gen.calls != 1 {
		t.Errorf("Expected one model call, got %d", gen.calls)
	}
	if len(second.Tools) != 1 || second.Tools[0] != first.Tools[0] {
		t.Errorf("cached taxonomy differs: %v vs %v", second, first)
	}
	if !mr.Exists(CacheKey(sampleJD)) {
		t.Error("Expected the taxonomy to be stored in redis")
	}
}

func TestFallbackIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := cache.NewRedisClient(mr.Addr(), "", 0)
	defer client.Close()

	e := NewExtractor(&stubGenerator{err: errors.New("down")}, nil, WithCache(NewRedisCache(client, time.Hour, nil)))
	e.Extract(context.Background(), sampleJD)

	if mr.Exists(CacheKey(sampleJD)) {
		t.Error("fallback results should not be cached")
	}
}

func TestDefaultWeights(t *testing.T) {
	tax := models.JDTaxonomy{
		MandatoryProgramming: []string{"python", "java"},
		DomainSkills:         []string{"ml"},
		Tools:                []string{"python"},
	}
	w := DefaultWeights(tax)

	if len(w) != 3 {
		t.Fatalf("Expected 3 distinct skills, got %+v", w)
	}
	for _, sw := range w {
		if sw.Weight != 25 {
			t.Errorf("%s weight = %d, want 25", sw.Skill, sw.Weight)
		}
	}
	if w[0].Skill != "python" || w[2].Skill != "ml" {
		t.Errorf("unexpected order %+v", w)
	}

	many := models.JDTaxonomy{}
	for i := 0; i < 150; i++ {
		many.Tools = append(many.Tools, strings.Repeat("x", i+1))
	}
	for _, sw := range DefaultWeights(many) {
		if sw.Weight != 1 {
			t.Fatalf("Expected minimum weight 1, got %d", sw.Weight)
		}
	}

	if len(DefaultWeights(models.JDTaxonomy{})) != 0 {
		t.Error("Expected no weights for empty taxonomy")
	}
}
