package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJDTaxonomyAlwaysHasFiveLists(t *testing.T) {
	data, err := json.Marshal(JDTaxonomy{Tools: []string{"git"}})
	if err != nil {
		t.Fatalf("Failed to marshal JDTaxonomy: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if len(raw) != 5 {
		t.Fatalf("Expected 5 keys, got %d: %s", len(raw), data)
	}
	for _, key := range TaxonomyKeys {
		if _, ok := raw[key].([]any); !ok {
			t.Errorf("Expected %s to be a list, got %T", key, raw[key])
		}
	}
}

func TestJDTaxonomyUnmarshalIsLenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tools []string
	}{
		{name: "Clean object", input: `{"tools":["git","docker"]}`, tools: []string{"git", "docker"}},
		{name: "Blanks dropped and trimmed", input: `{"tools":["  git ", "", "   ", null]}`, tools: []string{"git"}},
		{name: "Non-list becomes empty", input: `{"tools":"git"}`, tools: []string{}},
		{name: "Numbers stringified", input: `{"tools":[3, 1.5]}`, tools: []string{"3", "1.5"}},
		{name: "Not an object", input: `[1,2,3]`, tools: []string{}},
		{name: "Null", input: `null`, tools: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tax JDTaxonomy
			if err := json.Unmarshal([]byte(tt.input), &tax); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if strings.Join(tax.Tools, "|") != strings.Join(tt.tools, "|") {
				t.Errorf("Tools = %q, want %q", tax.Tools, tt.tools)
			}
			if tax.SoftSkills == nil {
				t.Error("Missing categories should be empty, not nil")
			}
		})
	}
}

func TestAllSkillsOrder(t *testing.T) {
	tax := JDTaxonomy{
		MandatoryProgramming: []string{"python"},
		DomainSkills:         []string{"ml"},
		OptionalDomains:      []string{"devops"},
		Tools:                []string{"git"},
		SoftSkills:           []string{"teamwork"},
	}
	got := strings.Join(tax.AllSkills(), ",")
	if got != "python,ml,devops,git,teamwork" {
		t.Errorf("AllSkills() = %s", got)
	}
}

func TestSkillWeightsPreserveOrder(t *testing.T) {
	var w SkillWeights
	input := `{"sql": 5, "python": "7", "go": "lots", "docker": 2.9, "sql": 9}`
	if err := json.Unmarshal([]byte(input), &w); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	want := []SkillWeight{{"sql", 9}, {"python", 7}, {"go", 0}, {"docker", 2}}
	if len(w) != len(want) {
		t.Fatalf("Expected %d weights, got %d: %+v", len(want), len(w), w)
	}
	for i := range want {
		if w[i] != want[i] {
			t.Errorf("weights[%d] = %+v, want %+v", i, w[i], want[i])
		}
	}

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `{"sql":9,"python":7,"go":0,"docker":2}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestSkillWeightsNonObject(t *testing.T) {
	var w SkillWeights
	if err := json.Unmarshal([]byte(`["python"]`), &w); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(w) != 0 {
		t.Errorf("Expected no weights, got %+v", w)
	}
}

func TestAnswerUnmarshalIsLenient(t *testing.T) {
	var a Answer
	input := `{"question_index":"2","answer":"hello world","time_taken_seconds":"abc"}`
	if err := json.Unmarshal([]byte(input), &a); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if a.QuestionIndex != 2 {
		t.Errorf("QuestionIndex = %d, want 2", a.QuestionIndex)
	}
	if a.AnswerText != "hello world" {
		t.Errorf("AnswerText = %q", a.AnswerText)
	}
	if a.TimeTakenSeconds != 0 {
		t.Errorf("TimeTakenSeconds = %v, want 0", a.TimeTakenSeconds)
	}

	if err := json.Unmarshal([]byte(`"oops"`), &a); err == nil {
		t.Error("Expected an error for a non-object answer")
	}
}
