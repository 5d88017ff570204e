package extraction

import (
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantKey string
	}{
		{name: "Plain object", input: `{"tools":["git"]}`, wantKey: "tools"},
		{name: "Fenced", input: "```json\n{\"tools\": []}\n```", wantKey: "tools"},
		{name: "Upper-case fence", input: "```JSON\n{\"tools\": []}\n```", wantKey: "tools"},
		{name: "Leading prose", input: `Sure! Here you go: {"soft_skills": ["teamwork"]} hope it helps`, wantKey: "soft_skills"},
		{name: "Nested braces", input: `{"a": {"b": {}}, "tools": []} trailing }`, wantKey: "tools"},
		{name: "Second object ignored", input: `{"first": 1} {"second": 2}`, wantKey: "first"},
		{name: "No object", input: `I cannot help with that`, wantErr: ErrNoJSONObject},
		{name: "Empty", input: ``, wantErr: ErrNoJSONObject},
		{name: "Unbalanced", input: `{"tools": ["git"]`, wantErr: ErrUnbalanced},
		{name: "Invalid JSON", input: `{tools: [git]}`, wantErr: ErrInvalidJSON},
		{name: "Brace inside string", input: `{"note": "use } carefully"}`, wantErr: ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ExtractJSONObject(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExtractJSONObject() error = %v, want %v", err, tt.wantErr)
				}
				if obj != nil {
					t.Errorf("Expected nil object on failure, got %v", obj)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSONObject() failed: %v", err)
			}
			if _, ok := obj[tt.wantKey]; !ok {
				t.Errorf("Expected key %q in %v", tt.wantKey, obj)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	if got := StripCodeFences("```json\n{}\n```"); got != "{}" {
		t.Errorf("StripCodeFences() = %q, want {}", got)
	}
}
