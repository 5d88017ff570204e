package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mohit-756/interview-bot/internal/models"
)

func TestReadJDText(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content *string
		want    string
		wantErr bool
	}{
		{"trims whitespace", ptr("  Go engineer\n\n"), "Go engineer", false},
		{"empty file", ptr(" \n\t"), "", true},
		{"missing file", nil, "", true},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "jd"+string(rune('a'+i))+".txt")
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0o644); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
			}

			got, err := readJDText(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readJDText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readJDText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintJSON(t *testing.T) {
	var weights models.SkillWeights
	weights.Set("go", 50)
	weights.Set("kafka", 50)

	var buf bytes.Buffer
	if err := printJSON(&buf, models.ExtractionResponse{SkillWeights: weights}); err != nil {
		t.Fatalf("printJSON() error = %v", err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output should end with a newline: %q", out)
	}
	if strings.Index(out, `"go"`) > strings.Index(out, `"kafka"`) {
		t.Errorf("skill weights lost their order: %s", out)
	}
}

func ptr(s string) *string { return &s }
