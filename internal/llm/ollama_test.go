package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohit-756/interview-bot/internal/config"
)

func TestOllamaGenerateContent(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"response": `{"tools":["git"]}`})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL+"/", "llama3.2:3b", time.Second, nil)
	out, err := client.GenerateContent(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GenerateContent() failed: %v", err)
	}

	if out != `{"tools":["git"]}` {
		t.Errorf("unexpected output %q", out)
	}
	if got.Model != "llama3.2:3b" || got.Prompt != "hello" || got.Stream {
		t.Errorf("unexpected request body %+v", got)
	}
}

func TestOllamaErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "HTTP error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not found", http.StatusNotFound)
			},
		},
		{
			name: "Error field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":"out of memory"}`))
			},
		},
		{
			name: "Invalid body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "Timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
				w.Write([]byte(`{"response":"late"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewOllamaClient(srv.URL, "m", 50*time.Millisecond, nil)
			if _, err := client.GenerateContent(context.Background(), "p"); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestNewSelectsProvider(t *testing.T) {
	client, err := New(context.Background(), config.DefaultConfig().LLM, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, ok := client.(*OllamaClient); !ok {
		t.Errorf("Expected *OllamaClient, got %T", client)
	}

	if _, err := New(context.Background(), config.LLMConfig{Provider: "nope"}, nil); err == nil {
		t.Error("Expected error for unknown provider")
	}
	if _, err := New(context.Background(), config.LLMConfig{Provider: config.ProviderGemini}, nil); err == nil {
		t.Error("Expected error for gemini without api key")
	}
}
