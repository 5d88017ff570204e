package llm

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

const defaultVertexModel = "gemini-1.5-flash"

// VertexAIClient wraps the Vertex AI Gemini API
type VertexAIClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewVertexAIClient creates a new Vertex AI client. Credentials come from
// the standard Application Default Credentials chain.
func NewVertexAIClient(ctx context.Context, projectID, location, model string) (*VertexAIClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("vertex ai project is required")
	}
	if location == "" {
		location = "us-central1"
	}
	if model == "" || strings.Contains(model, ":") {
		model = defaultVertexModel
	}

	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	gm := client.GenerativeModel(model)
	// extraction wants stable output
	gm.SetTemperature(0.1)
	gm.SetMaxOutputTokens(2048)

	return &VertexAIClient{client: client, model: gm}, nil
}

// GenerateContent sends a prompt to the model and returns the response
func (v *VertexAIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

// Close closes the Vertex AI client
func (v *VertexAIClient) Close() error {
	return v.client.Close()
}
