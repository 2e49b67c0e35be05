package mentor

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini asks a Gemini model for the lesson.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini mentor using the given model name.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.8)
	model.SetMaxOutputTokens(80)
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// Lesson sends the rendered prompt and returns the first line of the reply.
func (g *Gemini) Lesson(ctx context.Context, s Situation) (string, error) {
	prompt, err := BuildPrompt(s)
	if err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate lesson: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	line := cleanLine(string(text))
	if line == "" {
		return "", fmt.Errorf("empty lesson from Gemini")
	}
	return line, nil
}

// Fallback tries Primary and answers with Backup when it fails.
type Fallback struct {
	Primary Mentor
	Backup  Mentor
	// OnError, when set, sees every Primary failure.
	OnError func(error)
}

func (f Fallback) Lesson(ctx context.Context, s Situation) (string, error) {
	line, err := f.Primary.Lesson(ctx, s)
	if err == nil {
		return line, nil
	}
	if f.OnError != nil {
		f.OnError(err)
	}
	return f.Backup.Lesson(ctx, s)
}
