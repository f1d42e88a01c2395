// Package llm wraps the hosted generative-language client behind a small
// interface so services can be tested against stubs.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for both mentor and persona chat.
const DefaultModelName = "gemini-2.5-flash"

// Message is one turn of prior conversation history.
type Message struct {
	Role string // "user" or "model"
	Text string
}

// Generator produces a model reply for a system instruction, optional
// history, and the latest user message.
type Generator interface {
	Generate(ctx context.Context, system string, history []Message, message string) (string, error)
}

// GeminiGenerator is the concrete Generator backed by the GenAI API.
type GeminiGenerator struct {
	client *genai.Client
	model  string

	// Generation parameters tuned for financial mentorship: slightly lower
	// temperature keeps advice consistent across retries.
	temperature     float32
	topP            float32
	topK            float32
	maxOutputTokens int32
}

// NewGeminiGenerator creates a generator using ambient API credentials
// (GEMINI_API_KEY or Application Default Credentials).
func NewGeminiGenerator(ctx context.Context) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiGenerator: create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:          client,
		model:           DefaultModelName,
		temperature:     0.8,
		topP:            0.95,
		topK:            40,
		maxOutputTokens: 3000,
	}, nil
}

// Generate implements the Generator interface.
func (g *GeminiGenerator) Generate(ctx context.Context, system string, history []Message, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, &genai.Content{
			Role:  m.Role,
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: message}},
	})

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		TopP:            genai.Ptr(g.topP),
		TopK:            genai.Ptr(g.topK),
		MaxOutputTokens: g.maxOutputTokens,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Generate: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Generate: empty response from model")
	}
	return text, nil
}
