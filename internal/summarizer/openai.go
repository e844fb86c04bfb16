package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/metrics"
)

// openAIClient is a Summarizer for any OpenAI-compatible provider, used as
// the optional fallback behind the primary Groq client. The base URL is
// configurable so the same client serves OpenAI itself or any compatible
// endpoint.
type openAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient returns a Summarizer that calls an OpenAI-compatible
// chat completions API at baseURL (e.g. "https://api.openai.com/v1").
func NewOpenAIClient(apiKey, baseURL, model string) Summarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Summarize sends one completion request for the whole batch and returns
// the text of the first choice, unparsed. Same prompt and model parameters
// as the Groq client.
func (c *openAIClient) Summarize(ctx context.Context, emails []email.Email) (string, error) {
	if len(emails) == 0 {
		return "", fmt.Errorf("openai: no emails provided for processing")
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(emails)},
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordProviderCall("openai", status, time.Since(start))

	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
