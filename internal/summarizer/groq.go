package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/metrics"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// groqClient is the concrete Summarizer backed by the Groq API.
// Groq exposes an OpenAI-compatible /chat/completions endpoint, so the
// request/response shapes are standard OpenAI chat format.
type groqClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGroqClient returns a Summarizer that calls the Groq API.
//   - apiKey: your GROQ_API_KEY
//   - model:  e.g. "mixtral-8x7b-32768"
func NewGroqClient(apiKey, model string) Summarizer {
	return &groqClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: groqBaseURL,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// ─── OPENAI-COMPATIBLE API SHAPES ────────────────────────────────────────────

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ─── IMPLEMENTATION ───────────────────────────────────────────────────────────

// Summarize sends one completion request for the whole batch and returns the
// text of the first choice, unparsed.
func (c *groqClient) Summarize(ctx context.Context, emails []email.Email) (string, error) {
	if len(emails) == 0 {
		return "", fmt.Errorf("groq: no emails provided for processing")
	}

	reqBody := chatRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(emails)},
		},
	}

	start := time.Now()
	text, err := c.call(ctx, reqBody)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordProviderCall("groq", status, time.Since(start))

	return text, err
}

// call sends one request to the Groq chat completions endpoint and returns
// the text content of the first choice.
func (c *groqClient) call(ctx context.Context, reqBody chatRequest) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("groq: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB cap
	if err != nil {
		return "", fmt.Errorf("groq: read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("groq: unmarshal response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("groq: API error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("groq: no choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}
