package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
)

// newTestGroqClient points a groqClient at a local httptest server.
func newTestGroqClient(serverURL string) *groqClient {
	return &groqClient{
		apiKey:     "gsk_test",
		model:      "mixtral-8x7b-32768",
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func completionJSON(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `},"finish_reason":"stop"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

var testEmails = []email.Email{
	{Subject: "Standup", Body: "Moved to 10am.", Sender: "alice@example.com", Date: "Mon"},
}

func TestGroqSummarize_ReturnsFirstChoiceContent(t *testing.T) {
	var captured struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk_test" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionJSON("🔑 KEY UPDATES\n• Standup moved to 10am.")))
	}))
	defer srv.Close()

	c := newTestGroqClient(srv.URL)
	summary, err := c.Summarize(context.Background(), testEmails)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(summary, "Standup moved to 10am.") {
		t.Errorf("unexpected summary: %q", summary)
	}

	if captured.Model != "mixtral-8x7b-32768" {
		t.Errorf("model = %q", captured.Model)
	}
	if captured.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", captured.Temperature)
	}
	if captured.MaxTokens != 1000 {
		t.Errorf("max_tokens = %d, want 1000", captured.MaxTokens)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("expected [system, user] messages, got %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[1].Content, "From: alice@example.com") {
		t.Error("user prompt missing the email's sender")
	}
}

func TestGroqSummarize_EmptyInputRejectedBeforeCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := newTestGroqClient(srv.URL)
	if _, err := c.Summarize(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if called {
		t.Error("no network call should be made for an empty batch")
	}
}

func TestGroqSummarize_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"note":"rate limited"}`))
	}))
	defer srv.Close()

	c := newTestGroqClient(srv.URL)
	if _, err := c.Summarize(context.Background(), testEmails); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestGroqSummarize_APIErrorObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	c := newTestGroqClient(srv.URL)
	_, err := c.Summarize(context.Background(), testEmails)
	if err == nil {
		t.Fatal("expected error when the API returns an error object")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error should carry the API message, got: %v", err)
	}
}

func TestGroqSummarize_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	c := newTestGroqClient(srv.URL)
	if _, err := c.Summarize(context.Background(), testEmails); err == nil {
		t.Fatal("expected error on malformed response body")
	}
}

func TestGroqSummarize_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := newTestGroqClient(srv.URL)
	if _, err := c.Summarize(context.Background(), testEmails); err == nil {
		t.Fatal("expected error when the response has no choices")
	}
}

func TestGroqSummarize_TransportFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestGroqClient(srv.URL)
	if _, err := c.Summarize(context.Background(), testEmails); err == nil {
		t.Fatal("expected error on transport failure")
	}
}
