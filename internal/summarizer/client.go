// Package summarizer defines the interface for external email summarization
// and provides a Groq-backed implementation.
package summarizer

import (
	"context"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
)

// Summarizer is the interface the HTTP handler uses to obtain a summary.
// The concrete implementation lives in groq.go (or openai.go).
// Tests inject a stub that returns canned responses.
type Summarizer interface {
	// Summarize builds one prompt from the surviving emails, in order, and
	// returns the raw text of the provider's first completion choice.
	//
	// Implementations must be safe to call concurrently.
	// An empty input is a constraint violation and returns an error before
	// any network call is attempted. A non-nil error means the entire call
	// failed; the handler converts it to a single server error — there is
	// no retry and no partial result.
	Summarize(ctx context.Context, emails []email.Email) (string, error)
}
