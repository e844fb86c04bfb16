package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
)

// fallbackSummarizer wraps two Summarizer implementations. It calls the
// primary first; if that returns an error it logs the failure and tries the
// secondary. This gives you Groq as the default with an OpenAI-compatible
// provider as the safety net — the choice is made in main.go. The handler
// still sees a single success or a single failure.
type fallbackSummarizer struct {
	primary   Summarizer
	secondary Summarizer
	logger    *slog.Logger
}

// NewFallbackSummarizer returns a Summarizer that calls primary and, on
// failure, falls back to secondary. Either argument may be nil — if primary
// is nil it goes straight to secondary; if secondary is nil and primary
// fails, the primary error is returned directly.
func NewFallbackSummarizer(primary, secondary Summarizer, logger *slog.Logger) Summarizer {
	return &fallbackSummarizer{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Summarize tries the primary Summarizer. If it fails and a secondary is
// configured, it logs the primary error and tries the secondary.
func (f *fallbackSummarizer) Summarize(ctx context.Context, emails []email.Email) (string, error) {
	if f.primary != nil {
		summary, err := f.primary.Summarize(ctx, emails)
		if err == nil {
			return summary, nil
		}
		f.logger.Warn("summarizer: primary failed, trying secondary",
			"error", err,
			"emails", len(emails),
		)
		if f.secondary == nil {
			return "", fmt.Errorf("summarizer: primary failed and no secondary configured: %w", err)
		}
	}

	return f.secondary.Summarize(ctx, emails)
}
