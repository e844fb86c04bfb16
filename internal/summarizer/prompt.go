package summarizer

import (
	"fmt"
	"strings"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
)

// Model parameters sent with every completion request, regardless of
// provider. The low temperature keeps the summaries stable across retries
// of the same batch by the extension.
const (
	temperature = 0.3
	maxTokens   = 1000
)

// systemPrompt fixes the summarizer persona and the refusal message for
// non-email content. The wording is part of the observable contract with
// the extension and is kept verbatim.
const systemPrompt = `You are an efficient email summarizer. For content types other than emails, reply with 'Sorry, I can't help you with this!`

// promptTemplate is the fixed instruction block. %s is replaced with the
// rendered email list.
const promptTemplate = `Analyze these emails and provide a structured summary in the following format:
        🔑 KEY UPDATES
        • [List key updates and announcements here]

        📋 ACTION ITEMS
        • [List tasks and action items here]

        📅 DEADLINES & EVENTS
        • [List upcoming deadlines and events here]

        ⚡ CRITICAL INFORMATION
        • [List any urgent or critical information here]

        For each section:
        - Use bullet points (•)
        - Start each point with a capital letter
        - End each point with a period
        - Skip any section if there's no relevant information
        - Be concise but informative
        - Use proper line breaks between sections
        - Indicate from which email each point has been taken from

        Emails:
        %s
        `

// buildPrompt renders the emails numbered from 1 in batch order and embeds
// them in the instruction template.
func buildPrompt(emails []email.Email) string {
	blocks := make([]string, 0, len(emails))
	for i, e := range emails {
		blocks = append(blocks, fmt.Sprintf(
			"Email %d:\nFrom: %s\nSubject: %s\nDate: %s\nBody: %s",
			i+1, e.Sender, e.Subject, e.Date, e.Body,
		))
	}
	return fmt.Sprintf(promptTemplate, strings.Join(blocks, "\n\n"))
}
