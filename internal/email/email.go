// Package email defines the inbound email records and the per-record
// processing pipeline: body truncation followed by the cipher round-trip
// that gates each record on cipher liveness.
package email

// MaxBodyLen is the maximum body length, in characters, kept per email.
// Longer bodies are truncated before any further processing.
const MaxBodyLen = 5000

// Email is one message as submitted by the extension. Date is carried
// through opaque — never parsed and never encrypted.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Sender  string `json:"sender"`
	Date    string `json:"date"`
}

// Batch is the ordered set of emails submitted in one request. Insertion
// order is meaningful: it determines the numbering in the generated prompt.
type Batch struct {
	Emails []Email `json:"emails"`
}

// Normalize returns a copy of e with the body truncated to MaxBodyLen
// characters. All other fields pass through unmodified. Truncation counts
// runes, not bytes, so a multibyte character is never split.
func Normalize(e Email) Email {
	e.Body = truncate(e.Body, MaxBodyLen)
	return e
}

func truncate(s string, maxRunes int) string {
	if len(s) <= maxRunes {
		// Byte length bounds rune length, so short strings skip the scan.
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}
