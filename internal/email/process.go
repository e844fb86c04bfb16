package email

import (
	"fmt"
	"log/slog"
)

// FieldCipher is the subset of the process cipher the round-trip needs.
// crypto.Cipher satisfies it; tests inject doubles that fail on demand.
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Result is the explicit per-record outcome of the round-trip. A non-nil
// Err means the record was dropped; the failure is logged and reflected
// only in the shrunken surviving batch, never surfaced individually.
type Result struct {
	Email Email
	Err   error
}

// Processor normalizes each email and round-trips its subject, body, and
// sender through the field cipher. The round-trip is logically identity —
// the decrypted plaintext is substituted back and the ciphertext discarded —
// so its only observable effect is dropping records the cipher cannot
// handle. Safe for concurrent use: the cipher is the only shared state and
// it is immutable after construction.
type Processor struct {
	cipher FieldCipher
	logger *slog.Logger
}

// NewProcessor returns a Processor backed by the process-wide field cipher.
func NewProcessor(cipher FieldCipher, logger *slog.Logger) *Processor {
	return &Processor{cipher: cipher, logger: logger}
}

// Process runs every email through Normalize and the cipher round-trip,
// sequentially in batch order, and returns one Result per input in the
// same order. A failing record never aborts the batch.
func (p *Processor) Process(batchID string, emails []Email) []Result {
	results := make([]Result, 0, len(emails))

	for i, e := range emails {
		processed, err := p.roundTrip(Normalize(e))
		if err != nil {
			p.logger.Warn("email: dropping record after cipher failure",
				"batch_id", batchID,
				"index", i,
				"error", err,
			)
			results = append(results, Result{Email: e, Err: err})
			continue
		}
		results = append(results, Result{Email: processed})
	}

	return results
}

// roundTrip encrypts then immediately decrypts subject, body, and sender,
// substituting the decrypted values back. Date is never encrypted.
func (p *Processor) roundTrip(e Email) (Email, error) {
	subject, err := p.field(e.Subject)
	if err != nil {
		return Email{}, fmt.Errorf("subject: %w", err)
	}
	body, err := p.field(e.Body)
	if err != nil {
		return Email{}, fmt.Errorf("body: %w", err)
	}
	sender, err := p.field(e.Sender)
	if err != nil {
		return Email{}, fmt.Errorf("sender: %w", err)
	}

	return Email{
		Subject: subject,
		Body:    body,
		Sender:  sender,
		Date:    e.Date,
	}, nil
}

func (p *Processor) field(value string) (string, error) {
	encrypted, err := p.cipher.Encrypt(value)
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}
	decrypted, err := p.cipher.Decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return decrypted, nil
}

// Survivors filters the successfully round-tripped emails, preserving
// batch order.
func Survivors(results []Result) []Email {
	emails := make([]Email, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			emails = append(emails, r.Email)
		}
	}
	return emails
}
