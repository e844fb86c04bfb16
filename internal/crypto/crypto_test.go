package crypto_test

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/crypto"
)

func newCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	c, err := crypto.New(key)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	return c
}

// ─── ROUND-TRIP IDENTITY ──────────────────────────────────────────────────────

func TestRoundTrip_Identity(t *testing.T) {
	c := newCipher(t)

	cases := []struct {
		name      string
		plaintext string
	}{
		{"empty", ""},
		{"ascii", "Quarterly report attached"},
		{"whitespace", "  \t\n  "},
		{"unicode", "会議は明日です — café naïve 🚀"},
		{"email address", "alice@example.com"},
		{"long body", strings.Repeat("lorem ipsum dolor sit amet ", 500)},
		{"base64-looking", "SGVsbG8gd29ybGQ="},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encrypted, err := c.Encrypt(tc.plaintext)
			if err != nil {
				t.Fatalf("encrypt: %v", err)
			}
			decrypted, err := c.Decrypt(encrypted)
			if err != nil {
				t.Fatalf("decrypt: %v", err)
			}
			if decrypted != tc.plaintext {
				t.Errorf("round-trip mismatch: got %q, want %q", decrypted, tc.plaintext)
			}
		})
	}
}

func TestRoundTrip_RandomInputs(t *testing.T) {
	c := newCipher(t)

	for i := 0; i < 50; i++ {
		buf := make([]byte, i*37)
		if _, err := rand.Read(buf); err != nil {
			t.Fatalf("rand: %v", err)
		}
		plaintext := string(buf)

		encrypted, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("encrypt len %d: %v", len(plaintext), err)
		}
		decrypted, err := c.Decrypt(encrypted)
		if err != nil {
			t.Fatalf("decrypt len %d: %v", len(plaintext), err)
		}
		if decrypted != plaintext {
			t.Fatalf("round-trip mismatch at len %d", len(plaintext))
		}
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	c := newCipher(t)

	a, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if a == b {
		t.Error("two encryptions of the same plaintext produced identical ciphertexts")
	}
}

// ─── FAIL-CLOSED BEHAVIOUR ────────────────────────────────────────────────────

func TestDecrypt_TamperedCiphertextFailsClosed(t *testing.T) {
	c := newCipher(t)

	encrypted, err := c.Encrypt("do not tamper")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	if _, err := c.Decrypt(tampered); !errors.Is(err, crypto.ErrInvalidCiphertext) {
		t.Errorf("expected ErrInvalidCiphertext, got: %v", err)
	}
}

func TestDecrypt_GarbageInput(t *testing.T) {
	c := newCipher(t)

	for _, input := range []string{"", "not base64!!", "AAAA", base64.StdEncoding.EncodeToString([]byte("short"))} {
		if _, err := c.Decrypt(input); !errors.Is(err, crypto.ErrInvalidCiphertext) {
			t.Errorf("Decrypt(%q): expected ErrInvalidCiphertext, got: %v", input, err)
		}
	}
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	a := newCipher(t)
	b := newCipher(t)

	encrypted, err := a.Encrypt("secret")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := b.Decrypt(encrypted); !errors.Is(err, crypto.ErrInvalidCiphertext) {
		t.Errorf("expected ErrInvalidCiphertext under the wrong key, got: %v", err)
	}
}

// ─── KEY VALIDATION ───────────────────────────────────────────────────────────

func TestNew_RejectsBadKeys(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("sixteen byte key"))},
		{"too long", base64.StdEncoding.EncodeToString(make([]byte, 48))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := crypto.New(tc.key); !errors.Is(err, crypto.ErrInvalidKey) {
				t.Errorf("expected ErrInvalidKey, got: %v", err)
			}
		})
	}
}

func TestGenerateKey_ProducesUsableKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := crypto.New(key); err != nil {
		t.Errorf("generated key rejected by New: %v", err)
	}
}
