// Package config loads and validates all environment variables at startup.
// Every other package receives typed values — nothing reads os.Getenv directly.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port string // default "8080"
	Env  string // "development" | "production"

	// ── Extension ─────────────────────────────────────────────────────────────
	// ExtensionID is the Chrome extension allowed to call this API. The CORS
	// middleware only accepts the origin "chrome-extension://<ExtensionID>".
	ExtensionID string

	// ── Encryption ────────────────────────────────────────────────────────────
	// EncryptionKey is the base64-encoded 32-byte AES key used for the
	// per-field cipher round-trip. When empty, main generates a fresh key at
	// startup; that key lives only for the process lifetime.
	EncryptionKey string

	// ── Groq ──────────────────────────────────────────────────────────────────
	GroqAPIKey string
	GroqModel  string // default "mixtral-8x7b-32768"

	// ── Fallback provider ─────────────────────────────────────────────────────
	// Optional. When FALLBACK_API_KEY is set, a second OpenAI-compatible
	// provider is tried whenever the Groq call fails.
	FallbackAPIKey  string
	FallbackBaseURL string // default "https://api.openai.com/v1"
	FallbackModel   string // default "gpt-4o-mini"
}

// Load reads all environment variables and returns a validated Config.
// It automatically loads a .env file from the working directory when present,
// so plain `go run ./cmd/api` works in development without any wrapper.
// Real environment variables always take precedence over .env values.
func Load() (*Config, error) {
	loadDotEnv(".env")

	c := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		ExtensionID:     os.Getenv("CHROME_EXTENSION_ID"),
		EncryptionKey:   os.Getenv("ENCRYPTION_KEY"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		GroqModel:       getEnv("GROQ_MODEL", "mixtral-8x7b-32768"),
		FallbackAPIKey:  os.Getenv("FALLBACK_API_KEY"),
		FallbackBaseURL: getEnv("FALLBACK_BASE_URL", "https://api.openai.com/v1"),
		FallbackModel:   getEnv("FALLBACK_MODEL", "gpt-4o-mini"),
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	var errs []error

	if c.ExtensionID == "" {
		errs = append(errs, fmt.Errorf("missing required env var: CHROME_EXTENSION_ID"))
	}

	// At least one summarization provider must be configured.
	if c.GroqAPIKey == "" && c.FallbackAPIKey == "" {
		errs = append(errs, fmt.Errorf("at least one of GROQ_API_KEY or FALLBACK_API_KEY must be set"))
	}

	return errors.Join(errs...)
}

// ─── DOT-ENV LOADER ──────────────────────────────────────────────────────────

// loadDotEnv reads key=value pairs from path and sets them in the environment,
// but only for keys that are not already set. This means real env vars (e.g.
// from Docker / your shell) always win over the file.
// Missing file, blank lines, and #-comments are all silently ignored.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // file absent — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// Strip optional surrounding quotes: KEY="value" or KEY='value'
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		// Only set if the key isn't already present in the environment.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
