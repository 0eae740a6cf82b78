package config

import "os"

// Config is read once at startup and injected; nothing else touches the
// environment.
type Config struct {
	HTTPAddr string
	LogLevel string

	// Ollama backend
	Model     string
	OllamaURL string

	// Optional usage ledger. Empty disables it entirely; the gateway then runs
	// with no external dependency besides the Ollama server.
	DatabaseURL string
}

func MustLoad() Config {
	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", "127.0.0.1:8000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Model:       getenv("MODEL", "llama3.1"),
		OllamaURL:   getenv("OLLAMA_URL", "http://localhost:11434"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
