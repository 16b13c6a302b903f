package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Extract ExtractConfig
	Session SessionConfig
	Logger  LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AIConfig configures the hosted model used for structured extraction.
// Provider selects the backend: "gemini" (default) or "gigachat".
type AIConfig struct {
	Provider           string
	APIKey             string
	Model              string
	RequestTimeout     time.Duration
	GigaChatScope      string
	InsecureSkipVerify bool
}

type ExtractConfig struct {
	// MaxPromptChars caps how much statement text is embedded into the
	// model prompt. Text beyond the cap is truncated deterministically
	// and the truncation is flagged in the parse response.
	MaxPromptChars int
	// MaxUploadBytes bounds the accepted PDF size.
	MaxUploadBytes int
}

type SessionConfig struct {
	// TTL is how long a parse result stays retrievable after creation.
	TTL time.Duration
}

const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGigaChatModel = "GigaChat"
)

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root.
	// If none is found, plain environment variables are used (Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "60"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "60"))
	requestTimeout, _ := strconv.Atoi(getEnv("AI_REQUEST_TIMEOUT", "90"))
	maxPromptChars, _ := strconv.Atoi(getEnv("EXTRACT_MAX_PROMPT_CHARS", "20000"))
	maxUploadMB, _ := strconv.Atoi(getEnv("EXTRACT_MAX_UPLOAD_MB", "32"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "60"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true"

	provider := getEnv("AI_PROVIDER", "gemini")
	defaultModel := DefaultGeminiModel
	if provider == "gigachat" {
		defaultModel = DefaultGigaChatModel
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		AI: AIConfig{
			Provider:           provider,
			APIKey:             getEnv("AI_API_KEY", os.Getenv("GEMINI_API_KEY")),
			Model:              getEnv("AI_MODEL", defaultModel),
			RequestTimeout:     time.Duration(requestTimeout) * time.Second,
			GigaChatScope:      getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Extract: ExtractConfig{
			MaxPromptChars: maxPromptChars,
			MaxUploadBytes: maxUploadMB * 1024 * 1024,
		},
		Session: SessionConfig{
			TTL: time.Duration(sessionTTL) * time.Minute,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
