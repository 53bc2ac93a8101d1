package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when ENV_FILE is not set.
const DefaultEnvFile = ".env"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Ingest   IngestConfig
	LogLevel string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

// AIConfig holds the generative-language provider settings.
// APIKey is kept exactly as read; services.CleanAPIKey normalizes it.
type AIConfig struct {
	Channel     string
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Proxy       string
}

// IngestConfig holds the mock inbox source locations
type IngestConfig struct {
	PrimaryPath  string
	FallbackPath string
}

// loader resolves a key from the process environment first and the
// dotenv file second.
type loader struct {
	file map[string]string
}

// Load loads configuration from the environment and the .env file named by
// ENV_FILE (default ".env"). A missing file is not an error; an unreadable
// one is reported while the returned config still holds env and defaults.
func Load() (*Config, error) {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = DefaultEnvFile
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit dotenv path. The returned error reports a
// dotenv file that exists but could not be parsed; the config is still usable.
func LoadFrom(envFile string) (*Config, error) {
	l := loader{file: map[string]string{}}
	var readErr error
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			l.file = values
		case !os.IsNotExist(err):
			readErr = fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	driver := l.getEnv("DB_DRIVER", "sqlite")
	aiChannel := l.getEnv("AI_CHANNEL", "gemini")

	return &Config{
		Server: ServerConfig{
			Host: l.getEnv("SERVER_HOST", "127.0.0.1"),
			Port: l.getEnv("SERVER_PORT", "8000"),
		},
		Database: DatabaseConfig{
			Driver:   driver,
			Host:     l.getEnv("DB_HOST", "localhost"),
			Port:     l.getEnv("DB_PORT", defaultDBPort(driver)),
			User:     l.getEnv("DB_USER", "inbox"),
			Password: l.getEnv("DB_PASSWORD", ""),
			DBName:   l.getEnv("DB_NAME", "inbox.db"),
			SSLMode:  l.getEnv("DB_SSLMODE", "disable"),
			LogLevel: l.getEnv("DB_LOG_LEVEL", "warn"),
		},
		AI: AIConfig{
			Channel:     aiChannel,
			BaseURL:     l.getEnv("AI_BASE_URL", defaultAIBaseURL(aiChannel)),
			APIKey:      l.getEnv("GEMINI_API_KEY", ""),
			Model:       l.getEnv("AI_MODEL", defaultAIModel(aiChannel)),
			MaxTokens:   l.getEnvAsInt("AI_MAX_TOKENS", 0),
			Temperature: l.getEnvAsFloat("AI_TEMPERATURE", 0),
			Timeout:     l.getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
			Proxy:       l.getEnv("AI_PROXY", ""),
		},
		Ingest: IngestConfig{
			PrimaryPath:  l.getEnv("MOCK_INBOX_PATH", "mock_inbox.json"),
			FallbackPath: l.getEnv("MOCK_INBOX_FALLBACK_PATH", "../mock_inbox.json"),
		},
		LogLevel: l.getEnv("LOG_LEVEL", "INFO"),
	}, readErr
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func defaultAIBaseURL(channel string) string {
	switch channel {
	case "openai":
		return "https://api.openai.com/v1"
	case "claude":
		return "https://api.anthropic.com/v1"
	default:
		return "https://generativelanguage.googleapis.com/v1beta"
	}
}

func defaultAIModel(channel string) string {
	switch channel {
	case "openai":
		return "gpt-4o-mini"
	case "claude":
		return "claude-3-5-haiku-latest"
	default:
		return "gemini-flash-latest"
	}
}

// getEnv gets a value from the environment or the dotenv file, or returns a default value
func (l loader) getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := l.file[key]; value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets a value as integer or returns a default value
func (l loader) getEnvAsInt(key string, defaultValue int) int {
	valueStr := l.getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsFloat gets a value as float or returns a default value
func (l loader) getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := l.getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("90s") or plain seconds ("90").
func (l loader) getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := l.getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

// ServerAddress returns the full server address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
