package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the vectorizer service
type Config struct {
	Vectorizer VectorizerConfig
	Search     SearchConfig
	Storage    StorageConfig
	Fetcher    FetcherConfig
	Server     ServerConfig
}

// VectorizerConfig holds graph-of-words and tokenizer settings
type VectorizerConfig struct {
	Window        int
	Workers       int
	Tokenizer     string
	StemLanguage  string
	StemExcept    []string
	DropStopWords bool
	MinDF         int
}

// SearchConfig selects the vectorizer backing the search index
type SearchConfig struct {
	Vectorizer string
	TopK       int
}

// StorageConfig holds corpus storage configuration
type StorageConfig struct {
	DataDir string
}

// FetcherConfig holds document ingestion settings
type FetcherConfig struct {
	Timeout           time.Duration
	UserAgent         string
	EnableRobotsCheck bool
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Addr     string
	LogLevel string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Vectorizer: VectorizerConfig{
			Window:        GetIntEnv("GOW_WINDOW", 5),
			Workers:       GetIntEnv("GOW_WORKERS", 4),
			Tokenizer:     GetStringEnv("GOW_TOKENIZER", "split"),
			StemLanguage:  GetStringEnv("GOW_STEM_LANGUAGE", "english"),
			StemExcept:    GetListEnv("GOW_STEM_EXCEPT", nil),
			DropStopWords: GetBoolEnv("GOW_STOPWORDS", false),
			MinDF:         GetIntEnv("BOW_MIN_DF", 1),
		},
		Search: SearchConfig{
			Vectorizer: GetStringEnv("SEARCH_VECTORIZER", "gow"),
			TopK:       GetIntEnv("SEARCH_TOP_K", 5),
		},
		Storage: StorageConfig{
			DataDir: GetStringEnv("STORAGE_DATA_DIR", "./data"),
		},
		Fetcher: FetcherConfig{
			Timeout:           GetDurationEnv("FETCH_TIMEOUT", 30*time.Second),
			UserAgent:         GetStringEnv("FETCH_USER_AGENT", "GoW-Vectorizer/1.0"),
			EnableRobotsCheck: GetBoolEnv("FETCH_ROBOTS_CHECK", true),
		},
		Server: ServerConfig{
			Addr:     GetStringEnv("API_ADDR", ":8080"),
			LogLevel: GetStringEnv("LOG_LEVEL", "info"),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetListEnv splits a comma-separated variable, dropping empty items
func GetListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
