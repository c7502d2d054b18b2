package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Session    SessionConfig
	Database   DatabaseConfig
	Ai         AIConfig
	Literature LiteratureConfig
	Workflow   WorkflowConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type SessionConfig struct {
	Backend string // "memory", "postgres" or "redis"
	TTL     time.Duration
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama", "huggingface"
	LLMModel      string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL string
	HuggingFace   string // API token
}

type LiteratureConfig struct {
	CrossRefBaseURL        string
	SemanticScholarBaseURL string
	MaxResultsPerQuery     int
	ProviderTimeout        time.Duration
}

type WorkflowConfig struct {
	MaxConcurrent  int
	ItemTimeout    time.Duration
	StrictAnalysis bool
	StageTopicName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_STORE", "memory"),
			TTL:     time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFace:   getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Literature: LiteratureConfig{
			CrossRefBaseURL:        getEnv("CROSSREF_BASE_URL", "https://api.crossref.org"),
			SemanticScholarBaseURL: getEnv("SEMANTIC_SCHOLAR_BASE_URL", "https://api.semanticscholar.org"),
			MaxResultsPerQuery:     getEnvAsInt("LITERATURE_MAX_RESULTS", 10),
			ProviderTimeout:        time.Duration(getEnvAsInt("LITERATURE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Workflow: WorkflowConfig{
			MaxConcurrent:  getEnvAsInt("WORKFLOW_MAX_CONCURRENT", 8),
			ItemTimeout:    time.Duration(getEnvAsInt("WORKFLOW_ITEM_TIMEOUT_SECONDS", 60)) * time.Second,
			StrictAnalysis: getEnv("WORKFLOW_STRICT_ANALYSIS", "false") == "true",
			StageTopicName: getEnv("STAGE_EVENT_TOPIC_NAME", "research.stage.completed"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
