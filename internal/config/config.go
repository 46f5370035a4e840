package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Agent    AgentConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AgentLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	EmbedTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "ollama", ...
	LLMModel          string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL     string
	EmbeddingProvider string
	EmbeddingModel    string
}

type AgentConfig struct {
	MaxIterations      int
	GenerateAttempts   int           // orchestrator-level retries for empty-result completions
	BackoffInitial     time.Duration // first orchestrator backoff delay
	BatchWorkers       int           // worker pool size for batch scoring
	RetryQueueCapacity int
	DrainInterval      time.Duration // 0 disables the periodic drain worker
	ItemsPerRound      int
	TimeLimitSeconds   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AgentLogFilePath:   getEnv("AGENT_LOG_FILE_PATH", "logs/agent.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			EmbedTopic:         getEnv("EMBED_QUESTION_TOPIC_NAME", "EMBED_QUESTION_CONTENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Agent: AgentConfig{
			MaxIterations:      getEnvAsInt("AGENT_MAX_ITERATIONS", 10),
			GenerateAttempts:   getEnvAsInt("AGENT_GENERATE_ATTEMPTS", 3),
			BackoffInitial:     getEnvAsDuration("AGENT_BACKOFF_INITIAL", time.Second),
			BatchWorkers:       getEnvAsInt("AGENT_BATCH_WORKERS", 4),
			RetryQueueCapacity: getEnvAsInt("PERSIST_RETRY_QUEUE_CAPACITY", 256),
			DrainInterval:      getEnvAsDuration("PERSIST_DRAIN_INTERVAL", 5*time.Minute),
			ItemsPerRound:      getEnvAsInt("ROUND_ITEM_COUNT", 5),
			TimeLimitSeconds:   getEnvAsInt("ROUND_TIME_LIMIT_SECONDS", 600),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
