package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	GeminiAPIKey      string
	GeminiModel       string
	LLMProviders      string // comma-separated fallback order, e.g. "ollama,openai"
	LLMModel          string
	OpenAIBaseURL     string
	OpenAIAPIKey      string
	OpenAIModel       string
	HuggingFaceURL    string
	HuggingFaceKey    string
	CallTimeout       time.Duration
}

// RetrievalConfig exposes every pipeline threshold. The defaults mirror the
// values validated against the department's labeled question log; most
// deployments never override them.
type RetrievalConfig struct {
	ExactThreshold        float64
	SecondaryThreshold    float64
	CombinedThreshold     float64
	DocumentLexicalBar    float64
	RelevanceFloor        float64
	SemanticFloor         float64
	LexicalFloor          float64
	SemanticWeight        float64
	LexicalWeight         float64
	MinSemanticCandidates int
	TopK                  int
	PrefixLength          int
	ExcerptLength         int
	OverallTimeout        time.Duration
	GateConfigPath        string
	ResolutionCacheTTL    time.Duration
	KnowledgeTopic        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:       getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			LLMProviders:      getEnv("LLM_PROVIDERS", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			HuggingFaceURL:    getEnv("HUGGINGFACE_BASE_URL", "https://router.huggingface.co/v1"),
			HuggingFaceKey:    getEnv("HUGGINGFACE_API_KEY", ""),
			CallTimeout:       getEnvAsDuration("LLM_CALL_TIMEOUT", 30*time.Second),
		},
		Retrieval: RetrievalConfig{
			ExactThreshold:        getEnvAsFloat("RETRIEVAL_EXACT_THRESHOLD", 0.75),
			SecondaryThreshold:    getEnvAsFloat("RETRIEVAL_SECONDARY_THRESHOLD", 0.60),
			CombinedThreshold:     getEnvAsFloat("RETRIEVAL_COMBINED_THRESHOLD", 0.30),
			DocumentLexicalBar:    getEnvAsFloat("RETRIEVAL_DOCUMENT_LEXICAL_BAR", 0.25),
			RelevanceFloor:        getEnvAsFloat("RETRIEVAL_RELEVANCE_FLOOR", 0.15),
			SemanticFloor:         getEnvAsFloat("RETRIEVAL_SEMANTIC_FLOOR", 0.35),
			LexicalFloor:          getEnvAsFloat("RETRIEVAL_LEXICAL_FLOOR", 0.30),
			SemanticWeight:        getEnvAsFloat("RETRIEVAL_SEMANTIC_WEIGHT", 0.8),
			LexicalWeight:         getEnvAsFloat("RETRIEVAL_LEXICAL_WEIGHT", 0.4),
			MinSemanticCandidates: getEnvAsInt("RETRIEVAL_MIN_SEMANTIC_CANDIDATES", 2),
			TopK:                  getEnvAsInt("RETRIEVAL_TOP_K", 5),
			PrefixLength:          getEnvAsInt("RETRIEVAL_PREFIX_LENGTH", 200),
			ExcerptLength:         getEnvAsInt("RETRIEVAL_EXCERPT_LENGTH", 400),
			OverallTimeout:        getEnvAsDuration("RETRIEVAL_OVERALL_TIMEOUT", 20*time.Second),
			GateConfigPath:        getEnv("CONTEXT_GATE_CONFIG_PATH", ""),
			ResolutionCacheTTL:    getEnvAsDuration("RESOLUTION_CACHE_TTL", 10*time.Minute),
			KnowledgeTopic:        getEnv("KNOWLEDGE_CHANGED_TOPIC_NAME", "KNOWLEDGE_BASE_CHANGED"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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
