package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	OpenAI    OpenAIConfig
	Search    SearchConfig
	Store     StoreConfig
	Logging   LoggingConfig
	Extractor ExtractorConfig
	Client    ClientConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// OpenAIConfig holds the conversational model configuration
type OpenAIConfig struct {
	APIKey          string
	APIBase         string
	ChatModel       string // MODEL_NAME, before alias resolution
	SearchModel     string
	ChatTemperature float64
	ChatMaxTokens   int
	Timeout         time.Duration
	Aliases         map[string]string
	Enabled         bool
}

// SearchConfig holds the web search provider configuration
type SearchConfig struct {
	APIKey     string
	APIBase    string
	Depth      string
	MaxResults int
	Domains    []string
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// StoreConfig selects and configures the profile store backend
type StoreConfig struct {
	Backend       string // memory, redis or postgres
	ProfileTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgreSQL    PostgreSQLConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ExtractorConfig selects the criteria extractor implementation
type ExtractorConfig struct {
	Mode string // rules or model
}

// ClientConfig holds settings for the terminal assistant
type ClientConfig struct {
	APIBaseURL string
	Limit      int
}

// DefaultModelAliases remaps requested model names to available ones
var DefaultModelAliases = map[string]string{
	"gpt-5-mini": "gpt-4o-mini",
}

// DefaultListingDomains are the real-estate sites searched for listings
var DefaultListingDomains = []string{"mercadolibre.com.uy", "infocasas.com.uy", "veocasas.com"}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	aliases := make(map[string]string, len(DefaultModelAliases))
	for k, v := range DefaultModelAliases {
		aliases[k] = v
	}
	for k, v := range parseAliases(getEnv("MODEL_ALIASES", "")) {
		aliases[k] = v
	}

	chatModel := getEnv("MODEL_NAME", "gpt-4o-mini")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("PORT", 3000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			APIBase:         strings.TrimRight(getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"), "/"),
			ChatModel:       chatModel,
			SearchModel:     getEnv("SEARCH_MODEL_NAME", chatModel),
			ChatTemperature: getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.3),
			ChatMaxTokens:   getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 500),
			Timeout:         getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
			Aliases:         aliases,
			Enabled:         getEnv("OPENAI_API_KEY", "") != "",
		},
		Search: SearchConfig{
			APIKey:     getEnv("TAVILY_API_KEY", ""),
			APIBase:    strings.TrimRight(getEnv("TAVILY_API_BASE", "https://api.tavily.com"), "/"),
			Depth:      getEnv("SEARCH_DEPTH", "advanced"),
			MaxResults: getEnvAsInt("SEARCH_MAX_RESULTS", 10),
			Domains:    DefaultListingDomains,
			Timeout:    getEnvAsDuration("SEARCH_TIMEOUT", 30*time.Second),
			CacheTTL:   getEnvAsDuration("SEARCH_CACHE_TTL", 10*time.Minute),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(getEnv("PROFILE_STORE", "memory")),
			ProfileTTL:    getEnvAsDuration("PROFILE_TTL", 0),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			PostgreSQL: PostgreSQLConfig{
				DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
				Host:               getEnv("PG_HOST", "localhost"),
				Port:               getEnvAsInt("PG_PORT", 5432),
				User:               getEnv("PG_USER", "postgres"),
				Password:           getEnv("PG_PASSWORD", ""),
				Database:           getEnv("PG_DATABASE", "inmobot"),
				SSLMode:            getEnv("PG_SSLMODE", "disable"),
				MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
				MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Extractor: ExtractorConfig{
			Mode: strings.ToLower(getEnv("EXTRACTOR", "rules")),
		},
		Client: ClientConfig{
			APIBaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000"), "/"),
			Limit:      getEnvAsInt("ASSISTANT_RANK_LIMIT", 5),
		},
	}

	switch cfg.Store.Backend {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("unknown PROFILE_STORE %q (want memory, redis or postgres)", cfg.Store.Backend)
	}

	return cfg, nil
}

// ResolveModel maps a requested model name through the alias table
func (c *OpenAIConfig) ResolveModel(name string) string {
	if alias, ok := c.Aliases[name]; ok {
		return alias
	}
	return name
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *StoreConfig) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// parseAliases reads "from=to,from2=to2"
func parseAliases(raw string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		from, to, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from == "" || to == "" {
			continue
		}
		out[from] = to
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("30s") or plain seconds ("30")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
