package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	CORSOrigins    []string

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Kafka event publishing
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Reservation rules
	Reservation ReservationConfig

	// Store retry policy
	Retry RetryConfig

	// Logging
	LogLevel string

	// API docs
	SwaggerEnabled bool
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string

	SQLitePath string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	SpotCacheTTL time.Duration
}

// KafkaConfig holds Kafka producer/consumer configuration
type KafkaConfig struct {
	Enabled  bool
	Brokers  []string
	Topic    string
	GroupID  string
	ClientID string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	CreateRequests  int           `json:"create_requests"`
	ReserveRequests int           `json:"reserve_requests"`
	RedeemRequests  int           `json:"redeem_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// ReservationConfig holds spot and reservation rules
type ReservationConfig struct {
	SkipStartedSlots       bool
	DefaultSlotCapacity    int
	MaxSlotCapacity        int
	MaxSlotsPerSpot        int
	MaxSpotNameLength      int
	MaxSelectionIterations int
}

// RetryConfig bounds the retries applied to transient store failures
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB
		CORSOrigins:    getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{}),

		// Database configuration
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "spotly_db"),
			User:            getEnv("DB_USER", "spotly_user"),
			Password:        getEnv("DB_PASSWORD", "spotly_password"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			SQLitePath:      getEnv("SQLITE_PATH", "spotly.db"),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("DB_AUTO_MIGRATE", true),
		},

		// Redis configuration
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			SpotCacheTTL: getDurationEnv("REDIS_SPOT_CACHE_TTL", 24*time.Hour),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:  getBoolEnv("KAFKA_ENABLED", false),
			Brokers:  getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:    getEnv("KAFKA_TICKET_EVENTS_TOPIC", "spotly.ticket-events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "spotly-ticketfeed"),
			ClientID: getEnv("KAFKA_CLIENT_ID", "spotly"),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 120),
			CreateRequests:  getIntEnv("RATE_LIMIT_CREATE_REQUESTS", 10),
			ReserveRequests: getIntEnv("RATE_LIMIT_RESERVE_REQUESTS", 30),
			RedeemRequests:  getIntEnv("RATE_LIMIT_REDEEM_REQUESTS", 300),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 600),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Reservation rules
		Reservation: ReservationConfig{
			SkipStartedSlots:       getBoolEnv("RESERVE_SKIP_STARTED_SLOTS", false),
			DefaultSlotCapacity:    getIntEnv("SPOT_DEFAULT_SLOT_CAPACITY", 8192),
			MaxSlotCapacity:        getIntEnv("SPOT_MAX_SLOT_CAPACITY", 8192),
			MaxSlotsPerSpot:        getIntEnv("SPOT_MAX_SLOTS", 1024),
			MaxSpotNameLength:      getIntEnv("SPOT_MAX_NAME_LENGTH", 255),
			MaxSelectionIterations: getIntEnv("RESERVE_MAX_SELECTION_ITERATIONS", 64),
		},

		// Store retry policy
		Retry: RetryConfig{
			MaxAttempts:     getIntEnv("STORE_RETRY_MAX_ATTEMPTS", 5),
			InitialInterval: getDurationEnv("STORE_RETRY_INITIAL_INTERVAL", 20*time.Millisecond),
			MaxInterval:     getDurationEnv("STORE_RETRY_MAX_INTERVAL", 500*time.Millisecond),
			MaxElapsedTime:  getDurationEnv("STORE_RETRY_MAX_ELAPSED", 5*time.Second),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		SwaggerEnabled: getBoolEnv("SWAGGER_ENABLED", true),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	if db.Driver == DriverSQLite {
		return db.SQLitePath
	}
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
