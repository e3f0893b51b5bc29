package config

import (
	"fmt"
	"strconv"
	"time"

	"uqm-starseed/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Frontend    FrontendConfig
	Logging     LoggingConfig
	RateLimit   RateLimitConfig
	Seeding     SeedingConfig
	Persistence PersistenceConfig
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// SeedingConfig drives the starmap plot seeding engine
type SeedingConfig struct {
	DefaultSeed      uint32
	SeedType         string
	NewGameBudget    time.Duration
	LoadBudget       time.Duration
	NewGameRetries   int
	StarFactor       int
	RelatedThreshold int
	CatalogPath      string
	ConstraintsPath  string
}

type PersistenceConfig struct {
	SaveDir          string
	AutosaveInterval time.Duration
	AutosaveBurst    int
	Compress         bool
	MaxStateFileSize int
}

const (
	SeedTypeStar = "star"
	SeedTypeMRQ  = "mrq"
	SeedTypeNone = "none"
)

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads and validates the configuration without touching GlobalConfig
func Load() (*Config, error) {
	config := &Config{
		Server:      loadServerConfig(),
		Database:    loadDatabaseConfig(),
		Redis:       loadRedisConfig(),
		Frontend:    loadFrontendConfig(),
		Logging:     loadLoggingConfig(),
		RateLimit:   loadRateLimitConfig(),
		Seeding:     loadSeedingConfig(),
		Persistence: loadPersistenceConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "false") == "true"
	cacheTTL, _ := strconv.Atoi(utils.GetEnv("REDIS_CACHE_TTL_MINUTES", "60"))

	return RedisConfig{
		Enabled:  enabled,
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
		CacheTTL: time.Duration(cacheTTL) * time.Minute,
	}
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "60"))
	idleTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_OPEN_CONNS", "10"))
	maxIdleConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_IDLE_CONNS", "2"))
	connMaxLifetime, _ := strconv.Atoi(utils.GetEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Driver:          utils.GetEnv("DB_DRIVER", "sqlite3"),
		Path:            utils.GetEnv("DB_PATH", "starseed.db"),
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "starseed"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
	}
}

func loadFrontendConfig() FrontendConfig {
	corsDebug := utils.GetEnv("CORS_DEBUG", "") == "true"

	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: corsDebug,
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production"

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "info"),
		Format:     utils.GetEnv("LOG_FORMAT", "text"),
		JSONFormat: jsonFormat,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "5"), 64)
	burstSize, _ := strconv.Atoi(utils.GetEnv("RATE_LIMIT_BURST_SIZE", "10"))

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func loadSeedingConfig() SeedingConfig {
	seed, _ := strconv.ParseUint(utils.GetEnv("SEED_DEFAULT", "16807"), 10, 32)

	return SeedingConfig{
		DefaultSeed:      uint32(seed),
		SeedType:         utils.GetEnv("SEED_TYPE", SeedTypeStar),
		NewGameBudget:    utils.GetEnvMillis("SEED_NEW_GAME_BUDGET_MS", 2*time.Second),
		LoadBudget:       utils.GetEnvMillis("SEED_LOAD_BUDGET_MS", 30*time.Second),
		NewGameRetries:   utils.GetEnvInt("SEED_NEW_GAME_RETRIES", 100),
		StarFactor:       utils.GetEnvInt("SEED_STAR_FACTOR", 97),
		RelatedThreshold: utils.GetEnvInt("SEED_RELATED_THRESHOLD", 600),
		CatalogPath:      utils.GetEnv("SEED_CATALOG_PATH", ""),
		ConstraintsPath:  utils.GetEnv("SEED_CONSTRAINTS_PATH", ""),
	}
}

func loadPersistenceConfig() PersistenceConfig {
	interval, _ := strconv.Atoi(utils.GetEnv("AUTOSAVE_INTERVAL_SECONDS", "60"))

	return PersistenceConfig{
		SaveDir:          utils.GetEnv("SAVE_DIR", "saves"),
		AutosaveInterval: time.Duration(interval) * time.Second,
		AutosaveBurst:    utils.GetEnvInt("AUTOSAVE_BURST", 1),
		Compress:         utils.GetEnvBool("SAVE_COMPRESS", true),
		MaxStateFileSize: utils.GetEnvInt("STATE_FILE_MAX_BYTES", 16<<20),
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case "sqlite3", "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Seeding.SeedType {
	case SeedTypeStar, SeedTypeMRQ, SeedTypeNone:
	default:
		return fmt.Errorf("unsupported SEED_TYPE %q", c.Seeding.SeedType)
	}

	if c.Seeding.NewGameBudget <= 0 || c.Seeding.LoadBudget <= 0 {
		return fmt.Errorf("seeding budgets must be positive")
	}

	if c.Seeding.NewGameRetries < 1 {
		return fmt.Errorf("SEED_NEW_GAME_RETRIES must be at least 1")
	}

	if c.Seeding.StarFactor <= 0 {
		return fmt.Errorf("SEED_STAR_FACTOR must be positive")
	}

	if c.Persistence.AutosaveInterval <= 0 {
		return fmt.Errorf("AUTOSAVE_INTERVAL_SECONDS must be positive")
	}

	return nil
}

// ConnectionString returns the data source name for the configured driver
func (c *Config) ConnectionString() string {
	switch c.Database.Driver {
	case "sqlite3":
		return c.Database.Path + "?_journal_mode=WAL&_busy_timeout=5000"
	case "sqlite":
		return "file:" + c.Database.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
