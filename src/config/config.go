package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Artifact store backends selectable through MODEL_STORE.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreFile     = "file"
	StoreRedis    = "redis"
)

const DefaultRatesURL = "https://api.exchangerate-api.com/v4/latest/USD"

type ModelConfig struct {
	NEstimators    int     `yaml:"n_estimators"`
	LearningRate   float64 `yaml:"learning_rate"`
	MaxDepth       int     `yaml:"max_depth"`
	RandomSeed     int64   `yaml:"random_seed"`
	TestSize       float64 `yaml:"test_size"`
	TrainingFilter string  `yaml:"training_filter"`
}

// DisplayConfig holds the choices offered by the prediction form.
type DisplayConfig struct {
	Currencies       []string `yaml:"currencies"`
	ExperienceLevels []string `yaml:"experience_levels"`
	EmploymentTypes  []string `yaml:"employment_types"`
	WorkModels       []string `yaml:"work_models"`
	CompanySizes     []string `yaml:"company_sizes"`
}

type fileConfig struct {
	Model   ModelConfig   `yaml:"model"`
	Display DisplayConfig `yaml:"display"`
}

type AppConfig struct {
	Port     string
	LogLevel string

	DataPath   string
	DataFormat string

	RatesURL     string
	RatesTimeout time.Duration

	ModelStore   string
	DatabasePath string // sqlite
	DatabaseURL  string // postgres
	ModelPath    string // file
	RedisAddr    string
	RedisKey     string

	Model   ModelConfig
	Display DisplayConfig

	MaxUploadSizeBytes int64
	ChartCacheTTL      time.Duration
	AllowedOrigins     []string
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Model: ModelConfig{
			NEstimators:  200,
			LearningRate: 0.1,
			MaxDepth:     3,
			RandomSeed:   42,
			TestSize:     0.2,
		},
		Display: DisplayConfig{
			Currencies:       []string{"USD", "EUR", "GBP", "INR", "AUD", "CAD"},
			ExperienceLevels: []string{"Entry-level", "Mid-level", "Senior-level"},
			EmploymentTypes:  []string{"Full-time", "Part-time", "Contract", "Freelance"},
			WorkModels:       []string{"Remote", "On-site", "Hybrid"},
			CompanySizes:     []string{"Small", "Medium", "Large"},
		},
	}
}

// LoadConfig reads .env (optional), then the YAML file named by CONFIG_FILE
// (optional), then environment variables. Environment variables win.
func LoadConfig() (*AppConfig, error) {
	if errEnv := godotenv.Load(); errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults.")
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	fc := defaultFileConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, &fc); err != nil {
			return nil, err
		}
		log.Printf("Configuration file %s loaded.", path)
	}

	cfg := &AppConfig{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataPath:   getEnv("DATA_PATH", "data/salary.csv"),
		DataFormat: strings.ToLower(getEnv("DATA_FORMAT", "csv")),

		RatesURL:     getEnv("RATES_URL", DefaultRatesURL),
		RatesTimeout: getEnvAsDuration("RATES_TIMEOUT", 10*time.Second),

		ModelStore:   strings.ToLower(getEnv("MODEL_STORE", StoreSQLite)),
		DatabasePath: getEnv("DATABASE_PATH", "./salary_predictor.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		ModelPath:    getEnv("MODEL_PATH", "salary_model.json"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisKey:     getEnv("REDIS_KEY", "salary_model"),

		Model: ModelConfig{
			NEstimators:    getEnvAsInt("N_ESTIMATORS", fc.Model.NEstimators),
			LearningRate:   getEnvAsFloat("LEARNING_RATE", fc.Model.LearningRate),
			MaxDepth:       getEnvAsInt("MAX_DEPTH", fc.Model.MaxDepth),
			RandomSeed:     int64(getEnvAsInt("RANDOM_SEED", int(fc.Model.RandomSeed))),
			TestSize:       getEnvAsFloat("TEST_SIZE", fc.Model.TestSize),
			TrainingFilter: getEnv("TRAINING_FILTER", fc.Model.TrainingFilter),
		},
		Display: fc.Display,

		MaxUploadSizeBytes: getEnvAsInt64("MAX_UPLOAD_SIZE_BYTES", 10*1024*1024),
		ChartCacheTTL:      getEnvAsDuration("CHART_CACHE_TTL", 15*time.Minute),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DataPath=%s, ModelStore=%s",
		cfg.Port, cfg.LogLevel, cfg.DataPath, cfg.ModelStore)
	return cfg, nil
}

// Validate rejects settings no component can work with.
func (c *AppConfig) Validate() error {
	switch c.ModelStore {
	case StoreSQLite, StoreFile, StoreRedis:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when MODEL_STORE is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("unsupported MODEL_STORE %q", c.ModelStore)
	}
	if c.Model.NEstimators <= 0 {
		return fmt.Errorf("N_ESTIMATORS must be positive, got %d", c.Model.NEstimators)
	}
	if c.Model.LearningRate <= 0 {
		return fmt.Errorf("LEARNING_RATE must be positive, got %g", c.Model.LearningRate)
	}
	if c.Model.MaxDepth <= 0 {
		return fmt.Errorf("MAX_DEPTH must be positive, got %d", c.Model.MaxDepth)
	}
	if c.Model.TestSize < 0 || c.Model.TestSize >= 1 {
		return fmt.Errorf("TEST_SIZE must be in [0, 1), got %g", c.Model.TestSize)
	}
	if len(c.Display.Currencies) == 0 {
		return fmt.Errorf("at least one display currency is required")
	}
	return nil
}

func loadYAML(path string, fc *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return fmt.Errorf("error parsing config file '%s': %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	log.Printf("Invalid float value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
