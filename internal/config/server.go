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

// Server holds the runtime settings of lyricloud-server
type Server struct {
	HTTP    HTTPConfig
	App     AppConfig
	Limits  LimitsConfig
	Fonts   FontsConfig
	Storage StorageConfig
	Cache   CacheConfig
}

type HTTPConfig struct {
	Host        string
	Port        string
	CORSOrigins []string
}

type AppConfig struct {
	Environment string
	Version     string
}

type LimitsConfig struct {
	MaxBodyBytes int64
	MaxDimension int
	RateRPS      float64
	RateBurst    int
}

type FontsConfig struct {
	Dir      string
	Download bool
}

// StorageConfig selects where generated images are kept. S3 wins over Dir;
// both empty disables storage.
type StorageConfig struct {
	Dir         string
	S3Bucket    string
	S3URLPrefix string
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// Addr returns host:port for http.Server
func (c HTTPConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadServer reads .env (if present) and the environment
func LoadServer() (*Server, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using environment variables")
	}

	cfg := &Server{
		HTTP: HTTPConfig{
			Host:        getEnv("HOST", "127.0.0.1"),
			Port:        getEnv("PORT", "5001"), // 5000 collides with AirPlay Receiver on macOS
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "dev"),
		},
		Limits: LimitsConfig{
			MaxBodyBytes: int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
			MaxDimension: getEnvAsInt("MAX_DIMENSION", 4096),
			RateRPS:      getEnvAsFloat("RATE_LIMIT_RPS", 2),
			RateBurst:    getEnvAsInt("RATE_LIMIT_BURST", 4),
		},
		Fonts: FontsConfig{
			Dir:      getEnv("FONTS_DIR", FontsDir),
			Download: getEnvAsBool("FONT_DOWNLOAD", true),
		},
		Storage: StorageConfig{
			Dir:         getEnv("STORE_DIR", ""),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3URLPrefix: getEnv("S3_URL_PREFIX", ""),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			TTL:       getEnvAsDuration("CACHE_TTL", time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Server) Validate() error {
	if c.HTTP.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Limits.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.Limits.MaxDimension <= 0 {
		return fmt.Errorf("MAX_DIMENSION must be positive")
	}
	if c.Limits.RateRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if c.Limits.RateRPS > 0 && c.Limits.RateBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive when rate limiting is on")
	}
	if c.Cache.RedisAddr != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[config] invalid integer for %s, using default: %d", key, defaultValue)
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
		log.Printf("[config] invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("[config] invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("[config] invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
