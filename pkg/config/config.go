package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Progress  ProgressConfig
	Dashboard DashboardConfig
	Support   SupportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ProgressConfig governs the weighted progress computation and cache
// behaviour for progress endpoints. The weights blend attendance rate and
// average assessment score into a single 0-100 value; they must sum to 1.
type ProgressConfig struct {
	AttendanceWeight float64
	ScoreWeight      float64
	CacheTTL         time.Duration
}

// DashboardConfig governs dashboard exposure, alert thresholds and cache tuning.
type DashboardConfig struct {
	CacheTTL               time.Duration
	LowAttendanceThreshold float64
	AtRiskProgressMax      float64
}

// SupportConfig tunes the helpdesk module.
type SupportConfig struct {
	Enabled         bool
	MaxAttachments  int
	DefaultPageSize int
	CacheTTL        time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Progress = ProgressConfig{
		AttendanceWeight: v.GetFloat64("PROGRESS_ATTENDANCE_WEIGHT"),
		ScoreWeight:      v.GetFloat64("PROGRESS_SCORE_WEIGHT"),
		CacheTTL:         parseDuration(v.GetString("PROGRESS_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Dashboard = DashboardConfig{
		CacheTTL:               parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
		LowAttendanceThreshold: v.GetFloat64("DASHBOARD_LOW_ATTENDANCE_THRESHOLD"),
		AtRiskProgressMax:      v.GetFloat64("DASHBOARD_AT_RISK_PROGRESS_MAX"),
	}

	cfg.Support = SupportConfig{
		Enabled:         v.GetBool("ENABLE_SUPPORT"),
		MaxAttachments:  v.GetInt("SUPPORT_MAX_ATTACHMENTS"),
		DefaultPageSize: v.GetInt("SUPPORT_DEFAULT_PAGE_SIZE"),
		CacheTTL:        parseDuration(v.GetString("SUPPORT_CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tutoring_platform")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PROGRESS_ATTENDANCE_WEIGHT", 0.4)
	v.SetDefault("PROGRESS_SCORE_WEIGHT", 0.6)
	v.SetDefault("PROGRESS_CACHE_TTL", "10m")

	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("DASHBOARD_LOW_ATTENDANCE_THRESHOLD", 75)
	v.SetDefault("DASHBOARD_AT_RISK_PROGRESS_MAX", 40)

	v.SetDefault("ENABLE_SUPPORT", true)
	v.SetDefault("SUPPORT_MAX_ATTACHMENTS", 5)
	v.SetDefault("SUPPORT_DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("SUPPORT_CACHE_TTL", "5m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
